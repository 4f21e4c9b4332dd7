package category

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// DefaultNames are created by SeedDefaults when no category exists yet.
var DefaultNames = []string{"Food", "Travel", "Bills", "Entertainment", "Other"}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	// CreateCategory inserts c unless a category with the same normalized name
	// exists, in which case c is filled from the stored row and created is false.
	CreateCategory(ctx context.Context, c *ledger.Category) (created bool, err error)
	GetCategory(ctx context.Context, id uuid.UUID) (*ledger.Category, error)
	ListCategories(ctx context.Context) ([]*ledger.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	CountExpenses(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo Repository

	// mu serializes get-or-create so two resolutions of the same name
	// cannot both insert.
	mu sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]*ledger.Category, error) {
	cats, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(cats, func(a, b *ledger.Category) int {
		return strings.Compare(ledger.NormalizeName(a.Name), ledger.NormalizeName(b.Name))
	})

	return cats, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ledger.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// Find looks name up in existing using case-insensitive, trimmed comparison.
func Find(name string, existing []*ledger.Category) (*ledger.Category, bool) {
	key := ledger.NormalizeName(name)

	for _, c := range existing {
		if ledger.NormalizeName(c.Name) == key {
			return c, true
		}
	}

	return nil, false
}

// Resolve returns the category matching rawName, creating it when none
// exists. isNew reports whether this call persisted a new category.
func (s *Service) Resolve(ctx context.Context, rawName string) (*ledger.Category, bool, error) {
	name, err := ledger.CleanCategoryName(rawName)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("loading categories: %w", err)
	}

	if c, ok := Find(name, existing); ok {
		return c, false, nil
	}

	c := &ledger.Category{Name: name}

	created, err := s.repo.CreateCategory(ctx, c)
	if err != nil {
		return nil, false, fmt.Errorf("creating category %q: %w", name, err)
	}

	return c, created, nil
}

// ResolveSelection turns a form selection into a persisted category.
func (s *Service) ResolveSelection(ctx context.Context, sel ledger.CategorySelection) (*ledger.Category, bool, error) {
	switch {
	case sel.IsExisting():
		c, err := s.repo.GetCategory(ctx, sel.ID())
		if err != nil {
			return nil, false, err
		}

		return c, false, nil
	case sel.IsNewName():
		return s.Resolve(ctx, sel.Name())
	}

	return nil, false, ledger.ErrEmptyCategoryName
}

// SeedDefaults creates DefaultNames when the category set is empty.
// It returns the number of categories created.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	existing, err := s.repo.ListCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading categories: %w", err)
	}

	if len(existing) > 0 {
		return 0, nil
	}

	created := 0

	for _, name := range DefaultNames {
		_, isNew, err := s.Resolve(ctx, name)
		if err != nil {
			return created, err
		}

		if isNew {
			created++
		}
	}

	return created, nil
}

// Delete removes a category. Categories still referenced by expenses are
// kept and ErrCategoryInUse is returned; reassign the expenses first.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := s.repo.CountExpenses(ctx, id)
	if err != nil {
		return fmt.Errorf("counting expenses: %w", err)
	}

	if n > 0 {
		return fmt.Errorf("%w: %d expenses", ledger.ErrCategoryInUse, n)
	}

	return s.repo.DeleteCategory(ctx, id)
}
