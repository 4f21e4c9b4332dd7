package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *ledger.Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*ledger.Expense, error)
	UpdateExpense(ctx context.Context, e *ledger.Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error
	ListExpenses(ctx context.Context, filter ListFilter) ([]*ledger.Expense, error)

	// BeginImport opens a transaction that holds the store-wide import lock.
	BeginImport(ctx context.Context) (ImportTx, error)
}

// ImportTx holds the import lock while a batch is checked and written.
type ImportTx interface {
	FindDuplicates(ctx context.Context, exps []*ledger.Expense) ([]*ledger.Expense, error)
	CreateExpenses(ctx context.Context, exps []*ledger.Expense) error
	Commit() error
	Rollback() error
}

// CategoryResolver turns a category selection into a stored category.
type CategoryResolver interface {
	ResolveSelection(ctx context.Context, sel ledger.CategorySelection) (*ledger.Category, bool, error)
}

// Learner remembers which category a description was filed under.
type Learner interface {
	Learn(ctx context.Context, description, categoryName string) error
}

type Service struct {
	repo       Repository
	categories CategoryResolver
	learner    Learner
}

// NewService builds the expense service. learner may be nil.
func NewService(repo Repository, categories CategoryResolver, learner Learner) *Service {
	return &Service{repo: repo, categories: categories, learner: learner}
}

type CreateParams struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Category    ledger.CategorySelection
}

// UpdateParams carries a partial edit; nil fields are left unchanged.
type UpdateParams struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
	Category    *ledger.CategorySelection
}

type ListFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
}

// Create resolves the category and stores a new expense. newCategory reports
// whether the category was created by this call. The category stays
// persisted when the expense write fails.
func (s *Service) Create(ctx context.Context, params CreateParams) (exp *ledger.Expense, newCategory bool, err error) {
	exp = &ledger.Expense{
		Amount:      params.Amount.Round(ledger.AmountScale),
		Date:        ledger.DateOf(params.Date),
		Description: strings.TrimSpace(params.Description),
	}

	if err := checkAmountAndDate(exp); err != nil {
		return nil, false, err
	}

	cat, newCategory, err := s.categories.ResolveSelection(ctx, params.Category)
	if err != nil {
		return nil, false, fmt.Errorf("resolving category: %w", err)
	}

	exp.Category = *cat

	if err := exp.Validate(); err != nil {
		return nil, newCategory, err
	}

	if err := s.repo.CreateExpense(ctx, exp); err != nil {
		return nil, newCategory, fmt.Errorf("saving expense in category %q: %w", cat.Name, err)
	}

	s.learn(ctx, exp)

	return exp, newCategory, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// List returns expenses newest first.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*ledger.Expense, error) {
	return s.repo.ListExpenses(ctx, filter)
}

// Update applies params to the stored expense.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*ledger.Expense, error) {
	exp, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		exp.Amount = params.Amount.Round(ledger.AmountScale)
	}

	if params.Date != nil {
		exp.Date = ledger.DateOf(*params.Date)
	}

	if params.Description != nil {
		exp.Description = strings.TrimSpace(*params.Description)
	}

	if err := checkAmountAndDate(exp); err != nil {
		return nil, err
	}

	if params.Category != nil {
		cat, _, err := s.categories.ResolveSelection(ctx, *params.Category)
		if err != nil {
			return nil, fmt.Errorf("resolving category: %w", err)
		}

		exp.Category = *cat
	}

	if err := exp.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateExpense(ctx, exp); err != nil {
		return nil, err
	}

	s.learn(ctx, exp)

	return exp, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

type ImportResult struct {
	Imported []*ledger.Expense
	// Skipped are incoming rows identical to an expense already stored.
	Skipped []*ledger.Expense
}

// ImportBatch writes exps in one transaction, skipping any that match an
// existing expense on date, amount, description and category.
func (s *Service) ImportBatch(ctx context.Context, exps []*ledger.Expense) (*ImportResult, error) {
	if len(exps) == 0 {
		return &ImportResult{}, nil
	}

	for i, e := range exps {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("expense %d: %w", i+1, err)
		}
	}

	itx, err := s.repo.BeginImport(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, exps)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	seen := make(map[dupKey]int, len(duplicates))
	for _, d := range duplicates {
		seen[keyOf(d)]++
	}

	result := &ImportResult{}

	for _, e := range exps {
		k := keyOf(e)
		if seen[k] > 0 {
			seen[k]--
			result.Skipped = append(result.Skipped, e)

			continue
		}

		result.Imported = append(result.Imported, e)
	}

	if len(result.Imported) > 0 {
		if err := itx.CreateExpenses(ctx, result.Imported); err != nil {
			return nil, fmt.Errorf("create expenses: %w", err)
		}
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit import: %w", ledger.ErrStorage, err)
	}

	for _, e := range result.Imported {
		s.learn(ctx, e)
	}

	return result, nil
}

func (s *Service) learn(ctx context.Context, e *ledger.Expense) {
	if s.learner == nil || e.Description == "" {
		return
	}

	if err := s.learner.Learn(ctx, e.Description, e.Category.Name); err != nil {
		slog.Warn("failed to learn category mapping", "description", e.Description, "error", err)
	}
}

func checkAmountAndDate(e *ledger.Expense) error {
	if err := ledger.ValidateAmount(e.Amount); err != nil {
		return err
	}

	if e.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ledger.ErrInvalidDate)
	}

	return nil
}

type dupKey struct {
	Date        string
	Amount      string
	Description string
	CategoryID  uuid.UUID
}

func keyOf(e *ledger.Expense) dupKey {
	return dupKey{
		Date:        e.Date.Format(time.DateOnly),
		Amount:      ledger.FormatAmount(e.Amount),
		Description: e.Description,
		CategoryID:  e.Category.ID,
	}
}
