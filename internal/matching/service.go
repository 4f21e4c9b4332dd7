// Package matching remembers which category an expense description was filed
// under and suggests it again for similar descriptions.
package matching

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Mapping is a learned description pattern and the category it was filed under.
type Mapping struct {
	Pattern   string
	Category  string
	UpdatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	ListMappings(ctx context.Context) ([]Mapping, error)
	UpsertMapping(ctx context.Context, pattern, categoryName string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns a category name for description. Returns "" if no match found.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", nil
	}

	mappings, err := s.repo.ListMappings(ctx)
	if err != nil {
		return "", err
	}

	return BestMatch(description, mappings), nil
}

// BestMatch returns the category of the longest pattern contained in
// description, compared case-insensitively and literally. Ties go to the most
// recently updated mapping. Returns "" when nothing matches.
func BestMatch(description string, mappings []Mapping) string {
	text := ledger.NormalizeName(description)

	var best *Mapping

	bestLen := 0

	for i := range mappings {
		m := &mappings[i]

		pattern := ledger.NormalizeName(m.Pattern)
		if pattern == "" || !strings.Contains(text, pattern) {
			continue
		}

		n := utf8.RuneCountInString(pattern)
		if best == nil || n > bestLen || (n == bestLen && m.UpdatedAt.After(best.UpdatedAt)) {
			best, bestLen = m, n
		}
	}

	if best == nil {
		return ""
	}

	return best.Category
}

// Learn maps description to categoryName, replacing any earlier mapping of
// the same description.
func (s *Service) Learn(ctx context.Context, description, categoryName string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	name, err := ledger.CleanCategoryName(categoryName)
	if err != nil {
		return err
	}

	return s.repo.UpsertMapping(ctx, description, name)
}
