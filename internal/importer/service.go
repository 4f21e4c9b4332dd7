// Package importer reads expense exports (CSV from spreadsheets or banks)
// and stores them through the category resolver and expense service.
package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// FallbackCategory files rows with no category and no learned mapping.
const FallbackCategory = "Other"

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type CategoryResolver interface {
	Resolve(ctx context.Context, rawName string) (*ledger.Category, bool, error)
}

type Suggester interface {
	Suggest(ctx context.Context, description string) (string, error)
}

type ExpenseImporter interface {
	ImportBatch(ctx context.Context, exps []*ledger.Expense) (*expense.ImportResult, error)
}

type Service struct {
	categories CategoryResolver
	suggester  Suggester
	expenses   ExpenseImporter
}

func NewService(categories CategoryResolver, suggester Suggester, expenses ExpenseImporter) *Service {
	return &Service{categories: categories, suggester: suggester, expenses: expenses}
}

type Result struct {
	Imported []*ledger.Expense
	// Duplicates were already stored and were not imported again.
	Duplicates    int
	Income        int
	NewCategories []string
	Errors        []RowError
}

// Import parses r and stores every readable row. Rows that fail to parse or
// validate are reported in Result.Errors and do not stop the import.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	parsed, err := Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{Income: parsed.Income, Errors: parsed.Errors}
	resolved := make(map[string]*ledger.Category)

	var exps []*ledger.Expense

	for _, row := range parsed.Rows {
		name := s.categoryName(ctx, row)

		key := ledger.NormalizeName(name)

		cat, ok := resolved[key]
		if !ok {
			var isNew bool

			cat, isNew, err = s.categories.Resolve(ctx, name)
			if err != nil {
				if ledger.IsValidation(err) {
					result.Errors = append(result.Errors, RowError{Line: row.Line, Err: err})
					continue
				}

				return nil, fmt.Errorf("line %d: resolving category: %w", row.Line, err)
			}

			if isNew {
				result.NewCategories = append(result.NewCategories, cat.Name)
			}

			resolved[key] = cat
		}

		e := &ledger.Expense{
			Amount:      row.Amount,
			Date:        row.Date,
			Description: row.Description,
			Category:    *cat,
		}

		if err := e.Validate(); err != nil {
			result.Errors = append(result.Errors, RowError{Line: row.Line, Err: err})
			continue
		}

		exps = append(exps, e)
	}

	batch, err := s.expenses.ImportBatch(ctx, exps)
	if err != nil {
		return nil, err
	}

	result.Imported = batch.Imported
	result.Duplicates = len(batch.Skipped)

	return result, nil
}

func (s *Service) categoryName(ctx context.Context, row Row) string {
	if row.Category != "" {
		return row.Category
	}

	if s.suggester != nil && row.Description != "" {
		name, err := s.suggester.Suggest(ctx, row.Description)
		if err != nil {
			slog.Warn("failed to suggest category", "line", row.Line, "error", err)
		}

		if name != "" {
			return name
		}
	}

	return FallbackCategory
}
