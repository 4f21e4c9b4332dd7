package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectBudgetColumns = `id, amount, month, description, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(s scanner) (*ledger.Budget, error) {
	var b ledger.Budget

	if err := s.Scan(&b.ID, &b.Amount, &b.Month, &b.Description, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *Store) CreateBudget(ctx context.Context, b *ledger.Budget) error {
	query := `
		INSERT INTO budgets (amount, month, description, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Amount, b.Month, b.Description).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating budget: %w", ledger.ErrStorage, err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*ledger.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("budget %s: %w", id, ledger.ErrNotFound)
		}

		return nil, fmt.Errorf("%w: getting budget: %w", ledger.ErrStorage, err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]*ledger.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets ORDER BY month DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing budgets: %w", ledger.ErrStorage, err)
	}
	defer rows.Close()

	var budgets []*ledger.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning budget: %w", ledger.ErrStorage, err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating budgets: %w", ledger.ErrStorage, err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *ledger.Budget) error {
	query := `
		UPDATE budgets
		SET amount = $1, month = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, b.Amount, b.Month, b.Description, b.ID).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("budget %s: %w", b.ID, ledger.ErrNotFound)
		}

		return fmt.Errorf("%w: updating budget: %w", ledger.ErrStorage, err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting budget: %w", ledger.ErrStorage, err)
	}

	return database.ExpectOneRow(res, "budget", id)
}
