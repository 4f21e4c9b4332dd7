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

const selectSavingsColumns = `id, amount, date, goal, description, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSavings(s scanner) (*ledger.Savings, error) {
	var sv ledger.Savings

	if err := s.Scan(&sv.ID, &sv.Amount, &sv.Date, &sv.Goal, &sv.Description, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
		return nil, err
	}

	sv.Date = ledger.DateOf(sv.Date)

	return &sv, nil
}

func (s *Store) CreateSavings(ctx context.Context, sv *ledger.Savings) error {
	query := `
		INSERT INTO savings (amount, date, goal, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, sv.Amount, sv.Date, sv.Goal, sv.Description).Scan(&sv.ID, &sv.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating savings: %w", ledger.ErrStorage, err)
	}

	return nil
}

func (s *Store) GetSavings(ctx context.Context, id uuid.UUID) (*ledger.Savings, error) {
	query := `SELECT ` + selectSavingsColumns + ` FROM savings WHERE id = $1`

	sv, err := scanSavings(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("savings %s: %w", id, ledger.ErrNotFound)
		}

		return nil, fmt.Errorf("%w: getting savings: %w", ledger.ErrStorage, err)
	}

	return sv, nil
}

func (s *Store) ListSavings(ctx context.Context) ([]*ledger.Savings, error) {
	query := `SELECT ` + selectSavingsColumns + ` FROM savings ORDER BY date DESC, created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing savings: %w", ledger.ErrStorage, err)
	}
	defer rows.Close()

	var out []*ledger.Savings

	for rows.Next() {
		sv, err := scanSavings(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning savings: %w", ledger.ErrStorage, err)
		}

		out = append(out, sv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating savings: %w", ledger.ErrStorage, err)
	}

	return out, nil
}

func (s *Store) UpdateSavings(ctx context.Context, sv *ledger.Savings) error {
	query := `
		UPDATE savings
		SET amount = $1, date = $2, goal = $3, description = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query, sv.Amount, sv.Date, sv.Goal, sv.Description, sv.ID).Scan(&sv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("savings %s: %w", sv.ID, ledger.ErrNotFound)
		}

		return fmt.Errorf("%w: updating savings: %w", ledger.ErrStorage, err)
	}

	return nil
}

func (s *Store) DeleteSavings(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM savings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting savings: %w", ledger.ErrStorage, err)
	}

	return database.ExpectOneRow(res, "savings", id)
}
