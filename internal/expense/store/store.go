package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectExpenseColumns.
func scanExpense(s scanner) (*ledger.Expense, error) {
	var e ledger.Expense

	if err := s.Scan(
		&e.ID, &e.Amount, &e.Date, &e.Description,
		&e.Category.ID, &e.Category.Name, &e.Category.CreatedAt,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Date = ledger.DateOf(e.Date)

	return &e, nil
}

const selectExpenseColumns = `
	e.id, e.amount, e.date, e.description,
	c.id, c.name, c.created_at,
	e.created_at, e.updated_at
`

const insertExpense = `
	INSERT INTO expenses (amount, date, description, category_id, created_at)
	VALUES ($1, $2, $3, $4, NOW())
	RETURNING id, created_at
`

func (s *Store) CreateExpense(ctx context.Context, e *ledger.Expense) error {
	err := s.db.QueryRowContext(ctx, insertExpense,
		e.Amount,
		e.Date,
		e.Description,
		e.Category.ID,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("category %s: %w", e.Category.ID, ledger.ErrNotFound)
		}

		return fmt.Errorf("%w: creating expense: %w", ledger.ErrStorage, err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*ledger.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("expense %s: %w", id, ledger.ErrNotFound)
		}

		return nil, fmt.Errorf("%w: getting expense: %w", ledger.ErrStorage, err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*ledger.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND e.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
	}

	query += " ORDER BY e.date DESC, e.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing expenses: %w", ledger.ErrStorage, err)
	}
	defer rows.Close()

	var exps []*ledger.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning expense: %w", ledger.ErrStorage, err)
		}

		exps = append(exps, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating expenses: %w", ledger.ErrStorage, err)
	}

	return exps, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *ledger.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $1, date = $2, description = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Amount,
		e.Date,
		e.Description,
		e.Category.ID,
		e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("expense %s: %w", e.ID, ledger.ErrNotFound)
		}

		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("category %s: %w", e.Category.ID, ledger.ErrNotFound)
		}

		return fmt.Errorf("%w: updating expense: %w", ledger.ErrStorage, err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting expense: %w", ledger.ErrStorage, err)
	}

	return database.ExpectOneRow(res, "expense", id)
}

// importLockKey is the advisory lock every import takes, whatever its date range.
const importLockKey int64 = 0x74616c6c79

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding the import advisory lock. Imports
// run one at a time, so no two can both pass the duplicate check.
func (s *Store) BeginImport(ctx context.Context) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: beginning import: %w", ledger.ErrStorage, err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("%w: acquiring import lock: %w", ledger.ErrStorage, err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindDuplicates returns stored expenses in the batch's date range that share
// date, amount, description and category with an incoming one.
func (itx *importTx) FindDuplicates(ctx context.Context, exps []*ledger.Expense) ([]*ledger.Expense, error) {
	if len(exps) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date        string
		Amount      string
		Description string
		CategoryID  uuid.UUID
	}

	keyOf := func(e *ledger.Expense) lookupKey {
		return lookupKey{
			Date:        e.Date.Format(time.DateOnly),
			Amount:      ledger.FormatAmount(e.Amount),
			Description: e.Description,
			CategoryID:  e.Category.ID,
		}
	}

	minDate := exps[0].Date
	maxDate := exps[0].Date
	keySet := make(map[lookupKey]struct{}, len(exps))

	for _, e := range exps {
		if e.Date.Before(minDate) {
			minDate = e.Date
		}

		if e.Date.After(maxDate) {
			maxDate = e.Date
		}

		keySet[keyOf(e)] = struct{}{}
	}

	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses e
		JOIN categories c ON e.category_id = c.id
		WHERE e.date >= $1 AND e.date <= $2
		ORDER BY e.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("%w: finding duplicates: %w", ledger.ErrStorage, err)
	}
	defer rows.Close()

	var duplicates []*ledger.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning expense: %w", ledger.ErrStorage, err)
		}

		if _, found := keySet[keyOf(e)]; found {
			duplicates = append(duplicates, e)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating duplicate rows: %w", ledger.ErrStorage, err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateExpenses(ctx context.Context, exps []*ledger.Expense) error {
	for _, e := range exps {
		err := itx.tx.QueryRowContext(ctx, insertExpense,
			e.Amount,
			e.Date,
			e.Description,
			e.Category.ID,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return fmt.Errorf("%w: creating expense: %w", ledger.ErrStorage, err)
		}
	}

	return nil
}
