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

// CreateCategory inserts c. On a name collision under lower(name) the
// existing row is returned instead; xmax = 0 only holds for fresh inserts.
func (s *Store) CreateCategory(ctx context.Context, c *ledger.Category) (bool, error) {
	query := `
		INSERT INTO categories (name, created_at)
		VALUES ($1, NOW())
		ON CONFLICT ((lower(name))) DO UPDATE SET name = categories.name
		RETURNING id, name, created_at, (xmax = 0) AS inserted
	`

	var inserted bool

	err := s.db.QueryRowContext(ctx, query, c.Name).Scan(&c.ID, &c.Name, &c.CreatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("%w: creating category: %w", ledger.ErrStorage, err)
	}

	return inserted, nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*ledger.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE id = $1`

	var c ledger.Category

	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category %s: %w", id, ledger.ErrNotFound)
		}

		return nil, fmt.Errorf("%w: getting category: %w", ledger.ErrStorage, err)
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*ledger.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, created_at FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing categories: %w", ledger.ErrStorage, err)
	}
	defer rows.Close()

	var cats []*ledger.Category

	for rows.Next() {
		var c ledger.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning category: %w", ledger.ErrStorage, err)
		}

		cats = append(cats, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating categories: %w", ledger.ErrStorage, err)
	}

	return cats, nil
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("category %s: %w", id, ledger.ErrCategoryInUse)
		}

		return fmt.Errorf("%w: deleting category: %w", ledger.ErrStorage, err)
	}

	return database.ExpectOneRow(res, "category", id)
}

func (s *Store) CountExpenses(ctx context.Context, id uuid.UUID) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses WHERE category_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: counting expenses: %w", ledger.ErrStorage, err)
	}

	return n, nil
}
