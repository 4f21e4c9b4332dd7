package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListMappings(ctx context.Context) ([]matching.Mapping, error) {
	query := `SELECT pattern, category_name, updated_at FROM category_mappings`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing mappings: %w", ledger.ErrStorage, err)
	}
	defer rows.Close()

	var out []matching.Mapping

	for rows.Next() {
		var m matching.Mapping
		if err := rows.Scan(&m.Pattern, &m.Category, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning mapping: %w", ledger.ErrStorage, err)
		}

		out = append(out, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating mappings: %w", ledger.ErrStorage, err)
	}

	return out, nil
}

func (s *Store) UpsertMapping(ctx context.Context, pattern, categoryName string) error {
	query := `
		INSERT INTO category_mappings (pattern, category_name, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT ((lower(pattern))) DO UPDATE
		SET category_name = EXCLUDED.category_name, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, pattern, categoryName); err != nil {
		return fmt.Errorf("%w: saving mapping: %w", ledger.ErrStorage, err)
	}

	return nil
}
