package database_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestExpectOneRow(t *testing.T) {
	id := uuid.New()

	assert.NoError(t, database.ExpectOneRow(fakeResult{rows: 1}, "expense", id))
	assert.ErrorIs(t, database.ExpectOneRow(fakeResult{rows: 0}, "expense", id), ledger.ErrNotFound)
	assert.ErrorIs(t, database.ExpectOneRow(fakeResult{err: errors.New("boom")}, "expense", id), ledger.ErrStorage)
}

func TestViolationCodes(t *testing.T) {
	fk := fmt.Errorf("delete: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation}

	assert.True(t, database.IsForeignKeyViolation(fk))
	assert.False(t, database.IsForeignKeyViolation(unique))
	assert.False(t, database.IsForeignKeyViolation(errors.New("plain")))
}
