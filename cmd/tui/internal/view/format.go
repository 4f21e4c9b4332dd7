package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const dbTimeout = 5 * time.Second

func FormatAmount(d decimal.Decimal) string {
	return ledger.FormatAmount(d)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// validateAmount is a huh validator for amount inputs.
func validateAmount(s string) error {
	_, err := ledger.ParseAmount(s)
	return err
}

func validateDate(s string) error {
	_, err := ledger.ParseDate(s)
	return err
}

func validateMonth(s string) error {
	_, err := ledger.ParseMonth(s)
	return err
}
