package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept for stored amounts.
const AmountScale = 2

// maxAmount matches the NUMERIC(10,2) storage column.
var maxAmount = decimal.New(1, 8)

// ParseAmount parses user-entered amount text. Both "1234.56" and "1.234,56"
// are accepted. More than AmountScale fractional digits is an error, so a lone
// thousands separator such as "1,234" is rejected rather than read as cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount is required", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(normalizeSeparators(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	if d.Exponent() < -AmountScale {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d decimals", ErrInvalidAmount, s, AmountScale)
	}

	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}

	return d, nil
}

// ValidateAmount enforces amount > 0 and the storage range.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	if d.GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: amount must be below %s", ErrInvalidAmount, maxAmount)
	}

	return nil
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}

// normalizeSeparators turns the decimal separator into a dot and drops
// thousands separators. The right-most of ',' and '.' is the decimal one.
func normalizeSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma && lastComma >= 0:
		return strings.ReplaceAll(s, ",", "")
	}

	return s
}

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

// ParseDate parses a calendar date in YYYY-MM-DD, DD-MM-YYYY or DD/MM/YYYY form.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// DateOf strips the clock from t and returns the calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func validateDate(t time.Time) error {
	if t.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	return nil
}

func validateLength(field, value string, limit int) error {
	if len([]rune(value)) > limit {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, field, limit)
	}

	return nil
}
