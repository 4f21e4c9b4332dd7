package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// ErrNoHeader is returned when no row names a date and an amount column.
var ErrNoHeader = errors.New("no header row with date and amount columns")

// Row is one expense read from a file. Category may be empty.
type Row struct {
	Line        int
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    string
}

// RowError reports a data row that could not be read.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e RowError) Unwrap() error { return e.Err }

type Parsed struct {
	Rows []Row
	// Income counts credit rows, which are not expenses and are left out.
	Income int
	Errors []RowError
}

type signedRow struct {
	Row
	negative bool
}

// Parse reads a semicolon or comma separated export. Files with a signed
// amount column keep only the negative rows when any are present, as bank
// statements list spending as debits. Files with debit and credit columns
// keep the debits.
func Parse(r io.Reader) (*Parsed, error) {
	utf8r, err := toUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffDelimiter(string(data[:min(len(data), sniffSize)]))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	l, headerIdx, ok := detectLayout(records)
	if !ok {
		return nil, ErrNoHeader
	}

	out := &Parsed{}

	var signed []signedRow

	anyNegative := false

	for i, rec := range records[headerIdx+1:] {
		line := headerIdx + i + 2

		dateText := l.cell(rec, colDate)
		if dateText == "" {
			continue
		}

		date, err := ledger.ParseDate(dateText)
		if err != nil {
			out.Errors = append(out.Errors, RowError{Line: line, Err: err})
			continue
		}

		row := Row{
			Line:        line,
			Date:        ledger.DateOf(date),
			Description: l.cell(rec, colDescription),
			Category:    l.cell(rec, colCategory),
		}

		if _, signedCol := l[colAmount]; !signedCol {
			amount, isDebit, err := splitAmount(l, rec)
			switch {
			case err != nil:
				out.Errors = append(out.Errors, RowError{Line: line, Err: err})
			case !isDebit:
				out.Income++
			default:
				row.Amount = amount
				out.Rows = append(out.Rows, row)
			}

			continue
		}

		amount, negative, err := signedAmount(l.cell(rec, colAmount))
		if err != nil {
			out.Errors = append(out.Errors, RowError{Line: line, Err: err})
			continue
		}

		row.Amount = amount
		anyNegative = anyNegative || negative
		signed = append(signed, signedRow{Row: row, negative: negative})
	}

	for _, s := range signed {
		if anyNegative && !s.negative {
			out.Income++
			continue
		}

		out.Rows = append(out.Rows, s.Row)
	}

	return out, nil
}

// signedAmount parses an amount that may carry a sign and returns its
// absolute value.
func signedAmount(s string) (decimal.Decimal, bool, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimLeft(s, "+-")

	d, err := ledger.ParseAmount(s)
	if err != nil {
		return decimal.Decimal{}, false, err
	}

	return d, negative, nil
}

func splitAmount(l layout, rec []string) (decimal.Decimal, bool, error) {
	if s := l.cell(rec, colDebit); s != "" {
		d, _, err := signedAmount(s)
		return d, true, err
	}

	if s := l.cell(rec, colCredit); s != "" {
		_, _, err := signedAmount(s)
		return decimal.Decimal{}, false, err
	}

	return decimal.Decimal{}, false, fmt.Errorf("%w: no debit or credit", ledger.ErrInvalidAmount)
}
