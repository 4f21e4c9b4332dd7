package ledger_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr error
	}

	tests := []testCase{
		{name: "Dot decimal", input: "12.34", want: "12.34"},
		{name: "Comma decimal", input: "12,34", want: "12.34"},
		{name: "European thousands", input: "1.234,56", want: "1234.56"},
		{name: "English thousands", input: "1,234.56", want: "1234.56"},
		{name: "Surrounding space", input: "  7 ", want: "7.00"},
		{name: "One decimal", input: "3,5", want: "3.50"},
		{name: "Lone comma thousands", input: "1,234", wantErr: ledger.ErrInvalidAmount},
		{name: "Lone dot thousands", input: "1.234", wantErr: ledger.ErrInvalidAmount},
		{name: "Sub-cent precision", input: "12.345", wantErr: ledger.ErrInvalidAmount},
		{name: "Sub-cent trailing zero", input: "0.010", wantErr: ledger.ErrInvalidAmount},
		{name: "Empty", input: "   ", wantErr: ledger.ErrInvalidAmount},
		{name: "Not a number", input: "abc", wantErr: ledger.ErrInvalidAmount},
		{name: "Zero", input: "0", wantErr: ledger.ErrInvalidAmount},
		{name: "Negative", input: "-5", wantErr: ledger.ErrInvalidAmount},
		{name: "Too large", input: "100000000", wantErr: ledger.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ParseAmount(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, ledger.IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ledger.FormatAmount(got))
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ledger.ParseDate("2024-03-17")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 17), got)

	got, err = ledger.ParseDate("17-03-2024")
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 17), got)

	_, err = ledger.ParseDate("")
	assert.ErrorIs(t, err, ledger.ErrInvalidDate)

	_, err = ledger.ParseDate("March")
	assert.ErrorIs(t, err, ledger.ErrInvalidDate)
}

func TestMonth(t *testing.T) {
	m := ledger.MonthOf(date(2024, 3, 17))

	assert.Equal(t, "2024-03", m.Key())
	assert.Equal(t, date(2024, 3, 1), m.Start())
	assert.Equal(t, "March 2024", m.Label())
	assert.True(t, m.Contains(date(2024, 3, 31)))
	assert.False(t, m.Contains(date(2024, 4, 1)))
	assert.Equal(t, ledger.NewMonth(2024, time.March), m)

	assert.True(t, ledger.NewMonth(2023, time.December).Before(m))
	assert.False(t, m.Before(ledger.NewMonth(2024, time.February)))

	v, err := m.Value()
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1), v)

	var scanned ledger.Month
	require.NoError(t, scanned.Scan(date(2024, 3, 17)))
	assert.Equal(t, m, scanned)

	parsed, err := ledger.ParseMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, m, parsed)

	_, err = ledger.ParseMonth("2024-13")
	assert.ErrorIs(t, err, ledger.ErrInvalidDate)
}

func TestMonth_JSON(t *testing.T) {
	var got struct {
		A ledger.Month `json:"a"`
		B ledger.Month `json:"b"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-06","b":"2024-06-15"}`), &got))
	assert.Equal(t, ledger.NewMonth(2024, time.June), got.A)
	assert.Equal(t, ledger.NewMonth(2024, time.June), got.B)

	out, err := json.Marshal(got.B)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06"`, string(out))
}

func TestCategory_Equal(t *testing.T) {
	a := ledger.Category{Name: "Groceries"}

	assert.True(t, a.Equal(ledger.Category{Name: "  groceries "}))
	assert.True(t, a.Equal(ledger.Category{Name: "GROCERIES"}))
	assert.False(t, a.Equal(ledger.Category{Name: "Grocery"}))
	assert.Equal(t, ledger.NormalizeName("FOOD"), ledger.NormalizeName(" food\t"))
}

func TestCleanCategoryName(t *testing.T) {
	got, err := ledger.CleanCategoryName("  Food ")
	require.NoError(t, err)
	assert.Equal(t, "Food", got)

	for _, blank := range []string{"", "   ", "\t\n"} {
		_, err := ledger.CleanCategoryName(blank)
		assert.ErrorIs(t, err, ledger.ErrEmptyCategoryName)
	}
}

func TestCategorySelection(t *testing.T) {
	id := uuid.New()

	existing := ledger.Existing(id)
	assert.True(t, existing.IsExisting())
	assert.False(t, existing.IsNewName())
	assert.Equal(t, id, existing.ID())

	typed := ledger.NewName("Coffee")
	assert.True(t, typed.IsNewName())
	assert.Equal(t, "Coffee", typed.Name())

	assert.True(t, ledger.CategorySelection{}.IsZero())
}

func TestRecords_Validate(t *testing.T) {
	cat := ledger.Category{ID: uuid.New(), Name: "Food"}

	valid := &ledger.Expense{Amount: decimal.RequireFromString("3.50"), Date: date(2024, 1, 2), Category: cat}
	assert.NoError(t, valid.Validate())

	noCategory := &ledger.Expense{Amount: decimal.RequireFromString("3.50"), Date: date(2024, 1, 2)}
	assert.ErrorIs(t, noCategory.Validate(), ledger.ErrEmptyCategoryName)

	noDate := &ledger.Savings{Amount: decimal.RequireFromString("1")}
	assert.ErrorIs(t, noDate.Validate(), ledger.ErrInvalidDate)

	zeroBudget := &ledger.Budget{Amount: decimal.Zero, Month: ledger.NewMonth(2024, time.May)}
	assert.ErrorIs(t, zeroBudget.Validate(), ledger.ErrInvalidAmount)

	longGoal := &ledger.Savings{
		Amount: decimal.RequireFromString("1"),
		Date:   date(2024, 1, 2),
		Goal:   string(make([]rune, 101)),
	}
	assert.ErrorIs(t, longGoal.Validate(), ledger.ErrFieldTooLong)
}
