package ledger

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Month is a calendar year and month. It cannot carry a day, so any value
// written to storage is the first day of the month.
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns the month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	return MonthOf(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the month in which t occurs, ignoring the day.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return Month{Year: year, Month: month}
}

// ParseMonth parses a "YYYY-MM" key.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q", ErrInvalidDate, s)
	}

	return MonthOf(t), nil
}

// Key returns the month formatted as YYYY-MM.
func (m Month) Key() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m Month) String() string {
	return m.Key()
}

// Start returns the first day of the month at UTC midnight.
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Label returns a human readable label such as "June 2024".
func (m Month) Label() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}

// Before reports whether m is chronologically before n.
func (m Month) Before(n Month) bool {
	if m.Year != n.Year {
		return m.Year < n.Year
	}

	return m.Month < n.Month
}

// Contains reports whether t falls inside the month.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(t) == m
}

// Scan reads a DATE column.
func (m *Month) Scan(value any) error {
	var nt sql.NullTime
	if err := nt.Scan(value); err != nil {
		return err
	}

	if !nt.Valid {
		*m = Month{}
		return nil
	}

	*m = MonthOf(nt.Time)

	return nil
}

// Value always writes the first day of the month.
func (m Month) Value() (driver.Value, error) {
	return m.Start(), nil
}

func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Key())
}

// UnmarshalJSON accepts "YYYY-MM" as well as a full "YYYY-MM-DD" date,
// in which case the day is dropped.
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		*m = Month{}
		return nil
	}

	if t, err := time.Parse(time.DateOnly, s); err == nil {
		*m = MonthOf(t)
		return nil
	}

	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}
