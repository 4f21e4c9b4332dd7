package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	maxDescription = 255
	maxGoal        = 100
)

// Expense is a single spend, always tied to one category.
type Expense struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	Category    Category
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Validate checks the expense can be written.
func (e *Expense) Validate() error {
	if err := ValidateAmount(e.Amount); err != nil {
		return err
	}

	if err := validateDate(e.Date); err != nil {
		return err
	}

	if e.Category.ID == uuid.Nil {
		return ErrEmptyCategoryName
	}

	return validateLength("description", e.Description, maxDescription)
}

// Budget is the amount planned for one calendar month.
type Budget struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Month       Month
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (b *Budget) Validate() error {
	if err := ValidateAmount(b.Amount); err != nil {
		return err
	}

	if b.Month.IsZero() {
		return ErrInvalidDate
	}

	return validateLength("description", b.Description, maxDescription)
}

// Savings is money put aside on a date, optionally towards a named goal.
type Savings struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Date        time.Time
	Goal        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (s *Savings) Validate() error {
	if err := ValidateAmount(s.Amount); err != nil {
		return err
	}

	if err := validateDate(s.Date); err != nil {
		return err
	}

	if err := validateLength("goal", s.Goal, maxGoal); err != nil {
		return err
	}

	return validateLength("description", s.Description, maxDescription)
}
