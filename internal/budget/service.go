package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *ledger.Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*ledger.Budget, error)
	UpdateBudget(ctx context.Context, b *ledger.Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	ListBudgets(ctx context.Context) ([]*ledger.Budget, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateParams describes a new budget. Any day of the month may be given as
// Date; the budget is always stored against the first of that month.
type CreateParams struct {
	Amount      decimal.Decimal
	Date        time.Time
	Description string
}

// UpdateParams carries a partial edit; nil fields are left unchanged.
type UpdateParams struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	Description *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*ledger.Budget, error) {
	if params.Date.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ledger.ErrInvalidDate)
	}

	b := &ledger.Budget{
		Amount:      params.Amount.Round(ledger.AmountScale),
		Month:       ledger.MonthOf(params.Date),
		Description: strings.TrimSpace(params.Description),
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ledger.Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

// List returns budgets ordered by month, latest first.
func (s *Service) List(ctx context.Context) ([]*ledger.Budget, error) {
	return s.repo.ListBudgets(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*ledger.Budget, error) {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		b.Amount = params.Amount.Round(ledger.AmountScale)
	}

	if params.Date != nil {
		if params.Date.IsZero() {
			return nil, fmt.Errorf("%w: month is required", ledger.ErrInvalidDate)
		}

		b.Month = ledger.MonthOf(*params.Date)
	}

	if params.Description != nil {
		b.Description = strings.TrimSpace(*params.Description)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteBudget(ctx, id)
}
