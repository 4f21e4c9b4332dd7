package savings

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=savings
type Repository interface {
	CreateSavings(ctx context.Context, s *ledger.Savings) error
	GetSavings(ctx context.Context, id uuid.UUID) (*ledger.Savings, error)
	UpdateSavings(ctx context.Context, s *ledger.Savings) error
	DeleteSavings(ctx context.Context, id uuid.UUID) error
	ListSavings(ctx context.Context) ([]*ledger.Savings, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Amount      decimal.Decimal
	Date        time.Time
	Goal        string
	Description string
}

// UpdateParams carries a partial edit; nil fields are left unchanged.
type UpdateParams struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	Goal        *string
	Description *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*ledger.Savings, error) {
	sv := &ledger.Savings{
		Amount:      params.Amount.Round(ledger.AmountScale),
		Date:        ledger.DateOf(params.Date),
		Goal:        strings.TrimSpace(params.Goal),
		Description: strings.TrimSpace(params.Description),
	}

	if err := sv.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreateSavings(ctx, sv); err != nil {
		return nil, err
	}

	return sv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ledger.Savings, error) {
	return s.repo.GetSavings(ctx, id)
}

// List returns savings newest first.
func (s *Service) List(ctx context.Context) ([]*ledger.Savings, error) {
	return s.repo.ListSavings(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*ledger.Savings, error) {
	sv, err := s.repo.GetSavings(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Amount != nil {
		sv.Amount = params.Amount.Round(ledger.AmountScale)
	}

	if params.Date != nil {
		sv.Date = ledger.DateOf(*params.Date)
	}

	if params.Goal != nil {
		sv.Goal = strings.TrimSpace(*params.Goal)
	}

	if params.Description != nil {
		sv.Description = strings.TrimSpace(*params.Description)
	}

	if err := sv.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSavings(ctx, sv); err != nil {
		return nil, err
	}

	return sv, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteSavings(ctx, id)
}
