package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/budget"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    budget.CreateParams
		setupMock func(m *budget.MockRepository)
		wantMonth ledger.Month
		wantErr   error
	}

	tests := []testCase{
		{
			name: "NormalizesToFirstOfMonth",
			params: budget.CreateParams{
				Amount: decimal.NewFromInt(500),
				Date:   time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *ledger.Budget) error {
						assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), b.Month.Start())
						b.ID = uuid.New()
						return nil
					})
			},
			wantMonth: ledger.NewMonth(2024, time.March),
		},
		{
			name:    "ZeroAmount",
			params:  budget.CreateParams{Amount: decimal.Zero, Date: time.Now()},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "MissingMonth",
			params:  budget.CreateParams{Amount: decimal.NewFromInt(1)},
			wantErr: ledger.ErrInvalidDate,
		},
		{
			name: "RepoError",
			params: budget.CreateParams{
				Amount: decimal.NewFromInt(500),
				Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).Return(ledger.ErrStorage)
			},
			wantErr: ledger.ErrStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			got, err := budget.NewService(repo).Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, got.Month)
		})
	}
}

func TestService_Update_NormalizesMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	stored := &ledger.Budget{
		ID:          id,
		Amount:      decimal.NewFromInt(400),
		Month:       ledger.NewMonth(2024, time.January),
		Description: "winter",
	}

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().GetBudget(gomock.Any(), id).Return(stored, nil)
	repo.EXPECT().UpdateBudget(gomock.Any(), stored).Return(nil)

	date := time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC)

	got, err := budget.NewService(repo).Update(context.Background(), id, budget.UpdateParams{Date: &date})
	require.NoError(t, err)
	assert.Equal(t, "2024-03", got.Month.Key())
	assert.Equal(t, 1, got.Month.Start().Day())
	assert.Equal(t, "400.00", ledger.FormatAmount(got.Amount))
	assert.Equal(t, "winter", got.Description)
}

func TestService_Update_RejectsNonPositive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().
		GetBudget(gomock.Any(), id).
		Return(&ledger.Budget{ID: id, Amount: decimal.NewFromInt(1), Month: ledger.NewMonth(2024, time.May)}, nil)

	negative := decimal.NewFromInt(-3)

	_, err := budget.NewService(repo).Update(context.Background(), id, budget.UpdateParams{Amount: &negative})
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
}
