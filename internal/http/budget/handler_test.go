package budget_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/budget"
	httpbudget "github.com/MrJamesThe3rd/tally/internal/http/budget"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantMonth  string
	}

	tests := []testCase{
		{name: "MidMonthDate", body: `{"amount":"500","month":"2024-03-17"}`, wantStatus: http.StatusCreated, wantMonth: "2024-03"},
		{name: "MonthKey", body: `{"amount":"500","month":"2024-06"}`, wantStatus: http.StatusCreated, wantMonth: "2024-06"},
		{name: "ZeroAmount", body: `{"amount":"0","month":"2024-06"}`, wantStatus: http.StatusBadRequest},
		{name: "BadMonth", body: `{"amount":"1","month":"June"}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.wantStatus == http.StatusCreated {
				repo.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *ledger.Budget) error {
						b.ID = uuid.New()
						return nil
					})
			}

			r := chi.NewRouter()
			httpbudget.NewHandler(budget.NewService(repo)).Routes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantMonth != "" {
				var got struct {
					Month string `json:"month"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantMonth, got.Month)
			}
		})
	}
}
