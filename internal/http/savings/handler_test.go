package savings_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	httpsavings "github.com/MrJamesThe3rd/tally/internal/http/savings"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/savings"
)

func newRouter(repo savings.Repository) chi.Router {
	r := chi.NewRouter()
	httpsavings.NewHandler(savings.NewService(repo)).Routes(r)

	return r
}

func TestHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := savings.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateSavings(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *ledger.Savings) error {
			assert.Equal(t, "Holiday", s.Goal)
			s.ID = uuid.New()
			return nil
		})

	rec := httptest.NewRecorder()
	body := `{"amount":"75,5","date":"2024-06-10","goal":" Holiday "}`
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		Amount string `json:"amount"`
		Date   string `json:"date"`
		Goal   string `json:"goal"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "75.50", got.Amount)
	assert.Equal(t, "2024-06-10", got.Date)
	assert.Equal(t, "Holiday", got.Goal)
}

func TestHandler_Create_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"ZeroAmount": `{"amount":"0","date":"2024-06-10"}`,
		"BadAmount":  `{"amount":"lots","date":"2024-06-10"}`,
		"NoDate":     `{"amount":"10"}`,
		"BadJSON":    `{`,
	} {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rec := httptest.NewRecorder()
			newRouter(savings.NewMockRepository(ctrl)).
				ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	stored := &ledger.Savings{
		ID:     id,
		Amount: decimal.RequireFromString("10"),
		Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Goal:   "Car",
	}

	repo := savings.NewMockRepository(ctrl)
	repo.EXPECT().GetSavings(gomock.Any(), id).Return(stored, nil)
	repo.EXPECT().UpdateSavings(gomock.Any(), gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	newRouter(repo).ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+id.String(), strings.NewReader(`{"goal":"House"}`)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "House", stored.Goal)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("10")))
}
