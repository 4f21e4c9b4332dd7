package expense_test

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

	"github.com/MrJamesThe3rd/tally/internal/expense"
	httpexpense "github.com/MrJamesThe3rd/tally/internal/http/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type deps struct {
	repo *expense.MockRepository
	cats *expense.MockCategoryResolver
}

func newRouter(ctrl *gomock.Controller) (http.Handler, deps) {
	d := deps{repo: expense.NewMockRepository(ctrl), cats: expense.NewMockCategoryResolver(ctrl)}

	r := chi.NewRouter()
	httpexpense.NewHandler(expense.NewService(d.repo, d.cats, nil)).Routes(r)

	return r, d
}

func TestHandler_Create(t *testing.T) {
	food := &ledger.Category{ID: uuid.New(), Name: "Food"}

	type testCase struct {
		name       string
		body       string
		setupMock  func(d deps)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "ByName",
			body: `{"amount":"12,5","date":"2024-06-15","description":"lunch","category":"food"}`,
			setupMock: func(d deps) {
				d.cats.EXPECT().ResolveSelection(gomock.Any(), ledger.NewName("food")).Return(food, false, nil)
				d.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "ByID",
			body: `{"amount":"3","date":"15-06-2024","category_id":"` + food.ID.String() + `"}`,
			setupMock: func(d deps) {
				d.cats.EXPECT().ResolveSelection(gomock.Any(), ledger.Existing(food.ID)).Return(food, false, nil)
				d.repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "NegativeAmount",
			body:       `{"amount":"-3","date":"2024-06-15","category":"food"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MissingDate",
			body:       `{"amount":"3","category":"food"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "NoCategory",
			body: `{"amount":"3","date":"2024-06-15"}`,
			setupMock: func(d deps) {
				d.cats.EXPECT().ResolveSelection(gomock.Any(), ledger.CategorySelection{}).Return(nil, false, ledger.ErrEmptyCategoryName)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "UnknownCategoryID",
			body: `{"amount":"3","date":"2024-06-15","category_id":"` + uuid.NewString() + `"}`,
			setupMock: func(d deps) {
				d.cats.EXPECT().ResolveSelection(gomock.Any(), gomock.Any()).Return(nil, false, ledger.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, d := newRouter(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(d)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestHandler_Create_ResponseBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, d := newRouter(ctrl)
	cat := &ledger.Category{ID: uuid.New(), Name: "Coffee"}

	d.cats.EXPECT().ResolveSelection(gomock.Any(), gomock.Any()).Return(cat, true, nil)
	d.repo.EXPECT().
		CreateExpense(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Expense) error {
			e.ID = uuid.New()
			return nil
		})

	rec := httptest.NewRecorder()
	body := `{"amount":"1.234,5","date":"2024-06-15","category":"Coffee"}`
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "1234.50", got["amount"])
	assert.Equal(t, "2024-06-15", got["date"])
	assert.Equal(t, true, got["new_category"])
}

func TestHandler_Update_Partial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, d := newRouter(ctrl)
	id := uuid.New()
	stored := &ledger.Expense{
		ID:       id,
		Amount:   decimal.NewFromInt(5),
		Date:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Category: ledger.Category{ID: uuid.New(), Name: "Food"},
	}

	d.repo.EXPECT().GetExpense(gomock.Any(), id).Return(stored, nil)
	d.repo.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).Return(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+id.String(), strings.NewReader(`{"description":"snack"}`)))

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "snack", got["description"])
	assert.Equal(t, "5.00", got["amount"])
}

func TestHandler_List_MonthFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, d := newRouter(ctrl)

	d.repo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f expense.ListFilter) ([]*ledger.Expense, error) {
			require.NotNil(t, f.StartDate)
			require.NotNil(t, f.EndDate)
			assert.Equal(t, "2024-02-01", f.StartDate.Format(time.DateOnly))
			assert.Equal(t, "2024-02-29", f.EndDate.Format(time.DateOnly))

			return nil, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?month=2024-02", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_List_InvalidFilters(t *testing.T) {
	tests := []string{
		"/?month=feb",
		"/?start_date=2024-13-01",
		"/?end_date=yesterday",
		"/?start_date=2024-01-01&end_date=31-01-2024",
		"/?category_id=food",
	}

	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			router, _ := newRouter(ctrl)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandler_List_DateRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, d := newRouter(ctrl)

	d.repo.EXPECT().
		ListExpenses(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f expense.ListFilter) ([]*ledger.Expense, error) {
			require.NotNil(t, f.StartDate)
			require.NotNil(t, f.EndDate)
			assert.Equal(t, "2024-01-05", f.StartDate.Format(time.DateOnly))
			assert.Equal(t, "2024-01-20", f.EndDate.Format(time.DateOnly))

			return nil, nil
		})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?start_date=2024-01-05&end_date=2024-01-20", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Delete_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	router, d := newRouter(ctrl)
	d.repo.EXPECT().DeleteExpense(gomock.Any(), gomock.Any()).Return(ledger.ErrNotFound)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/"+uuid.NewString(), nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
