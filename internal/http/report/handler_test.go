package report

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type stubExpenses struct {
	exps   []*ledger.Expense
	err    error
	filter expense.ListFilter
}

func (s *stubExpenses) List(_ context.Context, f expense.ListFilter) ([]*ledger.Expense, error) {
	s.filter = f
	return s.exps, s.err
}

type stubBudgets []*ledger.Budget

func (s stubBudgets) List(context.Context) ([]*ledger.Budget, error) { return s, nil }

type stubSavings []*ledger.Savings

func (s stubSavings) List(context.Context) ([]*ledger.Savings, error) { return s, nil }

func june(day int) time.Time {
	return time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC)
}

func newRouter(exps *stubExpenses, budgets stubBudgets, savings stubSavings) chi.Router {
	h := NewHandler(report.NewService(exps, budgets, savings))
	h.now = func() time.Time { return june(15) }

	r := chi.NewRouter()
	h.Routes(r)

	return r
}

func get(t *testing.T, r chi.Router, target string, v any) int {
	t.Helper()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if v != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
	}

	return rec.Code
}

func TestHandler_Dashboard(t *testing.T) {
	exps := &stubExpenses{exps: []*ledger.Expense{
		{Amount: decimal.RequireFromString("600"), Date: june(3), Category: ledger.Category{Name: "Food"}},
	}}
	budgets := stubBudgets{{Amount: decimal.RequireFromString("500"), Month: ledger.MonthOf(june(1))}}

	var got struct {
		Message string `json:"message"`
		Budget  struct {
			CurrentMonth string `json:"current_month"`
		} `json:"budget"`
	}

	code := get(t, newRouter(exps, budgets, nil), "/dashboard", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-06", got.Budget.CurrentMonth)
	assert.Contains(t, got.Message, "exceeded your total budget by 100.00")

	code = get(t, newRouter(exps, budgets, nil), "/dashboard?today=2025-01-02", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2025-01", got.Budget.CurrentMonth)

	assert.Equal(t, http.StatusBadRequest, get(t, newRouter(exps, budgets, nil), "/dashboard?today=soon", nil))
}

func TestHandler_Dashboard_FixedDecimals(t *testing.T) {
	type totals struct {
		Spend   string `json:"spend"`
		Budget  string `json:"budget"`
		Savings string `json:"savings"`
	}

	var got struct {
		Totals   totals `json:"totals"`
		Overview struct {
			Delta string `json:"delta"`
		} `json:"overview"`
		Breakdown []struct {
			Total string `json:"total"`
		} `json:"breakdown"`
	}

	code := get(t, newRouter(&stubExpenses{}, nil, nil), "/dashboard", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, totals{Spend: "0.00", Budget: "0.00", Savings: "0.00"}, got.Totals)
	assert.Equal(t, "0.00", got.Overview.Delta)

	exps := &stubExpenses{exps: []*ledger.Expense{
		{Amount: decimal.RequireFromString("600"), Date: june(3), Category: ledger.Category{Name: "Food"}},
	}}
	budgets := stubBudgets{{Amount: decimal.RequireFromString("500"), Month: ledger.MonthOf(june(1))}}

	code = get(t, newRouter(exps, budgets, nil), "/dashboard", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "600.00", got.Totals.Spend)
	assert.Equal(t, "100.00", got.Overview.Delta)
	require.Len(t, got.Breakdown, 1)
	assert.Equal(t, "600.00", got.Breakdown[0].Total)
}

func TestHandler_Trends(t *testing.T) {
	var got struct {
		Insights []struct {
			Classification string `json:"classification"`
			Delta          string `json:"delta"`
			Message        string `json:"message"`
		} `json:"insights"`
		Series []struct {
			Budget string `json:"budget"`
		} `json:"series"`
		Message string `json:"message"`
	}

	code := get(t, newRouter(&stubExpenses{}, nil, nil), "/trends", &got)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, got.Insights)
	assert.Equal(t, report.NoDataMessage, got.Message)

	exps := &stubExpenses{exps: []*ledger.Expense{
		{Amount: decimal.RequireFromString("600"), Date: june(3), Category: ledger.Category{Name: "Food"}},
	}}
	budgets := stubBudgets{{Amount: decimal.RequireFromString("500"), Month: ledger.MonthOf(june(1))}}

	code = get(t, newRouter(exps, budgets, nil), "/trends", &got)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got.Insights, 1)
	assert.Equal(t, "over_budget", got.Insights[0].Classification)
	assert.Equal(t, "100.00", got.Insights[0].Delta)
	assert.Equal(t, "In 2024-06, you overspent by 100.00.", got.Insights[0].Message)
	require.Len(t, got.Series, 1)
	assert.Equal(t, "500.00", got.Series[0].Budget)
}

func TestHandler_Breakdown(t *testing.T) {
	exps := &stubExpenses{exps: []*ledger.Expense{
		{Amount: decimal.RequireFromString("10.10"), Date: june(3), Category: ledger.Category{Name: "Food"}},
		{Amount: decimal.RequireFromString("4.90"), Date: june(4), Category: ledger.Category{Name: "food"}},
	}}

	var got struct {
		Chart []report.ChartPoint `json:"chart"`
	}

	code := get(t, newRouter(exps, nil, nil), "/breakdown?month=2024-02", &got)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, got.Chart, 1)
	assert.Equal(t, "Food", got.Chart[0].Label)
	assert.InDelta(t, 15.0, got.Chart[0].Value, 0.001)

	require.NotNil(t, exps.filter.EndDate)
	assert.Equal(t, 29, exps.filter.EndDate.Day())

	assert.Equal(t, http.StatusBadRequest, get(t, newRouter(exps, nil, nil), "/breakdown?month=feb", nil))

	exps.err = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError, get(t, newRouter(exps, nil, nil), "/breakdown", nil))
}
