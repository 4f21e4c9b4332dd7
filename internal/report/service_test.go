package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type fakeExpenses struct {
	exps    []*ledger.Expense
	err     error
	filters []expense.ListFilter
}

func (f *fakeExpenses) List(_ context.Context, filter expense.ListFilter) ([]*ledger.Expense, error) {
	f.filters = append(f.filters, filter)
	return f.exps, f.err
}

type fakeBudgets struct {
	budgets []*ledger.Budget
	err     error
}

func (f *fakeBudgets) List(context.Context) ([]*ledger.Budget, error) { return f.budgets, f.err }

type fakeSavings struct {
	savings []*ledger.Savings
	err     error
}

func (f *fakeSavings) List(context.Context) ([]*ledger.Savings, error) { return f.savings, f.err }

func TestService_Dashboard(t *testing.T) {
	exps := &fakeExpenses{exps: []*ledger.Expense{
		exp("300", date(2024, 6, 3), "Food"),
		exp("120", date(2024, 5, 20), "Bills"),
	}}
	budgets := &fakeBudgets{budgets: []*ledger.Budget{
		{Amount: dec("500"), Month: ledger.NewMonth(2024, time.June)},
		{Amount: dec("100"), Month: ledger.NewMonth(2024, time.May)},
	}}
	savings := &fakeSavings{savings: []*ledger.Savings{{Amount: dec("50"), Date: date(2024, 6, 10), Goal: "Car"}}}

	svc := report.NewService(exps, budgets, savings)

	got, err := svc.Dashboard(context.Background(), date(2024, 6, 15))
	require.NoError(t, err)

	assert.Equal(t, "420.00", ledger.FormatAmount(got.Totals.Spend))
	assert.Equal(t, "600.00", ledger.FormatAmount(got.Totals.Budget))
	assert.Equal(t, report.WithinBudget, got.Overview.Classification)
	assert.Equal(t, "130.00", ledger.FormatAmount(got.Overview.Delta))
	assert.Equal(t, "500.00", ledger.FormatAmount(got.Budget.CurrentMonthTotal))
	assert.Equal(t, 1, got.Savings.ActiveGoals)
	assert.Len(t, got.Breakdown, 2)
	assert.Contains(t, got.Message, "Great! You have saved 50.00.")
}

func TestService_Trends(t *testing.T) {
	exps := &fakeExpenses{exps: []*ledger.Expense{exp("600", date(2024, 6, 3), "Food")}}
	budgets := &fakeBudgets{budgets: []*ledger.Budget{{Amount: dec("500"), Month: ledger.NewMonth(2024, time.June)}}}

	got, err := report.NewService(exps, budgets, &fakeSavings{}).Trends(context.Background())
	require.NoError(t, err)

	require.Len(t, got.Insights, 1)
	assert.Equal(t, report.OverBudget, got.Insights[0].Classification)
	assert.Equal(t, "100.00", ledger.FormatAmount(got.Insights[0].Delta))
	require.Len(t, got.Series, 1)
}

func TestService_Trends_EmptyLedger(t *testing.T) {
	got, err := report.NewService(&fakeExpenses{}, &fakeBudgets{}, &fakeSavings{}).Trends(context.Background())
	require.NoError(t, err)

	assert.Empty(t, got.Insights)
	assert.Empty(t, got.Series)
}

func TestService_LoadError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := report.NewService(&fakeExpenses{}, &fakeBudgets{err: boom}, &fakeSavings{})

	_, err := svc.Dashboard(context.Background(), date(2024, 6, 15))
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "loading budgets")
}

func TestService_Breakdown_MonthFilter(t *testing.T) {
	exps := &fakeExpenses{exps: []*ledger.Expense{exp("3", date(2024, 2, 3), "Food")}}
	svc := report.NewService(exps, &fakeBudgets{}, &fakeSavings{})

	feb := ledger.NewMonth(2024, time.February)

	got, err := svc.Breakdown(context.Background(), &feb)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Len(t, exps.filters, 1)
	assert.Equal(t, date(2024, 2, 1), *exps.filters[0].StartDate)
	assert.Equal(t, date(2024, 2, 29), *exps.filters[0].EndDate)
}
