package report_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

func TestTotalsOf_Empty(t *testing.T) {
	got := report.TotalsOf(nil, nil, nil)

	assert.Equal(t, "0.00", ledger.FormatAmount(got.Spend))
	assert.Equal(t, "0.00", ledger.FormatAmount(got.Budget))
	assert.Equal(t, "0.00", ledger.FormatAmount(got.Savings))
}

func TestTotalsOf_OrderInvariant(t *testing.T) {
	exps := []*ledger.Expense{
		exp("0.10", date(2024, 1, 1), "a"),
		exp("0.20", date(2024, 2, 1), "b"),
		exp("99999.99", date(2024, 3, 1), "c"),
		exp("0.07", date(2024, 4, 1), "d"),
		exp("12.34", date(2024, 5, 1), "e"),
	}
	savings := []*ledger.Savings{{Amount: dec("1.01")}, {Amount: dec("2.02")}}

	want := report.TotalsOf(exps, nil, savings)
	assert.Equal(t, "100012.70", ledger.FormatAmount(want.Spend))

	r := rand.New(rand.NewPCG(1, 2))

	for range 20 {
		r.Shuffle(len(exps), func(i, j int) { exps[i], exps[j] = exps[j], exps[i] })
		r.Shuffle(len(savings), func(i, j int) { savings[i], savings[j] = savings[j], savings[i] })

		got := report.TotalsOf(exps, nil, savings)
		assert.True(t, want.Spend.Equal(got.Spend))
		assert.True(t, want.Savings.Equal(got.Savings))
	}
}

func TestCurrentMonthBudget(t *testing.T) {
	today := date(2024, 6, 15)
	budgets := []*ledger.Budget{
		{Amount: dec("500"), Month: ledger.MonthOf(date(2024, 6, 1))},
		{Amount: dec("300"), Month: ledger.MonthOf(date(2024, 5, 1))},
		{Amount: dec("20"), Month: ledger.MonthOf(date(2023, 6, 1))},
	}

	assert.Equal(t, "500.00", ledger.FormatAmount(report.CurrentMonthBudget(budgets, today)))
	assert.True(t, report.CurrentMonthBudget(nil, today).IsZero())
}

func TestSummarizeBudgets(t *testing.T) {
	budgets := []*ledger.Budget{
		{Amount: dec("500"), Month: ledger.NewMonth(2024, time.June)},
		{Amount: dec("100"), Month: ledger.NewMonth(2024, time.June)},
		{Amount: dec("300"), Month: ledger.NewMonth(2024, time.May)},
	}

	got := report.SummarizeBudgets(budgets, date(2024, 6, 15))

	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "900.00", ledger.FormatAmount(got.Total))
	assert.Equal(t, ledger.NewMonth(2024, time.June), got.CurrentMonth)
	assert.Equal(t, "600.00", ledger.FormatAmount(got.CurrentMonthTotal))
}

func TestSummarizeSavings(t *testing.T) {
	savings := []*ledger.Savings{
		{Amount: dec("10"), Goal: "Car"},
		{Amount: dec("20"), Goal: " car "},
		{Amount: dec("5"), Goal: ""},
		{Amount: dec("5"), Goal: "   "},
		{Amount: dec("1.5"), Goal: "Holiday"},
	}

	got := report.SummarizeSavings(savings)

	assert.Equal(t, 5, got.Count)
	assert.Equal(t, "41.50", ledger.FormatAmount(got.Total))
	assert.Equal(t, 2, got.ActiveGoals)
}
