package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// Totals are the grand totals of each record set.
type Totals struct {
	Spend   decimal.Decimal
	Budget  decimal.Decimal
	Savings decimal.Decimal
}

func TotalsOf(exps []*ledger.Expense, budgets []*ledger.Budget, savings []*ledger.Savings) Totals {
	var t Totals

	for _, e := range exps {
		t.Spend = t.Spend.Add(e.Amount)
	}

	for _, b := range budgets {
		t.Budget = t.Budget.Add(b.Amount)
	}

	for _, s := range savings {
		t.Savings = t.Savings.Add(s.Amount)
	}

	return t
}

// CurrentMonthBudget sums the budgets for the month containing today.
func CurrentMonthBudget(budgets []*ledger.Budget, today time.Time) decimal.Decimal {
	current := ledger.MonthOf(today)
	total := decimal.Zero

	for _, b := range budgets {
		if b.Month == current {
			total = total.Add(b.Amount)
		}
	}

	return total
}

type BudgetSummary struct {
	Total             decimal.Decimal
	Count             int
	CurrentMonth      ledger.Month
	CurrentMonthTotal decimal.Decimal
}

func SummarizeBudgets(budgets []*ledger.Budget, today time.Time) BudgetSummary {
	s := BudgetSummary{
		Count:             len(budgets),
		CurrentMonth:      ledger.MonthOf(today),
		CurrentMonthTotal: CurrentMonthBudget(budgets, today),
	}

	for _, b := range budgets {
		s.Total = s.Total.Add(b.Amount)
	}

	return s
}

type SavingsSummary struct {
	Total decimal.Decimal
	Count int
	// ActiveGoals counts distinct non-blank goals, case-insensitively.
	ActiveGoals int
}

func SummarizeSavings(savings []*ledger.Savings) SavingsSummary {
	s := SavingsSummary{Count: len(savings)}
	goals := make(map[string]struct{})

	for _, sv := range savings {
		s.Total = s.Total.Add(sv.Amount)

		if g := strings.TrimSpace(sv.Goal); g != "" {
			goals[ledger.NormalizeName(g)] = struct{}{}
		}
	}

	s.ActiveGoals = len(goals)

	return s
}
