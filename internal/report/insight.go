package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// NoDataMessage is shown when there is nothing to derive insights from.
const NoDataMessage = "No data available to generate insights."

type Classification string

const (
	OverBudget   Classification = "over_budget"
	WithinBudget Classification = "within_budget"
)

// MonthInsight compares one month's spend and savings against its budget.
// Delta is the overspend when OverBudget and the remainder otherwise.
type MonthInsight struct {
	Month          ledger.Month
	Classification Classification
	Delta          decimal.Decimal
	Spend          decimal.Decimal
	Budget         decimal.Decimal
	Savings        decimal.Decimal
}

func (i MonthInsight) Message() string {
	if i.Classification == OverBudget {
		return fmt.Sprintf("In %s, you overspent by %s.", i.Month.Key(), ledger.FormatAmount(i.Delta))
	}

	return fmt.Sprintf("In %s, you were within budget. Remaining: %s. Total saved: %s.",
		i.Month.Key(), ledger.FormatAmount(i.Delta), ledger.FormatAmount(i.Savings))
}

// classify returns the classification and the rounded delta for a budget
// against spend plus savings.
func classify(spend, budget, savings decimal.Decimal) (Classification, decimal.Decimal) {
	used := spend.Add(savings)

	if used.GreaterThan(budget) {
		return OverBudget, used.Sub(budget).Round(ledger.AmountScale)
	}

	return WithinBudget, budget.Sub(used).Round(ledger.AmountScale)
}

// Insights returns one insight per month present in any mapping, oldest first.
func Insights(spend, budget, savings map[ledger.Month]decimal.Decimal) []MonthInsight {
	months := unionMonths(spend, budget, savings)

	out := make([]MonthInsight, 0, len(months))

	for _, m := range months {
		c, delta := classify(spend[m], budget[m], savings[m])

		out = append(out, MonthInsight{
			Month:          m,
			Classification: c,
			Delta:          delta,
			Spend:          spend[m],
			Budget:         budget[m],
			Savings:        savings[m],
		})
	}

	return out
}

// Overview is the whole-ledger counterpart of MonthInsight.
type Overview struct {
	Classification Classification
	Delta          decimal.Decimal
	Savings        decimal.Decimal
	HasSavings     bool
}

func LedgerInsight(t Totals) Overview {
	c, delta := classify(t.Spend, t.Budget, t.Savings)

	return Overview{
		Classification: c,
		Delta:          delta,
		Savings:        t.Savings,
		HasSavings:     t.Savings.IsPositive(),
	}
}

func (o Overview) Message() string {
	var msg string
	if o.Classification == OverBudget {
		msg = fmt.Sprintf("Warning: You have exceeded your total budget by %s.", ledger.FormatAmount(o.Delta))
	} else {
		msg = fmt.Sprintf("Good job! You have %s remaining after expenses and savings.", ledger.FormatAmount(o.Delta))
	}

	if o.HasSavings {
		return msg + fmt.Sprintf(" Great! You have saved %s.", ledger.FormatAmount(o.Savings))
	}

	return msg + " Consider setting aside some savings."
}
