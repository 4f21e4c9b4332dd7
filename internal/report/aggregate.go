// Package report turns snapshots of expenses, budgets and savings into the
// totals, breakdowns and insights shown on the dashboard and trend views.
// Everything except Service is pure and accepts empty input.
package report

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

// ByMonth sums amountOf over records grouped by the calendar month of dateOf.
func ByMonth[T any](records []T, amountOf func(T) decimal.Decimal, dateOf func(T) time.Time) map[ledger.Month]decimal.Decimal {
	out := make(map[ledger.Month]decimal.Decimal)

	for _, r := range records {
		m := ledger.MonthOf(dateOf(r))
		out[m] = out[m].Add(amountOf(r))
	}

	return out
}

func MonthlySpend(exps []*ledger.Expense) map[ledger.Month]decimal.Decimal {
	return ByMonth(exps,
		func(e *ledger.Expense) decimal.Decimal { return e.Amount },
		func(e *ledger.Expense) time.Time { return e.Date },
	)
}

func MonthlyBudget(budgets []*ledger.Budget) map[ledger.Month]decimal.Decimal {
	return ByMonth(budgets,
		func(b *ledger.Budget) decimal.Decimal { return b.Amount },
		func(b *ledger.Budget) time.Time { return b.Month.Start() },
	)
}

func MonthlySavings(savings []*ledger.Savings) map[ledger.Month]decimal.Decimal {
	return ByMonth(savings,
		func(s *ledger.Savings) decimal.Decimal { return s.Amount },
		func(s *ledger.Savings) time.Time { return s.Date },
	)
}

// CategoryTotal is the summed spend of one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// ByCategory sums expenses per category name, sorted by name.
func ByCategory(exps []*ledger.Expense) []CategoryTotal {
	index := make(map[string]int)

	var out []CategoryTotal

	for _, e := range exps {
		key := ledger.NormalizeName(e.Category.Name)

		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, CategoryTotal{Category: e.Category.Name})
		}

		out[i].Total = out[i].Total.Add(e.Amount)
	}

	slices.SortFunc(out, func(a, b CategoryTotal) int {
		return strings.Compare(ledger.NormalizeName(a.Category), ledger.NormalizeName(b.Category))
	})

	if out == nil {
		out = []CategoryTotal{}
	}

	return out
}

// ChartPoint is a label/value pair at display precision.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

func ChartPoints(totals []CategoryTotal) []ChartPoint {
	out := make([]ChartPoint, len(totals))
	for i, t := range totals {
		out[i] = ChartPoint{Label: t.Category, Value: t.Total.Round(ledger.AmountScale).InexactFloat64()}
	}

	return out
}

// MonthPoint holds one month of the trend series.
type MonthPoint struct {
	Month   ledger.Month
	Spend   decimal.Decimal
	Budget  decimal.Decimal
	Savings decimal.Decimal
}

// Series lines the three monthly mappings up over the sorted union of their
// months. Missing values are zero.
func Series(spend, budget, savings map[ledger.Month]decimal.Decimal) []MonthPoint {
	months := unionMonths(spend, budget, savings)

	out := make([]MonthPoint, len(months))
	for i, m := range months {
		out[i] = MonthPoint{Month: m, Spend: spend[m], Budget: budget[m], Savings: savings[m]}
	}

	return out
}

func unionMonths(maps ...map[ledger.Month]decimal.Decimal) []ledger.Month {
	seen := make(map[ledger.Month]struct{})

	var months []ledger.Month

	for _, m := range maps {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}

			seen[k] = struct{}{}
			months = append(months, k)
		}
	}

	slices.SortFunc(months, func(a, b ledger.Month) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}

		return 0
	})

	return months
}
