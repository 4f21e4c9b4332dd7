package report

import (
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

// Amounts leave the API as fixed two-decimal strings, like the entity endpoints.

type totalsResponse struct {
	Spend   string `json:"spend"`
	Budget  string `json:"budget"`
	Savings string `json:"savings"`
}

type overviewResponse struct {
	Classification report.Classification `json:"classification"`
	Delta          string                `json:"delta"`
	Savings        string                `json:"savings"`
	HasSavings     bool                  `json:"has_savings"`
}

type budgetSummaryResponse struct {
	Total             string       `json:"total"`
	Count             int          `json:"count"`
	CurrentMonth      ledger.Month `json:"current_month"`
	CurrentMonthTotal string       `json:"current_month_total"`
}

type savingsSummaryResponse struct {
	Total       string `json:"total"`
	Count       int    `json:"count"`
	ActiveGoals int    `json:"active_goals"`
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type dashboardResponse struct {
	Totals    totalsResponse          `json:"totals"`
	Overview  overviewResponse        `json:"overview"`
	Message   string                  `json:"message"`
	Budget    budgetSummaryResponse   `json:"budget"`
	Savings   savingsSummaryResponse  `json:"savings"`
	Breakdown []categoryTotalResponse `json:"breakdown"`
}

type monthPointResponse struct {
	Month   ledger.Month `json:"month"`
	Spend   string       `json:"spend"`
	Budget  string       `json:"budget"`
	Savings string       `json:"savings"`
}

type insightResponse struct {
	Month          ledger.Month          `json:"month"`
	Classification report.Classification `json:"classification"`
	Delta          string                `json:"delta"`
	Spend          string                `json:"spend"`
	Budget         string                `json:"budget"`
	Savings        string                `json:"savings"`
	Message        string                `json:"message"`
}

type trendsResponse struct {
	Series   []monthPointResponse `json:"series"`
	Insights []insightResponse    `json:"insights"`
	Message  string               `json:"message,omitempty"`
}

type breakdownResponse struct {
	Totals []categoryTotalResponse `json:"totals"`
	Chart  []report.ChartPoint     `json:"chart"`
}

func toCategoryTotals(totals []report.CategoryTotal) []categoryTotalResponse {
	out := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		out[i] = categoryTotalResponse{Category: t.Category, Total: ledger.FormatAmount(t.Total)}
	}

	return out
}

func toDashboard(d *report.Dashboard) dashboardResponse {
	return dashboardResponse{
		Totals: totalsResponse{
			Spend:   ledger.FormatAmount(d.Totals.Spend),
			Budget:  ledger.FormatAmount(d.Totals.Budget),
			Savings: ledger.FormatAmount(d.Totals.Savings),
		},
		Overview: overviewResponse{
			Classification: d.Overview.Classification,
			Delta:          ledger.FormatAmount(d.Overview.Delta),
			Savings:        ledger.FormatAmount(d.Overview.Savings),
			HasSavings:     d.Overview.HasSavings,
		},
		Message: d.Message,
		Budget: budgetSummaryResponse{
			Total:             ledger.FormatAmount(d.Budget.Total),
			Count:             d.Budget.Count,
			CurrentMonth:      d.Budget.CurrentMonth,
			CurrentMonthTotal: ledger.FormatAmount(d.Budget.CurrentMonthTotal),
		},
		Savings: savingsSummaryResponse{
			Total:       ledger.FormatAmount(d.Savings.Total),
			Count:       d.Savings.Count,
			ActiveGoals: d.Savings.ActiveGoals,
		},
		Breakdown: toCategoryTotals(d.Breakdown),
	}
}

func toTrends(t *report.Trends) trendsResponse {
	resp := trendsResponse{
		Series:   make([]monthPointResponse, len(t.Series)),
		Insights: make([]insightResponse, len(t.Insights)),
	}

	for i, p := range t.Series {
		resp.Series[i] = monthPointResponse{
			Month:   p.Month,
			Spend:   ledger.FormatAmount(p.Spend),
			Budget:  ledger.FormatAmount(p.Budget),
			Savings: ledger.FormatAmount(p.Savings),
		}
	}

	for i, in := range t.Insights {
		resp.Insights[i] = insightResponse{
			Month:          in.Month,
			Classification: in.Classification,
			Delta:          ledger.FormatAmount(in.Delta),
			Spend:          ledger.FormatAmount(in.Spend),
			Budget:         ledger.FormatAmount(in.Budget),
			Savings:        ledger.FormatAmount(in.Savings),
			Message:        in.Message(),
		}
	}

	if len(resp.Insights) == 0 {
		resp.Message = report.NoDataMessage
	}

	return resp
}
