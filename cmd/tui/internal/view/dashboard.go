package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

const barWidth = 30

type DashboardModel struct {
	CommonModel
	svc *report.Service

	dashboard *report.Dashboard
	loading   bool
	err       error
}

func NewDashboardModel(svc *report.Service) DashboardModel {
	return DashboardModel{svc: svc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.dashboard, m.err = msg.dashboard, msg.err

		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 2)

	if m.loading {
		return style.Render("Loading dashboard...")
	}

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	d := m.dashboard

	totals := fmt.Sprintf(
		"Spent:  %s\nBudget: %s\nSaved:  %s",
		FormatAmount(d.Totals.Spend), FormatAmount(d.Totals.Budget), FormatAmount(d.Totals.Savings),
	)

	messageStyle := successStyle
	if d.Overview.Classification == report.OverBudget {
		messageStyle = errorStyle
	}

	budgets := fmt.Sprintf(
		"%d budgets, %s in total\n%s: %s",
		d.Budget.Count, FormatAmount(d.Budget.Total),
		d.Budget.CurrentMonth.Label(), FormatAmount(d.Budget.CurrentMonthTotal),
	)

	saved := fmt.Sprintf("%d entries, %d active goals", d.Savings.Count, d.Savings.ActiveGoals)

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(titleStyle.Render("Totals")+"\n\n"+totals),
		panelStyle.Render(titleStyle.Render("Budgets")+"\n\n"+budgets),
		panelStyle.Render(titleStyle.Render("Savings")+"\n\n"+saved),
	)

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		top,
		"",
		messageStyle.Render(d.Message),
		"",
		titleStyle.Render("Spending by category"),
		breakdownChart(report.ChartPoints(d.Breakdown)),
	))
}

// breakdownChart renders points as horizontal bars scaled to the largest value.
func breakdownChart(points []report.ChartPoint) string {
	if len(points) == 0 {
		return faintStyle.Render("No expenses recorded.")
	}

	var (
		maxValue float64
		maxLabel int
	)

	for _, p := range points {
		maxValue = max(maxValue, p.Value)
		maxLabel = max(maxLabel, lipgloss.Width(p.Label))
	}

	var b strings.Builder

	for _, p := range points {
		n := 0
		if maxValue > 0 {
			n = int(p.Value / maxValue * barWidth)
		}

		fmt.Fprintf(&b, "%-*s %s %.2f\n", maxLabel, p.Label, activeStyle(strings.Repeat("█", max(n, 1))), p.Value)
	}

	return b.String()
}

// Messages

type dashboardMsg struct {
	dashboard *report.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.svc.Dashboard(ctx, time.Now())

		return dashboardMsg{dashboard: d, err: err}
	}
}
