package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/report"
)

type TrendsModel struct {
	CommonModel
	svc *report.Service

	table  table.Model
	trends *report.Trends
	err    error
}

func NewTrendsModel(svc *report.Service) TrendsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Month", Width: 10},
			{Title: "Spent", Width: 12},
			{Title: "Budget", Width: 12},
			{Title: "Saved", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return TrendsModel{svc: svc, table: t}
}

func (m TrendsModel) Title() string     { return "Trends" }
func (m TrendsModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m TrendsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m TrendsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsMsg:
		m.trends, m.err = msg.trends, msg.err
		if m.trends != nil {
			m.table.SetRows(seriesRows(m.trends.Series))
		}

		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func seriesRows(series []report.MonthPoint) []table.Row {
	rows := make([]table.Row, 0, len(series))
	for _, p := range series {
		rows = append(rows, table.Row{p.Month.Key(), FormatAmount(p.Spend), FormatAmount(p.Budget), FormatAmount(p.Savings)})
	}

	return rows
}

func insightLines(insights []report.MonthInsight) string {
	if len(insights) == 0 {
		return faintStyle.Render(report.NoDataMessage)
	}

	lines := make([]string, 0, len(insights))
	for _, in := range insights {
		style := successStyle
		if in.Classification == report.OverBudget {
			style = errorStyle
		}

		lines = append(lines, style.Render(in.Message()))
	}

	return strings.Join(lines, "\n")
}

func (m TrendsModel) View() string {
	style := lipgloss.NewStyle().Padding(1, 2)

	if m.err != nil {
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.trends == nil {
		return style.Render("Loading trends...")
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Monthly totals"),
		m.table.View(),
		"",
		titleStyle.Render("Insights"),
		insightLines(m.trends.Insights),
	))
}

// Messages

type trendsMsg struct {
	trends *report.Trends
	err    error
}

func (m TrendsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		t, err := m.svc.Trends(ctx)

		return trendsMsg{trends: t, err: err}
	}
}
