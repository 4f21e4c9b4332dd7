package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/budget"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type budgetFields struct {
	amount      string
	month       string
	description string
}

type BudgetsModel struct {
	CommonModel
	svc *budget.Service

	table   table.Model
	budgets []*ledger.Budget
	form    *huh.Form
	editing *ledger.Budget
	confirm bool

	// fields is shared across model copies; the form binds into it.
	fields *budgetFields

	err    error
	status string
}

func NewBudgetsModel(svc *budget.Service) BudgetsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Month", Width: 10},
			{Title: "Amount", Width: 12},
			{Title: "Description", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return BudgetsModel{svc: svc, table: t}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	return "Esc: back | n: new | e: edit | x: delete"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		m.err = msg.err
		m.budgets = msg.budgets

		rows := make([]table.Row, 0, len(m.budgets))
		for _, b := range m.budgets {
			rows = append(rows, table.Row{b.Month.Key(), FormatAmount(b.Amount), b.Description})
		}

		m.table.SetRows(rows)

		return m, nil

	case budgetSavedMsg:
		m.form = nil
		m.editing = nil
		m.confirm = false
		m.table.Focus()

		if msg.err != nil {
			m.status = errorStyle.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = successStyle.Render(msg.status)
		}

		return m, m.loadCmd()
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.confirm {
		m.confirm = false
		if keyMsg.String() == "y" {
			return m, m.deleteCmd()
		}

		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "n":
		m.editing = nil
		m.fields = &budgetFields{month: ledger.MonthOf(time.Now()).Key()}

		return m.openForm("New Budget")
	case "e":
		b := m.selected()
		if b == nil {
			return m, nil
		}

		m.editing = b
		m.fields = &budgetFields{amount: FormatAmount(b.Amount), month: b.Month.Key(), description: b.Description}

		return m.openForm("Edit Budget")
	case "x":
		m.confirm = m.selected() != nil
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BudgetsModel) selected() *ledger.Budget {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.budgets) {
		return nil
	}

	return m.budgets[idx]
}

func (m BudgetsModel) openForm(title string) (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Amount").Value(&m.fields.amount).Validate(validateAmount),
			huh.NewInput().Title("Month").Placeholder("YYYY-MM").Value(&m.fields.month).Validate(validateMonth),
			huh.NewInput().Title("Description").Value(&m.fields.description),
		),
	).WithWidth(45).WithShowHelp(false)

	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.editing = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BudgetsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	content := m.table.View()
	if len(m.budgets) == 0 {
		content = faintStyle.Render("No budgets yet. Press n to add one.")
	}

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(m.form.View()))
	}

	if m.confirm {
		if b := m.selected(); b != nil {
			content = errorStyle.Render(fmt.Sprintf("Delete budget for %s? [y/N]", b.Month.Key())) + "\n" + content
		}
	}

	if m.status != "" {
		content = m.status + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type budgetsLoadedMsg struct {
	budgets []*ledger.Budget
	err     error
}

type budgetSavedMsg struct {
	status string
	err    error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.svc.List(ctx)

		return budgetsLoadedMsg{budgets: budgets, err: err}
	}
}

func (m BudgetsModel) saveCmd() tea.Cmd {
	amount, err := ledger.ParseAmount(m.fields.amount)
	if err != nil {
		return func() tea.Msg { return budgetSavedMsg{err: err} }
	}

	month, err := ledger.ParseMonth(m.fields.month)
	if err != nil {
		return func() tea.Msg { return budgetSavedMsg{err: err} }
	}

	date := month.Start()
	desc := m.fields.description
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			b, err := m.svc.Create(ctx, budget.CreateParams{Amount: amount, Date: date, Description: desc})
			if err != nil {
				return budgetSavedMsg{err: err}
			}

			return budgetSavedMsg{status: fmt.Sprintf("Budget of %s set for %s.", FormatAmount(b.Amount), b.Month.Key())}
		}

		b, err := m.svc.Update(ctx, editing.ID, budget.UpdateParams{Amount: &amount, Date: &date, Description: &desc})
		if err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: fmt.Sprintf("Budget for %s updated.", b.Month.Key())}
	}
}

func (m BudgetsModel) deleteCmd() tea.Cmd {
	b := m.selected()
	if b == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, b.ID); err != nil {
			return budgetSavedMsg{err: err}
		}

		return budgetSavedMsg{status: "Budget deleted."}
	}
}
