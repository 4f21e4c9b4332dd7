package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/savings"
)

type savingsFields struct {
	amount      string
	date        string
	goal        string
	description string
}

type SavingsModel struct {
	CommonModel
	svc *savings.Service

	table   table.Model
	entries []*ledger.Savings
	summary report.SavingsSummary
	form    *huh.Form
	fields  *savingsFields
	editing *ledger.Savings
	confirm bool

	err    error
	status string
}

func NewSavingsModel(svc *savings.Service) SavingsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Amount", Width: 12},
			{Title: "Goal", Width: 20},
			{Title: "Description", Width: 30},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return SavingsModel{svc: svc, table: t}
}

func (m SavingsModel) Title() string { return "Savings" }

func (m SavingsModel) ShortHelp() string {
	return "Esc: back | n: new | e: edit | x: delete"
}

func (m SavingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m SavingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savingsLoadedMsg:
		m.err = msg.err
		m.entries = msg.entries
		m.summary = report.SummarizeSavings(msg.entries)

		rows := make([]table.Row, 0, len(m.entries))
		for _, s := range m.entries {
			rows = append(rows, table.Row{FormatDate(s.Date), FormatAmount(s.Amount), s.Goal, s.Description})
		}

		m.table.SetRows(rows)

		return m, nil

	case savingsSavedMsg:
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
		m.fields = &savingsFields{date: FormatDate(time.Now())}

		return m.openForm("New Savings")
	case "e":
		s := m.selected()
		if s == nil {
			return m, nil
		}

		m.editing = s
		m.fields = &savingsFields{
			amount:      FormatAmount(s.Amount),
			date:        FormatDate(s.Date),
			goal:        s.Goal,
			description: s.Description,
		}

		return m.openForm("Edit Savings")
	case "x":
		m.confirm = m.selected() != nil
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m SavingsModel) selected() *ledger.Savings {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.entries) {
		return nil
	}

	return m.entries[idx]
}

func (m SavingsModel) openForm(title string) (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(title),
			huh.NewInput().Title("Amount").Value(&m.fields.amount).Validate(validateAmount),
			huh.NewInput().Title("Date").Placeholder("YYYY-MM-DD").Value(&m.fields.date).Validate(validateDate),
			huh.NewInput().Title("Goal").Placeholder("optional").Value(&m.fields.goal),
			huh.NewInput().Title("Description").Value(&m.fields.description),
		),
	).WithWidth(45).WithShowHelp(false)

	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m SavingsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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

func (m SavingsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf("Total saved: %s | Entries: %d | Active goals: %d",
		activeStyle(FormatAmount(m.summary.Total)), m.summary.Count, m.summary.ActiveGoals)

	content := m.table.View()
	if len(m.entries) == 0 {
		content = faintStyle.Render("Nothing saved yet. Press n to add an entry.")
	}

	content = header + "\n\n" + content

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(m.form.View()))
	}

	if m.confirm {
		if s := m.selected(); s != nil {
			prompt := fmt.Sprintf("Delete savings of %s on %s? [y/N]", FormatAmount(s.Amount), FormatDate(s.Date))
			content = errorStyle.Render(prompt) + "\n" + content
		}
	}

	if m.status != "" {
		content = m.status + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type savingsLoadedMsg struct {
	entries []*ledger.Savings
	err     error
}

type savingsSavedMsg struct {
	status string
	err    error
}

func (m SavingsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		entries, err := m.svc.List(ctx)

		return savingsLoadedMsg{entries: entries, err: err}
	}
}

func (m SavingsModel) saveCmd() tea.Cmd {
	amount, err := ledger.ParseAmount(m.fields.amount)
	if err != nil {
		return func() tea.Msg { return savingsSavedMsg{err: err} }
	}

	date, err := ledger.ParseDate(m.fields.date)
	if err != nil {
		return func() tea.Msg { return savingsSavedMsg{err: err} }
	}

	goal, desc := m.fields.goal, m.fields.description
	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			s, err := m.svc.Create(ctx, savings.CreateParams{Amount: amount, Date: date, Goal: goal, Description: desc})
			if err != nil {
				return savingsSavedMsg{err: err}
			}

			return savingsSavedMsg{status: fmt.Sprintf("Saved %s.", FormatAmount(s.Amount))}
		}

		_, err := m.svc.Update(ctx, editing.ID, savings.UpdateParams{
			Amount:      &amount,
			Date:        &date,
			Goal:        &goal,
			Description: &desc,
		})
		if err != nil {
			return savingsSavedMsg{err: err}
		}

		return savingsSavedMsg{status: "Savings entry updated."}
	}
}

func (m SavingsModel) deleteCmd() tea.Cmd {
	s := m.selected()
	if s == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, s.ID); err != nil {
			return savingsSavedMsg{err: err}
		}

		return savingsSavedMsg{status: "Savings entry deleted."}
	}
}
