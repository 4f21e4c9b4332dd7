package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/category"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateForm
	listStateTimeframe
	listStateConfirmDelete
)

type ListModel struct {
	CommonModel
	expenses   *expense.Service
	categories *category.Service
	recent     *category.Recent

	state  listState
	table  table.Model
	exps   []*ledger.Expense
	form   *huh.Form
	fields *expenseForm
	// editing is the expense under edit; nil while adding.
	editing *ledger.Expense

	picker     TimeframePicker
	rangeLabel string
	filter     expense.ListFilter

	loading bool
	err     error
	status  string
}

func NewListModel(expSvc *expense.Service, catSvc *category.Service, recent *category.Recent) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 18},
		{Title: "Description", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ListModel{
		expenses:   expSvc,
		categories: catSvc,
		recent:     recent,
		table:      t,
		picker:     NewTimeframePicker(),
		rangeLabel: TimeframeThisMonth.String(),
		loading:    true,
	}
	m.filter.StartDate, m.filter.EndDate = timeframeRange(TimeframeThisMonth, time.Now())

	return m
}

func (m ListModel) Title() string { return "Expenses" }

func (m ListModel) ShortHelp() string {
	switch m.state {
	case listStateForm:
		return "Navigate form | Esc: cancel"
	case listStateConfirmDelete:
		return "y: delete | any other key: cancel"
	}

	return "Esc: back | n: new | e: edit | x: delete | t: timeframe | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.exps = msg.exps
		m.refreshTable()

		return m, nil

	case categoriesMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading categories: %v", msg.err)
			return m, nil
		}

		return m.openForm(m.recent.Order(msg.cats))

	case listSaveMsg:
		m.state = listStateBrowse
		m.form = nil
		m.editing = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, m.loadCmd()
		}

		m.recent.Touch(msg.exp.Category)

		m.status = fmt.Sprintf("Saved %s in %s.", FormatAmount(msg.exp.Amount), msg.exp.Category.Name)
		if msg.newCategory {
			m.status += fmt.Sprintf(" Created category %q.", msg.exp.Category.Name)
		}

		return m, m.loadCmd()

	case listDeleteMsg:
		m.state = listStateBrowse
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Expense deleted."
		}

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.state = listStateBrowse
		m.rangeLabel = msg.Label
		m.filter.StartDate = msg.Start
		m.filter.EndDate = msg.End
		m.loading = true
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-12, 5))

		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateForm:
		return m.updateForm(msg)
	case listStateTimeframe:
		return m.updateTimeframe(msg)
	case listStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ListModel) selected() *ledger.Expense {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.exps) {
		return nil
	}

	return m.exps[idx]
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "n":
			m.editing = nil
			m.fields = newExpenseForm(time.Now())

			return m, m.loadCategoriesCmd()
		case "e":
			e := m.selected()
			if e == nil {
				return m, nil
			}

			m.editing = e
			m.fields = editExpenseForm(e)

			return m, m.loadCategoriesCmd()
		case "x":
			if m.selected() != nil {
				m.state = listStateConfirmDelete
			}

			return m, nil
		case "t":
			m.picker.Reset()
			m.state = listStateTimeframe
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) openForm(cats []*ledger.Category) (tea.Model, tea.Cmd) {
	title := "New Expense"
	if m.editing != nil {
		title = "Edit Expense"
	}

	m.form = m.fields.build(title, cats)
	m.state = listStateForm
	m.status = ""
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
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

func (m ListModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.picker.IsSelecting() {
		m.state = listStateBrowse
		m.table.Focus()

		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	return m, cmd
}

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() != "y" {
		m.state = listStateBrowse
		return m, nil
	}

	return m, m.deleteCmd(m.selected())
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == listStateTimeframe {
		return lipgloss.NewStyle().Padding(2).Render(m.picker.View())
	}

	total := decimal.Zero
	for _, e := range m.exps {
		total = total.Add(e.Amount)
	}

	header := fmt.Sprintf("[t] Timeframe: %s | %d expenses | Total: %s",
		activeStyle(m.rangeLabel), len(m.exps), activeStyle(FormatAmount(total)))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == listStateForm && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(54).Render(m.form.View()))
	}

	if m.state == listStateConfirmDelete {
		if e := m.selected(); e != nil {
			prompt := fmt.Sprintf("Delete %s %s (%s)? [y/N]", FormatDate(e.Date), FormatAmount(e.Amount), e.Category.Name)
			content = errorStyle.Render(prompt) + "\n" + content
		}
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.exps))
	for _, e := range m.exps {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			FormatAmount(e.Amount),
			e.Category.Name,
			e.Description,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	exps []*ledger.Expense
	err  error
}

type categoriesMsg struct {
	cats []*ledger.Category
	err  error
}

type listSaveMsg struct {
	exp         *ledger.Expense
	newCategory bool
	err         error
}

type listDeleteMsg struct {
	err error
}

func (m ListModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		exps, err := m.expenses.List(ctx, filter)

		return loadListMsg{exps: exps, err: err}
	}
}

func (m ListModel) loadCategoriesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cats, err := m.categories.List(ctx)

		return categoriesMsg{cats: cats, err: err}
	}
}

func (m ListModel) saveCmd() tea.Cmd {
	in, err := m.fields.parse()
	if err != nil {
		return func() tea.Msg { return listSaveMsg{err: err} }
	}

	editing := m.editing

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if editing == nil {
			exp, isNew, err := m.expenses.Create(ctx, expense.CreateParams{
				Amount:      in.amount,
				Date:        in.date,
				Description: in.description,
				Category:    in.category,
			})

			return listSaveMsg{exp: exp, newCategory: isNew, err: err}
		}

		exp, err := m.expenses.Update(ctx, editing.ID, expense.UpdateParams{
			Amount:      &in.amount,
			Date:        &in.date,
			Description: &in.description,
			Category:    &in.category,
		})

		return listSaveMsg{exp: exp, err: err}
	}
}

func (m ListModel) deleteCmd(e *ledger.Expense) tea.Cmd {
	if e == nil {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return listDeleteMsg{err: m.expenses.Delete(ctx, e.ID)}
	}
}
