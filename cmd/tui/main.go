package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/tally/internal/budget/store"
	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryStore "github.com/MrJamesThe3rd/tally/internal/category/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/tally/internal/expense/store"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/savings"
	savingsStore "github.com/MrJamesThe3rd/tally/internal/savings/store"
)

type services struct {
	categories *category.Service
	expenses   *expense.Service
	budgets    *budget.Service
	savings    *savings.Service
	reports    *report.Service
	importer   *importer.Service
	recent     *category.Recent
}

type model struct {
	svc  services
	name string

	currentView View
	active      view.View
}

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewExpenses
	ViewBudgets
	ViewSavings
	ViewTrends
	ViewImport
)

func (m model) open(v View) (model, tea.Cmd) {
	m.currentView = v

	switch v {
	case ViewDashboard:
		m.active = view.NewDashboardModel(m.svc.reports)
	case ViewExpenses:
		m.active = view.NewListModel(m.svc.expenses, m.svc.categories, m.svc.recent)
	case ViewBudgets:
		m.active = view.NewBudgetsModel(m.svc.budgets)
	case ViewSavings:
		m.active = view.NewSavingsModel(m.svc.savings)
	case ViewTrends:
		m.active = view.NewTrendsModel(m.svc.reports)
	case ViewImport:
		m.active = view.NewImportModel(m.svc.importer)
	default:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	return m, m.active.Init()
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewDashboard)
			case "2":
				return m.open(ViewExpenses)
			case "3":
				return m.open(ViewBudgets)
			case "4":
				return m.open(ViewSavings)
			case "5":
				return m.open(ViewTrends)
			case "6":
				return m.open(ViewImport)
			}

			return m, nil
		}
	case view.BackMsg:
		return m.open(ViewMenu)
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	if v, ok := next.(view.View); ok {
		m.active = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.active == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			m.name + "\n\n" +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Budgets\n" +
				"4. Savings\n" +
				"5. Trends\n" +
				"6. Import CSV\n\n" +
				"q. Quit",
		)
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(m.active.Title())
	help := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(m.active.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, header, m.active.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "path", cfg.Log.File, "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: cfg.Log.Level})))

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	categorySvc := category.NewService(categoryStore.New(db))
	matchingSvc := matching.NewService(matchingStore.New(db))
	expenseSvc := expense.NewService(expenseStore.New(db), categorySvc, matchingSvc)
	budgetSvc := budget.NewService(budgetStore.New(db))
	savingsSvc := savings.NewService(savingsStore.New(db))

	if cfg.App.SeedCategories {
		if _, err := categorySvc.SeedDefaults(ctx); err != nil {
			slog.Error("failed to seed categories", "error", err)
			os.Exit(1)
		}
	}

	m := model{
		name:        cfg.App.Name,
		currentView: ViewMenu,
		svc: services{
			categories: categorySvc,
			expenses:   expenseSvc,
			budgets:    budgetSvc,
			savings:    savingsSvc,
			reports:    report.NewService(expenseSvc, budgetSvc, savingsSvc),
			importer:   importer.NewService(categorySvc, matchingSvc, expenseSvc),
			recent:     &category.Recent{},
		},
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
