package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type ExpenseLister interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*ledger.Expense, error)
}

type BudgetLister interface {
	List(ctx context.Context) ([]*ledger.Budget, error)
}

type SavingsLister interface {
	List(ctx context.Context) ([]*ledger.Savings, error)
}

// Service loads a fresh snapshot on every call and derives views from it.
type Service struct {
	expenses ExpenseLister
	budgets  BudgetLister
	savings  SavingsLister
}

func NewService(expenses ExpenseLister, budgets BudgetLister, savings SavingsLister) *Service {
	return &Service{expenses: expenses, budgets: budgets, savings: savings}
}

// Snapshot is an immutable view of all records at one point in time.
type Snapshot struct {
	Expenses []*ledger.Expense
	Budgets  []*ledger.Budget
	Savings  []*ledger.Savings
}

// Load reads all three record sets concurrently. No computation starts
// until every list has returned.
func (s *Service) Load(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		exps, err := s.expenses.List(gctx, expense.ListFilter{})
		if err != nil {
			return fmt.Errorf("loading expenses: %w", err)
		}

		snap.Expenses = exps

		return nil
	})

	g.Go(func() error {
		budgets, err := s.budgets.List(gctx)
		if err != nil {
			return fmt.Errorf("loading budgets: %w", err)
		}

		snap.Budgets = budgets

		return nil
	})

	g.Go(func() error {
		savings, err := s.savings.List(gctx)
		if err != nil {
			return fmt.Errorf("loading savings: %w", err)
		}

		snap.Savings = savings

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}

type Dashboard struct {
	Totals    Totals
	Overview  Overview
	Message   string
	Budget    BudgetSummary
	Savings   SavingsSummary
	Breakdown []CategoryTotal
}

type Trends struct {
	Series   []MonthPoint
	Insights []MonthInsight
}

// DashboardOf derives the dashboard for snap as of today.
func DashboardOf(snap *Snapshot, today time.Time) *Dashboard {
	totals := TotalsOf(snap.Expenses, snap.Budgets, snap.Savings)
	overview := LedgerInsight(totals)

	return &Dashboard{
		Totals:    totals,
		Overview:  overview,
		Message:   overview.Message(),
		Budget:    SummarizeBudgets(snap.Budgets, today),
		Savings:   SummarizeSavings(snap.Savings),
		Breakdown: ByCategory(snap.Expenses),
	}
}

func TrendsOf(snap *Snapshot) *Trends {
	spend := MonthlySpend(snap.Expenses)
	budget := MonthlyBudget(snap.Budgets)
	savings := MonthlySavings(snap.Savings)

	return &Trends{
		Series:   Series(spend, budget, savings),
		Insights: Insights(spend, budget, savings),
	}
}

func (s *Service) Dashboard(ctx context.Context, today time.Time) (*Dashboard, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return DashboardOf(snap, today), nil
}

func (s *Service) Trends(ctx context.Context) (*Trends, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return TrendsOf(snap), nil
}

// Breakdown returns spend per category, optionally limited to one month.
func (s *Service) Breakdown(ctx context.Context, month *ledger.Month) ([]CategoryTotal, error) {
	filter := expense.ListFilter{}

	if month != nil {
		start := month.Start()
		end := start.AddDate(0, 1, -1)
		filter.StartDate = &start
		filter.EndDate = &end
	}

	exps, err := s.expenses.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	return ByCategory(exps), nil
}
