package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/tally/internal/budget/store"
	"github.com/MrJamesThe3rd/tally/internal/category"
	categoryStore "github.com/MrJamesThe3rd/tally/internal/category/store"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/tally/internal/expense/store"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	budgetHandler "github.com/MrJamesThe3rd/tally/internal/http/budget"
	categoryHandler "github.com/MrJamesThe3rd/tally/internal/http/category"
	expenseHandler "github.com/MrJamesThe3rd/tally/internal/http/expense"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/tally/internal/http/matching"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	savingsHandler "github.com/MrJamesThe3rd/tally/internal/http/savings"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/tally/internal/matching/store"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/savings"
	savingsStore "github.com/MrJamesThe3rd/tally/internal/savings/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.Level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	var (
		categoryService = category.NewService(categoryStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		expenseService  = expense.NewService(expenseStore.New(db), categoryService, matchingService)
		budgetService   = budget.NewService(budgetStore.New(db))
		savingsService  = savings.NewService(savingsStore.New(db))
		reportService   = report.NewService(expenseService, budgetService, savingsService)
		importService   = importer.NewService(categoryService, matchingService, expenseService)
	)

	if cfg.App.SeedCategories {
		n, err := categoryService.SeedDefaults(ctx)
		if err != nil {
			slog.Error("failed to seed categories", "error", err)
			os.Exit(1)
		}

		if n > 0 {
			slog.Info("seeded default categories", "count", n)
		}
	}

	router := tallyHttp.New(tallyHttp.Handlers{
		Categories: categoryHandler.NewHandler(categoryService),
		Expenses:   expenseHandler.NewHandler(expenseService),
		Budgets:    budgetHandler.NewHandler(budgetService),
		Savings:    savingsHandler.NewHandler(savingsService),
		Reports:    reportHandler.NewHandler(reportService),
		Import:     importHandler.NewHandler(importService),
		Matching:   matchingHandler.NewHandler(matchingService),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
