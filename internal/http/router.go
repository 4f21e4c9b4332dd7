package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/tally/internal/http/budget"
	"github.com/MrJamesThe3rd/tally/internal/http/category"
	"github.com/MrJamesThe3rd/tally/internal/http/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	"github.com/MrJamesThe3rd/tally/internal/http/matching"
	"github.com/MrJamesThe3rd/tally/internal/http/report"
	"github.com/MrJamesThe3rd/tally/internal/http/savings"
)

// Handlers groups the v1 route handlers.
type Handlers struct {
	Categories *category.Handler
	Expenses   *expense.Handler
	Budgets    *budget.Handler
	Savings    *savings.Handler
	Reports    *report.Handler
	Import     *importcsv.Handler
	Matching   *matching.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	json := middleware.AllowContentType("application/json")

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Use(json)
			h.Categories.Routes(r)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Use(json)
			h.Expenses.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(json)
			h.Budgets.Routes(r)
		})

		r.Route("/savings", func(r chi.Router) {
			r.Use(json)
			h.Savings.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)

		r.Route("/import", h.Import.Routes)

		r.Route("/matching", func(r chi.Router) {
			r.Use(json)
			h.Matching.Routes(r)
		})
	})

	return router
}
