package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/report"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard", h.dashboard)
	r.Get("/trends", h.trends)
	r.Get("/breakdown", h.breakdown)
}

// dashboard accepts an optional ?today=YYYY-MM-DD to pin the current month.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	today := h.now()

	if v := r.URL.Query().Get("today"); v != "" {
		t, err := ledger.ParseDate(v)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		today = t
	}

	d, err := h.svc.Dashboard(r.Context(), today)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDashboard(d))
}

func (h *Handler) trends(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Trends(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toTrends(t))
}

func (h *Handler) breakdown(w http.ResponseWriter, r *http.Request) {
	var month *ledger.Month

	if v := r.URL.Query().Get("month"); v != "" {
		m, err := ledger.ParseMonth(v)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		month = &m
	}

	totals, err := h.svc.Breakdown(r.Context(), month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, breakdownResponse{Totals: toCategoryTotals(totals), Chart: report.ChartPoints(totals)})
}
