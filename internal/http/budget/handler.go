package budget

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/budget"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID          uuid.UUID    `json:"id"`
	Amount      string       `json:"amount"`
	Month       ledger.Month `json:"month"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   *time.Time   `json:"updated_at,omitempty"`
}

func toResponse(b *ledger.Budget) budgetResponse {
	return budgetResponse{
		ID:          b.ID,
		Amount:      ledger.FormatAmount(b.Amount),
		Month:       b.Month,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// parseMonthOrDate accepts "YYYY-MM" or any full date inside the month.
func parseMonthOrDate(s string) (time.Time, error) {
	if m, err := ledger.ParseMonth(s); err == nil {
		return m.Start(), nil
	}

	return ledger.ParseDate(s)
}

type createBudgetRequest struct {
	Amount      string `json:"amount"`
	Month       string `json:"month"`
	Description string `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	date, err := parseMonthOrDate(req.Month)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	b, err := h.svc.Create(r.Context(), budget.CreateParams{Amount: amount, Date: date, Description: req.Description})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		resp[i] = toResponse(b)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type updateBudgetRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Month       *string `json:"month,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := budget.UpdateParams{Description: req.Description}

	if req.Amount != nil {
		amount, err := ledger.ParseAmount(*req.Amount)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.Amount = &amount
	}

	if req.Month != nil {
		date, err := parseMonthOrDate(*req.Month)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.Date = &date
	}

	b, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
