package expense

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

type Handler struct {
	svc *expense.Service
}

func NewHandler(svc *expense.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type categoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type expenseResponse struct {
	ID          uuid.UUID   `json:"id"`
	Amount      string      `json:"amount"`
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Category    categoryRef `json:"category"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(e *ledger.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Amount:      ledger.FormatAmount(e.Amount),
		Date:        e.Date.Format(time.DateOnly),
		Description: e.Description,
		Category:    categoryRef{ID: e.Category.ID, Name: e.Category.Name},
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toResponseList(exps []*ledger.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(exps))
	for i, e := range exps {
		resp[i] = toResponse(e)
	}

	return resp
}

// selection picks an existing category by id, or by free-text name.
func selection(id *uuid.UUID, name *string) (ledger.CategorySelection, bool) {
	switch {
	case id != nil:
		return ledger.Existing(*id), true
	case name != nil:
		return ledger.NewName(*name), true
	}

	return ledger.CategorySelection{}, false
}

type createExpenseRequest struct {
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Description string     `json:"description"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

type createExpenseResponse struct {
	expenseResponse
	NewCategory bool `json:"new_category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := ledger.ParseAmount(req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	date, err := ledger.ParseDate(req.Date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sel, _ := selection(req.CategoryID, req.Category)

	e, isNew, err := h.svc.Create(r.Context(), expense.CreateParams{
		Amount:      amount,
		Date:        date,
		Description: req.Description,
		Category:    sel,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, createExpenseResponse{expenseResponse: toResponse(e), NewCategory: isNew})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := expense.ListFilter{}
	q := r.URL.Query()

	if s := q.Get("month"); s != "" {
		m, err := ledger.ParseMonth(s)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		filter.StartDate = new(m.Start())
		filter.EndDate = new(m.Start().AddDate(0, 1, -1))
	}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"start_date", &filter.StartDate},
		{"end_date", &filter.EndDate},
	} {
		s := q.Get(p.key)
		if s == "" {
			continue
		}

		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			respond.Error(w, r, fmt.Errorf("%w: %s %q", ledger.ErrInvalidDate, p.key, s))
			return
		}

		*p.dst = new(t)
	}

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid category_id", http.StatusBadRequest)
			return
		}

		filter.CategoryID = &id
	}

	exps, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(exps))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
}

type updateExpenseRequest struct {
	Amount      *string    `json:"amount,omitempty"`
	Date        *string    `json:"date,omitempty"`
	Description *string    `json:"description,omitempty"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := expense.UpdateParams{Description: req.Description}

	if req.Amount != nil {
		amount, err := ledger.ParseAmount(*req.Amount)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.Amount = &amount
	}

	if req.Date != nil {
		date, err := ledger.ParseDate(*req.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.Date = &date
	}

	if sel, ok := selection(req.CategoryID, req.Category); ok {
		params.Category = &sel
	}

	e, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(e))
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

