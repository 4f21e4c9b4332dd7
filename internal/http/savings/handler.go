package savings

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
	"github.com/MrJamesThe3rd/tally/internal/savings"
)

type Handler struct {
	svc *savings.Service
}

func NewHandler(svc *savings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type savingsResponse struct {
	ID          uuid.UUID  `json:"id"`
	Amount      string     `json:"amount"`
	Date        string     `json:"date"`
	Goal        string     `json:"goal,omitempty"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func toResponse(s *ledger.Savings) savingsResponse {
	return savingsResponse{
		ID:          s.ID,
		Amount:      ledger.FormatAmount(s.Amount),
		Date:        s.Date.Format(time.DateOnly),
		Goal:        s.Goal,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

type createSavingsRequest struct {
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Goal        string `json:"goal"`
	Description string `json:"description"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createSavingsRequest
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

	s, err := h.svc.Create(r.Context(), savings.CreateParams{
		Amount:      amount,
		Date:        date,
		Goal:        req.Goal,
		Description: req.Description,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(s))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]savingsResponse, len(entries))
	for i, s := range entries {
		resp[i] = toResponse(s)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type updateSavingsRequest struct {
	Amount      *string `json:"amount,omitempty"`
	Date        *string `json:"date,omitempty"`
	Goal        *string `json:"goal,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateSavingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := savings.UpdateParams{Goal: req.Goal, Description: req.Description}

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

	s, err := h.svc.Update(r.Context(), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(s))
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
