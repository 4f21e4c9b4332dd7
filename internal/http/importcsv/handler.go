package importcsv

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/http/respond"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type importedExpense struct {
	ID          uuid.UUID `json:"id"`
	Amount      string    `json:"amount"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
}

type rowError struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported      int               `json:"imported"`
	Duplicates    int               `json:"duplicates"`
	Income        int               `json:"income_skipped"`
	NewCategories []string          `json:"new_categories"`
	Expenses      []importedExpense `json:"expenses"`
	Errors        []rowError        `json:"errors"`
}

func toResponse(res *importer.Result) importResponse {
	resp := importResponse{
		Imported:      len(res.Imported),
		Duplicates:    res.Duplicates,
		Income:        res.Income,
		NewCategories: res.NewCategories,
		Expenses:      make([]importedExpense, 0, len(res.Imported)),
		Errors:        make([]rowError, 0, len(res.Errors)),
	}

	if resp.NewCategories == nil {
		resp.NewCategories = []string{}
	}

	for _, e := range res.Imported {
		resp.Expenses = append(resp.Expenses, importedExpense{
			ID:          e.ID,
			Amount:      ledger.FormatAmount(e.Amount),
			Date:        e.Date.Format("2006-01-02"),
			Description: e.Description,
			Category:    e.Category.Name,
		})
	}

	for _, re := range res.Errors {
		resp.Errors = append(resp.Errors, rowError{Line: re.Line, Error: re.Err.Error()})
	}

	return resp
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	res, err := h.svc.Import(r.Context(), file)
	if err != nil {
		if errors.Is(err, importer.ErrNoHeader) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(res))
}
