package importcsv

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/billy/internal/auth"
	"github.com/MrJamesThe3rd/billy/internal/bill"
	"github.com/MrJamesThe3rd/billy/internal/importer"
	"github.com/MrJamesThe3rd/billy/internal/importer/cgd"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type billResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Value       string    `json:"value"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int            `json:"imported"`
	Bills    []billResponse `json:"bills"`
}

type createParamsDTO struct {
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing billResponse    `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.FormValue("bank"))
	if bank == "" {
		bank = importer.BankCGD
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), userID, bank, file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toBillResponse(c.Existing),
			})
		}

		writeJSON(w, http.StatusConflict, resp)

		return
	}

	writeJSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]bill.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		one := 1
		params = append(params, bill.CreateParams{
			Name:         p.Name,
			Value:        p.Value,
			Description:  p.Description,
			Installments: &one,
			CreatedAt:    p.Date,
		})
	}

	bills, err := h.importSvc.Confirm(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSuccessResponse(bills))
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *bill.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, cgd.ErrUnknownFormat), errors.Is(err, importer.ErrUnknownBank):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.ErrorContext(r.Context(), "import failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(bills []*bill.Bill) importSuccessResponse {
	responses := make([]billResponse, 0, len(bills))
	for _, b := range bills {
		responses = append(responses, toBillResponse(b))
	}

	return importSuccessResponse{
		Imported: len(bills),
		Bills:    responses,
	}
}

func toBillResponse(b *bill.Bill) billResponse {
	return billResponse{
		ID:          b.ID,
		Name:        b.Name,
		Value:       b.Value.StringFixed(2),
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

func toParamsDTO(p bill.CreateParams) createParamsDTO {
	return createParamsDTO{
		Name:        p.Name,
		Value:       p.Value,
		Description: p.Description,
		Date:        p.CreatedAt,
	}
}
