package bill

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
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

type Handler struct {
	svc       *bill.Service
	summaries *summary.Service
}

func NewHandler(svc *bill.Service, summaries *summary.Service) *Handler {
	return &Handler{svc: svc, summaries: summaries}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/summary", h.summary)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createBillRequest struct {
	Name         string          `json:"name"`
	Value        decimal.Decimal `json:"value"`
	Description  string          `json:"description"`
	Installments *int            `json:"installments"`
	CreatedAt    *time.Time      `json:"created_at"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := bill.CreateParams{
		UserID:       userID,
		Name:         req.Name,
		Value:        req.Value,
		Description:  req.Description,
		Installments: req.Installments,
	}
	if req.CreatedAt != nil {
		params.CreatedAt = *req.CreatedAt
	}

	b, err := h.svc.Create(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	filter := bill.ListFilter{UserID: userID}

	if s := r.URL.Query().Get("kind"); s != "" {
		switch k := bill.Kind(s); k {
		case bill.KindFixed, bill.KindMonthlyMisc, bill.KindInstallment:
			filter.Kind = new(k)
		default:
			http.Error(w, "kind must be fixed, misc or installment", http.StatusBadRequest)
			return
		}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	bills, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponseList(bills))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	sum, err := h.summaries.Compute(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ToSummaryResponse(sum))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(b))
}

type updateBillRequest struct {
	Name         *string          `json:"name,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Installments *int             `json:"installments,omitempty"`
	Fixed        bool             `json:"fixed,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if req.Name != nil {
		b.Name = *req.Name
	}

	if req.Value != nil {
		b.Value = *req.Value
	}

	if req.Description != nil {
		b.Description = *req.Description
	}

	// "fixed": true turns the bill back into a fixed one.
	switch {
	case req.Fixed:
		b.Installments = nil
	case req.Installments != nil:
		b.Installments = req.Installments
	}

	if err := h.svc.Update(r.Context(), b); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func currentUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
	}

	return id, ok
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *bill.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, bill.ErrNotFound):
		http.Error(w, "bill not found", http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "bill request failed", "path", r.URL.Path, "error", err)
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
