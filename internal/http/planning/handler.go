package planning

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
	"github.com/MrJamesThe3rd/billy/internal/planning"
	"github.com/MrJamesThe3rd/billy/internal/summary"
)

type Handler struct {
	svc   *planning.Service
	clock summary.Clock
}

func NewHandler(svc *planning.Service, clock summary.Clock) *Handler {
	return &Handler{svc: svc, clock: clock}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type planningResponse struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	GoalValue      string     `json:"goal_value"`
	SavedValue     string     `json:"saved_value"`
	TargetDate     string     `json:"target_date"`
	MonthlyDeposit string     `json:"monthly_deposit"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

func (h *Handler) toResponse(p *planning.Planning) planningResponse {
	return planningResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		GoalValue:      p.GoalValue.StringFixed(2),
		SavedValue:     p.SavedValue.StringFixed(2),
		TargetDate:     p.TargetDate.Format(time.DateOnly),
		MonthlyDeposit: p.MonthlyDeposit(h.clock.Now()).StringFixed(2),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type createPlanningRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	GoalValue   decimal.Decimal `json:"goal_value"`
	SavedValue  decimal.Decimal `json:"saved_value"`
	TargetDate  string          `json:"target_date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	var req createPlanningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target, err := time.Parse(time.DateOnly, req.TargetDate)
	if err != nil {
		http.Error(w, "target_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	p, err := h.svc.Create(r.Context(), planning.CreateParams{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		GoalValue:   req.GoalValue,
		SavedValue:  req.SavedValue,
		TargetDate:  target,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.toResponse(p))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	plannings, err := h.svc.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := make([]planningResponse, len(plannings))
	for i, p := range plannings {
		resp[i] = h.toResponse(p)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(p))
}

type updatePlanningRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	GoalValue   *decimal.Decimal `json:"goal_value,omitempty"`
	SavedValue  *decimal.Decimal `json:"saved_value,omitempty"`
	TargetDate  *string          `json:"target_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updatePlanningRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, ok := h.load(w, r)
	if !ok {
		return
	}

	if req.Name != nil {
		p.Name = *req.Name
	}

	if req.Description != nil {
		p.Description = *req.Description
	}

	if req.GoalValue != nil {
		p.GoalValue = *req.GoalValue
	}

	if req.SavedValue != nil {
		p.SavedValue = *req.SavedValue
	}

	if req.TargetDate != nil {
		target, err := time.Parse(time.DateOnly, *req.TargetDate)
		if err != nil {
			http.Error(w, "target_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p.TargetDate = target
	}

	if err := h.svc.Update(r.Context(), p); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.toResponse(p))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
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

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*planning.Planning, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return nil, false
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	p, err := h.svc.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return nil, false
	}

	return p, true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *planning.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, planning.ErrNotFound):
		http.Error(w, "planning not found", http.StatusNotFound)
	default:
		slog.ErrorContext(r.Context(), "planning request failed", "path", r.URL.Path, "error", err)
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
