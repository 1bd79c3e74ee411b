package plan

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billy/internal/ai"
	"github.com/MrJamesThe3rd/billy/internal/auth"
	billhttp "github.com/MrJamesThe3rd/billy/internal/http/bill"
	"github.com/MrJamesThe3rd/billy/internal/plan"
)

type Handler struct {
	svc   *plan.Service
	users *auth.Service
}

func NewHandler(svc *plan.Service, users *auth.Service) *Handler {
	return &Handler{svc: svc, users: users}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.generate)
}

type generateRequest struct {
	SendEmail bool `json:"send_email"`
}

type generateResponse struct {
	Plan    string                   `json:"plan"`
	Summary billhttp.SummaryResponse `json:"summary"`
	Emailed bool                     `json:"emailed"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := plan.Options{SendEmail: req.SendEmail}
	if req.SendEmail {
		opts.Email = auth.Email(r.Context())
		if opts.Email == "" {
			u, err := h.users.Me(r.Context(), userID)
			if err != nil {
				slog.ErrorContext(r.Context(), "resolving plan recipient", "user_id", userID, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			opts.Email = u.Email
		}
	}

	res, err := h.svc.Generate(r.Context(), userID, opts)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	case errors.Is(err, plan.ErrNoRecipient):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "plan generation failed", "user_id", userID, "error", err)
		http.Error(w, "failed to generate plan", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(generateResponse{
		Plan:    res.Plan,
		Summary: billhttp.ToSummaryResponse(res.Summary),
		Emailed: res.Emailed,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
