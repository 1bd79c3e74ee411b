package matching

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/billy/internal/auth"
	"github.com/MrJamesThe3rd/billy/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawDescription string `json:"raw_description"`
	PreferredName  string `json:"preferred_name"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		http.Error(w, "raw_description query parameter is required", http.StatusBadRequest)
		return
	}

	preferred, err := h.svc.Suggest(r.Context(), userID, rawDesc)
	if err != nil {
		slog.ErrorContext(r.Context(), "name suggestion failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		RawDescription: rawDesc,
		PreferredName:  preferred,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	RawPattern    string `json:"raw_pattern"`
	PreferredName string `json:"preferred_name"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, auth.ErrMissingToken.Error(), http.StatusUnauthorized)
		return
	}

	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.Learn(r.Context(), userID, req.RawPattern, req.PreferredName)
	switch {
	case errors.Is(err, matching.ErrEmptyMapping):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "saving name mapping failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
