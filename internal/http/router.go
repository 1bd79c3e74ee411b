package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/billy/internal/auth"
	authhttp "github.com/MrJamesThe3rd/billy/internal/http/auth"
	"github.com/MrJamesThe3rd/billy/internal/http/bill"
	"github.com/MrJamesThe3rd/billy/internal/http/importcsv"
	"github.com/MrJamesThe3rd/billy/internal/http/matching"
	"github.com/MrJamesThe3rd/billy/internal/http/plan"
	"github.com/MrJamesThe3rd/billy/internal/http/planning"
	"github.com/MrJamesThe3rd/billy/internal/metrics"
)

type Handlers struct {
	Auth      *authhttp.Handler
	Bills     *bill.Handler
	Plannings *planning.Handler
	Plans     *plan.Handler
	Import    *importcsv.Handler
	Matching  *matching.Handler
}

func New(h Handlers, tokens *auth.JWTManager, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Method(http.MethodGet, "/metrics", metrics.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))

			r.With(logRequests).Group(h.Auth.Routes)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Use(logRequests)
				h.Auth.ProtectedRoutes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Use(logRequests)

			r.Route("/bills", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Bills.Routes(r)
			})

			r.Route("/plannings", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Plannings.Routes(r)
			})

			r.Route("/plans", h.Plans.Routes)
			r.Route("/import", h.Import.Routes)
			r.Route("/matching", h.Matching.Routes)
		})
	})

	return router
}

// logRequests logs one line per request. Mounted after RequireAuth it also
// logs the user.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		}

		if id, ok := auth.UserID(r.Context()); ok {
			attrs = append(attrs, "user_id", id)
		}

		level := slog.LevelInfo
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		slog.Log(r.Context(), level, "request", attrs...)
	})
}
