package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/billy/internal/ai"
	"github.com/MrJamesThe3rd/billy/internal/auth"
	"github.com/MrJamesThe3rd/billy/internal/bill"
	billStore "github.com/MrJamesThe3rd/billy/internal/bill/store"
	"github.com/MrJamesThe3rd/billy/internal/config"
	"github.com/MrJamesThe3rd/billy/internal/database"
	billyHttp "github.com/MrJamesThe3rd/billy/internal/http"
	authHandler "github.com/MrJamesThe3rd/billy/internal/http/auth"
	billHandler "github.com/MrJamesThe3rd/billy/internal/http/bill"
	importHandler "github.com/MrJamesThe3rd/billy/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/billy/internal/http/matching"
	planHandler "github.com/MrJamesThe3rd/billy/internal/http/plan"
	planningHandler "github.com/MrJamesThe3rd/billy/internal/http/planning"
	"github.com/MrJamesThe3rd/billy/internal/importer"
	"github.com/MrJamesThe3rd/billy/internal/logging"
	"github.com/MrJamesThe3rd/billy/internal/mail"
	"github.com/MrJamesThe3rd/billy/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/billy/internal/matching/store"
	"github.com/MrJamesThe3rd/billy/internal/plan"
	"github.com/MrJamesThe3rd/billy/internal/planning"
	planningStore "github.com/MrJamesThe3rd/billy/internal/planning/store"
	"github.com/MrJamesThe3rd/billy/internal/summary"
	userStore "github.com/MrJamesThe3rd/billy/internal/user/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(context.Background(), cfg.ConnectionString(), cfg.Pool())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	clock := summary.SystemClock{Location: cfg.Location()}
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	var (
		authService     = auth.NewService(userStore.New(db), tokens)
		billService     = bill.NewService(billStore.New(db))
		summaryService  = summary.NewService(billService, clock)
		planningService = planning.NewService(planningStore.New(db))
		matchingService = matching.NewService(matchingStore.New(db))
		importService   = importer.NewService(billService, matchingService)
		aiClient        = ai.NewClient(ai.Config{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			Sender:   cfg.SMTP.Sender,
		})
		planService = plan.NewService(summaryService, planningService, aiClient, mailer, clock)
	)

	router := billyHttp.New(billyHttp.Handlers{
		Auth:      authHandler.NewHandler(authService),
		Bills:     billHandler.NewHandler(billService, summaryService),
		Plannings: planningHandler.NewHandler(planningService, clock),
		Plans:     planHandler.NewHandler(planService, authService),
		Import:    importHandler.NewHandler(importService),
		Matching:  matchingHandler.NewHandler(matchingService),
	}, tokens, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout + cfg.AI.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
