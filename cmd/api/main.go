package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/notas/internal/app"
	"github.com/MrJamesThe3rd/notas/internal/config"
	notasHttp "github.com/MrJamesThe3rd/notas/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/notas/internal/http/analytics"
	entityHandler "github.com/MrJamesThe3rd/notas/internal/http/entity"
	importHandler "github.com/MrJamesThe3rd/notas/internal/http/importxml"
	invoiceHandler "github.com/MrJamesThe3rd/notas/internal/http/invoice"
	reportHandler "github.com/MrJamesThe3rd/notas/internal/http/report"
	"github.com/MrJamesThe3rd/notas/internal/logging"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(logger.With("app", cfg.App.Name))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if _, err := a.NormalizeDates(ctx); err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	router := notasHttp.New(notasHttp.Handlers{
		Invoices:  invoiceHandler.NewHandler(a.Invoices),
		Entities:  entityHandler.NewHandler(a.Entities),
		Import:    importHandler.NewHandler(a.Importer),
		Analytics: analyticsHandler.NewHandler(a.Analytics),
		Reports:   reportHandler.NewHandler(a.Reports),
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "addr", srv.Addr, "db", cfg.DB.Path)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
