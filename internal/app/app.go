// Package app wires stores and services together for the binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/config"
	"github.com/MrJamesThe3rd/notas/internal/database"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	entityStore "github.com/MrJamesThe3rd/notas/internal/entity/store"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	invoiceStore "github.com/MrJamesThe3rd/notas/internal/invoice/store"
	"github.com/MrJamesThe3rd/notas/internal/report"
)

type App struct {
	DB        *sql.DB
	Invoices  *invoice.Service
	Entities  *entity.Service
	Importer  *importer.Service
	Analytics *analytics.Service
	Reports   *report.Service
}

// New opens the database and builds the services on top of it.
func New(cfg *config.Config) (*App, error) {
	db, err := database.New(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	var (
		invoices = invoice.NewService(invoiceStore.New(db))
		entities = entity.NewService(entityStore.New(db))
	)

	return &App{
		DB:        db,
		Invoices:  invoices,
		Entities:  entities,
		Importer:  importer.NewService(invoices, entities),
		Analytics: analytics.NewService(invoices),
		Reports:   report.NewService(invoices),
	}, nil
}

// NormalizeDates rewrites entry dates still stored as DD-MM-YYYY. The
// binaries run it once at startup.
func (a *App) NormalizeDates(ctx context.Context) (int, error) {
	fixed, err := a.Invoices.NormalizeLegacyDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("normalizing dates: %w", err)
	}

	if fixed > 0 {
		slog.Info("normalized legacy entry dates", "count", fixed)
	}

	return fixed, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}
