package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/notas/internal/http/analytics"
	"github.com/MrJamesThe3rd/notas/internal/http/entity"
	"github.com/MrJamesThe3rd/notas/internal/http/importxml"
	"github.com/MrJamesThe3rd/notas/internal/http/invoice"
	"github.com/MrJamesThe3rd/notas/internal/http/report"
)

type Handlers struct {
	Invoices  *invoice.Handler
	Entities  *entity.Handler
	Import    *importxml.Handler
	Analytics *analytics.Handler
	Reports   *report.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Invoices.Routes(r)
		})

		r.Route("/entities", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Entities.Routes(r)
		})

		r.Route("/import", h.Import.Routes)
		r.Route("/analytics", h.Analytics.Routes)
		r.Route("/reports", h.Reports.Routes)
	})

	return router
}
