// Package render holds the response helpers shared by the v1 handlers.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/report"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status maps a domain error to its HTTP status. Anything unrecognised is a
// storage failure.
func Status(err error) int {
	switch {
	case errors.Is(err, invoice.ErrNotFound), errors.Is(err, entity.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, analytics.ErrMissingEntryDate):
		return http.StatusUnprocessableEntity
	case errors.Is(err, invoice.ErrInvalidDate),
		errors.Is(err, invoice.ErrInvalidKind),
		errors.Is(err, invoice.ErrNegativeAmount),
		errors.Is(err, entity.ErrInvalid),
		errors.Is(err, entity.ErrUnknownType),
		errors.Is(err, importer.ErrUnknownFormat),
		errors.Is(err, importer.ErrInvalidDocument),
		errors.Is(err, report.ErrUnknownFormat):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// Error writes err with the status from Status. The detail of a storage
// failure stays in the log.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

// ListFilter reads start_date, end_date, supplier and limit from the query.
// Dates may be ISO or dd/mm/yyyy.
func ListFilter(r *http.Request) (invoice.ListFilter, error) {
	q := r.URL.Query()

	var filter invoice.ListFilter

	for key, dst := range map[string]**time.Time{
		"start_date": &filter.StartDate,
		"end_date":   &filter.EndDate,
	} {
		s := q.Get(key)
		if s == "" {
			continue
		}

		iso, err := dates.Parse(s)
		if err != nil {
			return invoice.ListFilter{}, err
		}

		t, err := time.Parse(time.DateOnly, iso)
		if err != nil {
			return invoice.ListFilter{}, err
		}

		*dst = new(t)
	}

	filter.Supplier = strings.TrimSpace(q.Get("supplier"))

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return invoice.ListFilter{}, errors.New("limit must be a non-negative integer")
		}

		filter.Limit = n
	}

	return filter, nil
}

// IsZero reports whether filter restricts nothing.
func IsZero(filter invoice.ListFilter) bool {
	return filter.StartDate == nil && filter.EndDate == nil && filter.Supplier == "" && filter.Limit == 0
}
