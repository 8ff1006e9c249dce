package render_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/http/render"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

func TestError(t *testing.T) {
	tests := map[error]int{
		invoice.ErrNotFound: http.StatusNotFound,
		entity.ErrDuplicate: http.StatusConflict,
		fmt.Errorf("invoice 3: %w", analytics.ErrMissingEntryDate): http.StatusUnprocessableEntity,
		fmt.Errorf("%w: %q", invoice.ErrInvalidKind, "x"):          http.StatusBadRequest,
		fmt.Errorf("%w: bad", importer.ErrInvalidDocument):         http.StatusBadRequest,
		errors.New("database is locked"):                           http.StatusInternalServerError,
	}

	for err, want := range tests {
		w := httptest.NewRecorder()
		render.Error(w, httptest.NewRequest(http.MethodGet, "/", nil), err)
		assert.Equal(t, want, w.Code, err.Error())
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, render.Status(fmt.Errorf("%w: eof", importer.ErrInvalidDocument)))
	assert.Equal(t, http.StatusBadRequest, render.Status(invoice.ErrNegativeAmount))
	assert.Equal(t, http.StatusInternalServerError, render.Status(errors.New("disk I/O error")))
}

func TestListFilter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?start_date=01/02/2024&end_date=2024-02-29&supplier=%20Acme%20&limit=5", nil)

	f, err := render.ListFilter(r)
	require.NoError(t, err)

	require.NotNil(t, f.StartDate)
	require.NotNil(t, f.EndDate)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), *f.StartDate)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *f.EndDate)
	assert.Equal(t, "Acme", f.Supplier)
	assert.Equal(t, 5, f.Limit)
	assert.False(t, render.IsZero(f))

	f, err = render.ListFilter(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.True(t, render.IsZero(f))

	for _, q := range []string{"start_date=x", "end_date=2024-02-30", "limit=abc", "limit=-2"} {
		_, err := render.ListFilter(httptest.NewRequest(http.MethodGet, "/?"+q, nil))
		assert.Error(t, err, q)
	}
}
