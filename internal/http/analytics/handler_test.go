package analytics_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	analyticsHandler "github.com/MrJamesThe3rd/notas/internal/http/analytics"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

func rec(id int64, supplier, amount, date string, kind invoice.Kind) *invoice.Record {
	return &invoice.Record{
		ID:           id,
		SupplierName: supplier,
		Amount:       decimal.NewNullDecimal(decimal.RequireFromString(amount)),
		EntryDate:    date,
		Kind:         kind,
	}
}

func records() []*invoice.Record {
	return []*invoice.Record{
		rec(3, "Beta", "40", "2024-02-01", invoice.KindOutflow),
		rec(2, "Acme", "60", "2024-01-20", invoice.KindInflow),
		rec(1, "Acme", "100", "2024-01-05", invoice.KindInflow),
	}
}

func newServer(t *testing.T, source *analytics.MockSource) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/analytics", analyticsHandler.NewHandler(analytics.NewService(source)).Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}

	return resp.StatusCode
}

func TestHandler_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := analytics.NewMockSource(ctrl)
	source.EXPECT().List(gomock.Any(), invoice.ListFilter{}).Return(records(), nil)

	var body map[string]any
	require.Equal(t, http.StatusOK, get(t, newServer(t, source), "/analytics/summary", &body))

	assert.Equal(t, "160", body["total_inflow"])
	assert.Equal(t, "40", body["total_outflow"])
	assert.Equal(t, "120", body["net_balance"])
	assert.Equal(t, float64(2), body["inflow_count"])
	assert.Equal(t, float64(1), body["outflow_count"])
}

func TestHandler_FilteredSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	source := analytics.NewMockSource(ctrl)
	source.EXPECT().
		List(gomock.Any(), invoice.ListFilter{StartDate: &start, EndDate: &end, Supplier: "Acme"}).
		Return(records()[1:], nil)

	var body map[string]any
	status := get(t, newServer(t, source), "/analytics/summary?start_date=2024-01-01&end_date=31/01/2024&supplier=Acme", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "160", body["net_balance"])
}

func TestHandler_Monthly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := analytics.NewMockSource(ctrl)
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(records(), nil)

	var body map[string]map[string]string
	require.Equal(t, http.StatusOK, get(t, newServer(t, source), "/analytics/monthly", &body))

	assert.Equal(t, map[string]map[string]string{
		"2024-01": {"Entrada": "160"},
		"2024-02": {"Saída": "40"},
	}, body)
}

func TestHandler_Suppliers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := analytics.NewMockSource(ctrl)
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(records(), nil)

	var body []struct {
		Supplier string `json:"supplier"`
		Total    string `json:"total"`
	}
	require.Equal(t, http.StatusOK, get(t, newServer(t, source), "/analytics/suppliers", &body))

	require.Len(t, body, 2)
	assert.Equal(t, "Acme", body[0].Supplier)
	assert.Equal(t, "160", body[0].Total)
	assert.Equal(t, "Beta", body[1].Supplier)
}

func TestHandler_Report(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := analytics.NewMockSource(ctrl)
	source.EXPECT().List(gomock.Any(), invoice.ListFilter{Limit: 10}).Return(records(), nil)

	var body struct {
		Records int `json:"records"`
		Summary struct {
			NetBalance string `json:"net_balance"`
		} `json:"summary"`
		Monthly   map[string]map[string]string `json:"monthly"`
		Suppliers []map[string]string          `json:"suppliers"`
	}
	require.Equal(t, http.StatusOK, get(t, newServer(t, source), "/analytics/report?limit=10", &body))

	assert.Equal(t, 3, body.Records)
	assert.Equal(t, "120", body.Summary.NetBalance)
	assert.Len(t, body.Monthly, 2)
	assert.Len(t, body.Suppliers, 2)
}

func TestHandler_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	undated := []*invoice.Record{{ID: 5, Kind: invoice.KindInflow}}

	source := analytics.NewMockSource(ctrl)
	gomock.InOrder(
		source.EXPECT().List(gomock.Any(), gomock.Any()).Return(undated, nil),
		source.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked")),
	)

	srv := newServer(t, source)

	assert.Equal(t, http.StatusUnprocessableEntity, get(t, srv, "/analytics/monthly", nil))
	assert.Equal(t, http.StatusInternalServerError, get(t, srv, "/analytics/summary", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/analytics/summary?start_date=ontem", nil))
	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/analytics/report?limit=-1", nil))
}

func TestHandler_MissingEntryDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	undated := rec(9, "Acme", "5", "", invoice.KindInflow)
	withUndated := append(records(), undated)

	source := analytics.NewMockSource(ctrl)
	source.EXPECT().List(gomock.Any(), gomock.Any()).Return(withUndated, nil).Times(4)

	srv := newServer(t, source)

	var summary map[string]any
	require.Equal(t, http.StatusOK, get(t, srv, "/analytics/summary?supplier=Acme", &summary))
	assert.Equal(t, "165", summary["total_inflow"])
	assert.Equal(t, "125", summary["net_balance"])

	var suppliers []map[string]string
	require.Equal(t, http.StatusOK, get(t, srv, "/analytics/suppliers?limit=10", &suppliers))
	require.NotEmpty(t, suppliers)
	assert.Equal(t, map[string]string{"supplier": "Acme", "total": "165"}, suppliers[0])

	assert.Equal(t, http.StatusUnprocessableEntity, get(t, srv, "/analytics/monthly?supplier=Acme", nil))

	var report struct {
		Records      int                          `json:"records"`
		Monthly      map[string]map[string]string `json:"monthly"`
		MonthlyError string                       `json:"monthly_error"`
	}
	require.Equal(t, http.StatusOK, get(t, srv, "/analytics/report", &report))
	assert.Equal(t, 4, report.Records)
	assert.Nil(t, report.Monthly)
	assert.Contains(t, report.MonthlyError, "invoice 9")
}
