package invoice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	invoiceHandler "github.com/MrJamesThe3rd/notas/internal/http/invoice"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

func newServer(t *testing.T, repo *invoice.MockRepository) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/invoices", invoiceHandler.NewHandler(invoice.NewService(repo)).Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		setupMock  func(m *invoice.MockRepository)
		wantStatus int
	}

	tests := []testCase{
		{
			name: "Success",
			body: `{"supplier_name":"Acme","store_name":"Loja","amount":"1234.56","entry_date":"15/01/2024","kind":"Entrada"}`,
			setupMock: func(m *invoice.MockRepository) {
				m.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *invoice.Record) error {
					assert.Equal(t, "2024-01-15", r.EntryDate)
					r.ID = 42

					return nil
				})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "BadDate",
			body:       `{"amount":"1","entry_date":"2024-13-45","kind":"Entrada"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "NegativeAmount",
			body:       `{"amount":-5,"entry_date":"2024-01-15","kind":"Saída"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "UnknownKind",
			body:       `{"amount":5,"entry_date":"2024-01-15","kind":"Transferência"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "MalformedBody",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := invoice.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			srv := newServer(t, repo)

			resp, err := http.Post(srv.URL+"/invoices", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, float64(42), body["id"])
				assert.Equal(t, "1234.56", body["amount"])
			}
		})
	}
}

func TestHandler_GetAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetRecord(gomock.Any(), int64(7)).Return(&invoice.Record{ID: 7, SupplierName: "Acme"}, nil)
	repo.EXPECT().GetRecord(gomock.Any(), int64(8)).Return(nil, invoice.ErrNotFound)
	repo.EXPECT().DeleteRecord(gomock.Any(), int64(7)).Return(nil)
	repo.EXPECT().DeleteRecord(gomock.Any(), int64(8)).Return(invoice.ErrNotFound)

	srv := newServer(t, repo)

	resp, err := http.Get(srv.URL + "/invoices/7")
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body["amount"])
	assert.NotContains(t, body, "entry_date")

	resp, err = http.Get(srv.URL + "/invoices/8")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/invoices/abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	for id, want := range map[string]int{"7": http.StatusNoContent, "8": http.StatusNotFound} {
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/invoices/"+id, nil)
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, id)
	}
}

func TestHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().
		ListRecords(gomock.Any(), invoice.ListFilter{Supplier: "Acme", Limit: 2}).
		Return([]*invoice.Record{
			{ID: 2, Amount: decimal.NewNullDecimal(decimal.NewFromInt(10))},
			{ID: 1},
		}, nil)

	resp, err := http.Get(newServer(t, repo).URL + "/invoices?supplier=Acme&limit=2")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, float64(2), body[0]["id"])
	assert.Equal(t, "10", body[0]["amount"])
}
