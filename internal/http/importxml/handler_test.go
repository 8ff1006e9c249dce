package importxml_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/notas/internal/entity"
	"github.com/MrJamesThe3rd/notas/internal/http/importxml"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type upload struct {
	name string
	data []byte
}

func sample(t *testing.T) []byte {
	t.Helper()

	data, err := os.ReadFile("../../importer/testdata/nfe.xml")
	require.NoError(t, err)

	return data
}

func newServer(t *testing.T, creator *importer.MockCreator) *httptest.Server {
	t.Helper()

	resolver := importer.NewMockResolver(gomock.NewController(t))
	resolver.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ entity.Type, _, fallback string) (string, error) {
			return fallback, nil
		}).
		AnyTimes()

	r := chi.NewRouter()
	r.Route("/import", importxml.NewHandler(importer.NewService(creator, resolver)).Routes)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return srv
}

func post(t *testing.T, url string, files ...upload) (int, map[string]any) {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("file", f.name)
		require.NoError(t, err)

		_, err = part.Write(f.data)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	resp, err := http.Post(url, mw.FormDataContentType(), &body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}

	return resp.StatusCode, out
}

func TestHandler_Import(t *testing.T) {
	type testCase struct {
		name         string
		files        func(t *testing.T) []upload
		setupMock    func(m *importer.MockCreator)
		wantStatus   int
		wantImported float64
		wantFailed   []string
	}

	tests := []testCase{
		{
			name: "PartialFailure",
			files: func(t *testing.T) []upload {
				return []upload{{"nota.xml", sample(t)}, {"quebrada.xml", []byte("<nfeProc>")}}
			},
			setupMock: func(m *importer.MockCreator) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p invoice.CreateParams) (*invoice.Record, error) {
					assert.Equal(t, "567", p.InvoiceNumber)

					return &invoice.Record{ID: 1, SupplierName: p.SupplierName, EntryDate: p.EntryDate, Kind: p.Kind}, nil
				})
			},
			wantStatus:   http.StatusCreated,
			wantImported: 1,
			wantFailed:   []string{"quebrada.xml"},
		},
		{
			name: "AllInvalid",
			files: func(t *testing.T) []upload {
				return []upload{{"a.xml", []byte("not xml")}, {"b.xml", []byte("<nfeProc>")}}
			},
			wantStatus: http.StatusBadRequest,
			wantFailed: []string{"a.xml", "b.xml"},
		},
		{
			name: "StorageFailure",
			files: func(t *testing.T) []upload {
				return []upload{{"nota.xml", sample(t)}, {"b.xml", []byte("<nfeProc>")}}
			},
			setupMock: func(m *importer.MockCreator) {
				m.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked"))
			},
			wantStatus: http.StatusInternalServerError,
			wantFailed: []string{"nota.xml", "b.xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			creator := importer.NewMockCreator(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(creator)
			}

			status, body := post(t, newServer(t, creator).URL+"/import", tt.files(t)...)
			require.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantImported, body["imported"])

			failed, _ := body["failed"].([]any)
			require.Len(t, failed, len(tt.wantFailed))

			for i, name := range tt.wantFailed {
				assert.Equal(t, name, failed[i].(map[string]any)["file"])
			}
		})
	}
}

func TestHandler_StorageFailureHidesDetail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := importer.NewMockCreator(ctrl)
	creator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is locked"))

	_, body := post(t, newServer(t, creator).URL+"/import", upload{"nota.xml", sample(t)})

	failed := body["failed"].([]any)
	require.Len(t, failed, 1)
	assert.Equal(t, "internal error", failed[0].(map[string]any)["error"])
}

func TestHandler_Preview(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := newServer(t, importer.NewMockCreator(ctrl))

	status, body := post(t, srv.URL+"/import/preview", upload{"nota.xml", sample(t)})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "567", body["invoice_number"])
	assert.Equal(t, "2024-03-08", body["entry_date"])
	assert.Equal(t, "2750.9", body["amount"])

	status, _ = post(t, srv.URL+"/import/preview", upload{"x.xml", []byte("not xml")})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = post(t, srv.URL+"/import/preview")
	assert.Equal(t, http.StatusBadRequest, status)
}
