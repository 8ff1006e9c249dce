package importxml

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	invoiceHandler "github.com/MrJamesThe3rd/notas/internal/http/invoice"
	"github.com/MrJamesThe3rd/notas/internal/http/render"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importFiles)
	r.Post("/preview", h.preview)
}

type previewResponse struct {
	StoreName      string          `json:"store_name"`
	StoreTaxID     string          `json:"store_tax_id"`
	SupplierName   string          `json:"supplier_name"`
	SupplierTaxID  string          `json:"supplier_tax_id"`
	DocumentNumber string          `json:"document_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	AccessKey      string          `json:"access_key"`
	Amount         decimal.Decimal `json:"amount"`
	EntryDate      string          `json:"entry_date"`
	Kind           invoice.Kind    `json:"kind"`
}

type failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported int                       `json:"imported"`
	Invoices []invoiceHandler.Response `json:"invoices"`
	Failed   []failure                 `json:"failed,omitempty"`
}

func uploads(w http.ResponseWriter, r *http.Request) (importer.Format, []*multipart.FileHeader, bool) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		format = importer.FormatNFe
	}

	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return "", nil, false
	}

	return format, files, true
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	format, files, ok := uploads(w, r)
	if !ok {
		return
	}

	f, err := files[0].Open()
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		return
	}
	defer f.Close()

	p, err := h.svc.Preview(r.Context(), format, f)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, previewResponse{
		StoreName:      p.StoreName,
		StoreTaxID:     p.StoreTaxID,
		SupplierName:   p.SupplierName,
		SupplierTaxID:  p.SupplierTaxID,
		DocumentNumber: p.DocumentNumber,
		InvoiceNumber:  p.InvoiceNumber,
		AccessKey:      p.AccessKey,
		Amount:         p.Amount,
		EntryDate:      p.EntryDate,
		Kind:           p.Kind,
	})
}

// importFiles saves every uploaded document it can. A file that fails does
// not stop the others; the response lists what was saved and what was not.
// When nothing was saved the status is the worst of the per-file statuses.
func (h *Handler) importFiles(w http.ResponseWriter, r *http.Request) {
	format, files, ok := uploads(w, r)
	if !ok {
		return
	}

	resp := importResponse{Invoices: []invoiceHandler.Response{}}
	worst := http.StatusBadRequest

	for _, fh := range files {
		rec, err := h.importOne(r, format, fh)
		if err != nil {
			status := render.Status(err)
			worst = max(worst, status)

			msg := err.Error()
			if status == http.StatusInternalServerError {
				slog.Error("import failed", "file", fh.Filename, "error", err)
				msg = "internal error"
			} else {
				slog.Warn("import failed", "file", fh.Filename, "error", err)
			}

			resp.Failed = append(resp.Failed, failure{File: fh.Filename, Error: msg})

			continue
		}

		resp.Invoices = append(resp.Invoices, invoiceHandler.ToResponse(rec))
	}

	resp.Imported = len(resp.Invoices)

	status := http.StatusCreated
	if resp.Imported == 0 {
		status = worst
	}

	render.JSON(w, status, resp)
}

func (h *Handler) importOne(r *http.Request, format importer.Format, fh *multipart.FileHeader) (*invoice.Record, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return h.svc.Import(r.Context(), format, f)
}
