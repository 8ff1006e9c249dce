package invoice

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/http/render"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type Handler struct {
	svc *invoice.Service
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createInvoiceRequest struct {
	StoreName      string          `json:"store_name"`
	StoreTaxID     string          `json:"store_tax_id"`
	SupplierName   string          `json:"supplier_name"`
	SupplierTaxID  string          `json:"supplier_tax_id"`
	DocumentNumber string          `json:"document_number"`
	InvoiceNumber  string          `json:"invoice_number"`
	AccessKey      string          `json:"access_key"`
	Amount         decimal.Decimal `json:"amount"`
	EntryDate      string          `json:"entry_date"`
	DueDate        string          `json:"due_date"`
	Note           string          `json:"note"`
	Kind           invoice.Kind    `json:"kind"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Dates typed as dd/mm/yyyy are accepted; the service only sees ISO.
	entry, err := dates.Parse(req.EntryDate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	due := req.DueDate
	if due != "" {
		if due, err = dates.Parse(due); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	rec, err := h.svc.Create(r.Context(), invoice.CreateParams{
		StoreName:      req.StoreName,
		StoreTaxID:     req.StoreTaxID,
		SupplierName:   req.SupplierName,
		SupplierTaxID:  req.SupplierTaxID,
		DocumentNumber: req.DocumentNumber,
		InvoiceNumber:  req.InvoiceNumber,
		AccessKey:      req.AccessKey,
		Amount:         req.Amount,
		EntryDate:      entry,
		DueDate:        due,
		Note:           req.Note,
		Kind:           req.Kind,
	})
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusCreated, ToResponse(rec))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := render.ListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.svc.List(r.Context(), filter)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, ToResponseList(records))
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, err)
		return
	}

	render.JSON(w, http.StatusOK, ToResponse(rec))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		render.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
