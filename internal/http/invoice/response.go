package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

// Response is the JSON form of an invoice record. A missing amount is null.
type Response struct {
	ID             int64               `json:"id"`
	StoreName      string              `json:"store_name"`
	StoreTaxID     string              `json:"store_tax_id,omitempty"`
	SupplierName   string              `json:"supplier_name"`
	SupplierTaxID  string              `json:"supplier_tax_id,omitempty"`
	DocumentNumber string              `json:"document_number,omitempty"`
	InvoiceNumber  string              `json:"invoice_number,omitempty"`
	AccessKey      string              `json:"access_key,omitempty"`
	Amount         decimal.NullDecimal `json:"amount"`
	EntryDate      string              `json:"entry_date,omitempty"`
	DueDate        string              `json:"due_date,omitempty"`
	Note           string              `json:"note,omitempty"`
	Kind           invoice.Kind        `json:"kind,omitempty"`
}

func ToResponse(r *invoice.Record) Response {
	return Response{
		ID:             r.ID,
		StoreName:      r.StoreName,
		StoreTaxID:     r.StoreTaxID,
		SupplierName:   r.SupplierName,
		SupplierTaxID:  r.SupplierTaxID,
		DocumentNumber: r.DocumentNumber,
		InvoiceNumber:  r.InvoiceNumber,
		AccessKey:      r.AccessKey,
		Amount:         r.Amount,
		EntryDate:      r.EntryDate,
		DueDate:        r.DueDate,
		Note:           r.Note,
		Kind:           r.Kind,
	}
}

func ToResponseList(records []*invoice.Record) []Response {
	resp := make([]Response, len(records))
	for i, r := range records {
		resp[i] = ToResponse(r)
	}

	return resp
}
