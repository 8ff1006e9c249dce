package invoice

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Kind tells whether an invoice is money received or money paid.
type Kind string

const (
	KindInflow  Kind = "Entrada"
	KindOutflow Kind = "Saída"
	// KindOther stands in for a missing kind. It never counts as inflow or outflow.
	KindOther Kind = "Outro"
)

var (
	ErrNotFound       = errors.New("invoice not found")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidKind    = errors.New("invalid kind")
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// Record is one invoice entry as stored.
//
// Optional values are explicit: an invalid Amount, an empty EntryDate and an
// empty Kind all mean "not recorded".
type Record struct {
	ID             int64
	StoreName      string
	StoreTaxID     string
	SupplierName   string
	SupplierTaxID  string
	DocumentNumber string
	InvoiceNumber  string
	AccessKey      string
	Amount         decimal.NullDecimal
	EntryDate      string // YYYY-MM-DD
	DueDate        string // YYYY-MM-DD or empty
	Note           string
	Kind           Kind
}

// AmountOrZero returns the amount, or zero when none was recorded.
func (r *Record) AmountOrZero() decimal.Decimal {
	if !r.Amount.Valid {
		return decimal.Zero
	}

	return r.Amount.Decimal
}

// KindOrDefault returns the kind, or KindOther when none was recorded.
func (r *Record) KindOrDefault() Kind {
	if r.Kind == "" {
		return KindOther
	}

	return r.Kind
}
