// Package nfe reads Brazilian electronic invoices (NF-e) in the layout
// published by the Portal da Nota Fiscal Eletrônica.
package nfe

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/encoding"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

const Namespace = "http://www.portalfiscal.inf.br/nfe"

var ErrIncompleteDocument = errors.New("incomplete NF-e: ide, emit, dest and ICMSTot are required")

type infNFe struct {
	ID    string `xml:"Id,attr"`
	Ide   *ide   `xml:"ide"`
	Emit  *party `xml:"emit"`
	Dest  *party `xml:"dest"`
	Total *total `xml:"total"`
}

type ide struct {
	Number   string `xml:"nNF"`
	IssuedAt string `xml:"dhEmi"`
	IssuedOn string `xml:"dEmi"`
}

type party struct {
	Name string `xml:"xNome"`
	CNPJ string `xml:"CNPJ"`
	CPF  string `xml:"CPF"`
}

func (p *party) taxID() string {
	if p.CNPJ != "" {
		return strings.TrimSpace(p.CNPJ)
	}

	return strings.TrimSpace(p.CPF)
}

type total struct {
	ICMSTot *struct {
		Amount string `xml:"vNF"`
	} `xml:"ICMSTot"`
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse reads a single NF-e, bare or wrapped in an nfeProc envelope. Imported
// invoices are always recorded as inflow.
func (p *Parser) Parse(r io.Reader) (invoice.CreateParams, error) {
	utf8Reader, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return invoice.CreateParams{}, fmt.Errorf("detecting encoding: %w", err)
	}

	doc, err := findInfNFe(utf8Reader)
	if err != nil {
		return invoice.CreateParams{}, err
	}

	if doc.Ide == nil || doc.Emit == nil || doc.Dest == nil || doc.Total == nil || doc.Total.ICMSTot == nil {
		return invoice.CreateParams{}, ErrIncompleteDocument
	}

	issued, err := issueDate(doc.Ide)
	if err != nil {
		return invoice.CreateParams{}, err
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(doc.Total.ICMSTot.Amount))
	if err != nil {
		amount = decimal.Zero
	}

	number := strings.TrimSpace(doc.Ide.Number)

	return invoice.CreateParams{
		StoreName:      strings.TrimSpace(doc.Dest.Name),
		StoreTaxID:     doc.Dest.taxID(),
		SupplierName:   strings.TrimSpace(doc.Emit.Name),
		SupplierTaxID:  doc.Emit.taxID(),
		DocumentNumber: number,
		InvoiceNumber:  number,
		AccessKey:      strings.TrimPrefix(strings.TrimSpace(doc.ID), "NFe"),
		Amount:         amount,
		EntryDate:      issued,
		Kind:           invoice.KindInflow,
	}, nil
}

// findInfNFe walks the token stream to the first infNFe element in the NF-e
// namespace, wherever it is nested.
func findInfNFe(r io.Reader) (*infNFe, error) {
	dec := xml.NewDecoder(r)
	// The reader is already UTF-8; the declared charset is informational.
	dec.CharsetReader = func(_ string, in io.Reader) (io.Reader, error) {
		return in, nil
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, ErrIncompleteDocument
		}

		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "infNFe" || se.Name.Space != Namespace {
			continue
		}

		var doc infNFe
		if err := dec.DecodeElement(&doc, &se); err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		return &doc, nil
	}
}

func issueDate(i *ide) (string, error) {
	if s := strings.TrimSpace(i.IssuedAt); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.Format(time.DateOnly), nil
		}

		if len(s) >= 10 && dates.IsISO(s[:10]) {
			return s[:10], nil
		}

		return "", fmt.Errorf("%w: dhEmi %q", invoice.ErrInvalidDate, s)
	}

	if s := strings.TrimSpace(i.IssuedOn); dates.IsISO(s) {
		return s, nil
	}

	return "", fmt.Errorf("%w: missing issue date", ErrIncompleteDocument)
}
