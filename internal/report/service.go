package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/money"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	case "":
		return FormatCSV, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}

	return "text/csv; charset=utf-8"
}

// Filename suggests a download name, e.g. "notas_20240131.xlsx".
func (f Format) Filename(now time.Time) string {
	return fmt.Sprintf("notas_%s.%s", now.Format("20060102"), f)
}

const (
	sheetRecords = "Notas"
	sheetSummary = "Resumo"
)

var header = []string{
	"ID", "Data", "Vencimento", "Loja", "CNPJ Loja", "Fornecedor", "CNPJ Fornecedor",
	"Documento", "NF-e", "Chave", "Valor", "Tipo", "Observação",
}

// Service writes spreadsheets of the invoices matching a filter.
type Service struct {
	source analytics.Source
}

func NewService(source analytics.Source) *Service {
	return &Service{source: source}
}

func (s *Service) Export(ctx context.Context, filter invoice.ListFilter, format Format, w io.Writer) error {
	records, err := s.source.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing invoices: %w", err)
	}

	switch format {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatXLSX:
		return WriteXLSX(w, records, analytics.Build(records))
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func row(r *invoice.Record) []string {
	amount := ""
	if r.Amount.Valid {
		amount = money.FormatPlain(r.Amount.Decimal)
	}

	return []string{
		fmt.Sprint(r.ID),
		dates.FormatBR(r.EntryDate),
		dates.FormatBR(r.DueDate),
		r.StoreName,
		r.StoreTaxID,
		r.SupplierName,
		r.SupplierTaxID,
		r.DocumentNumber,
		r.InvoiceNumber,
		r.AccessKey,
		amount,
		string(r.Kind),
		r.Note,
	}
}

// WriteCSV writes records as semicolon separated values, the layout
// spreadsheet programs expect under a pt-BR locale.
func WriteCSV(w io.Writer, records []*invoice.Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("writing invoice %d: %w", r.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteXLSX writes a workbook with the records on one sheet and the
// aggregates of rep on another.
func WriteXLSX(w io.Writer, records []*invoice.Record, rep *analytics.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRecords); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, sheetRecords, 1, toAny(header)); err != nil {
		return err
	}

	for i, r := range records {
		values := toAny(row(r))
		// Amounts go in as numbers so the sheet can sum them.
		if r.Amount.Valid {
			values[10] = r.Amount.Decimal.InexactFloat64()
		}

		if err := setRow(f, sheetRecords, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetRecords, "D", "G", 28); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	if _, err := f.NewSheet(sheetSummary); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	if err := writeSummarySheet(f, rep); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, rep *analytics.Report) error {
	rows := [][]any{
		{"Notas", rep.Records},
		{"Total de entradas", rep.Summary.TotalInflow.InexactFloat64()},
		{"Total de saídas", rep.Summary.TotalOutflow.InexactFloat64()},
		{"Saldo", rep.Summary.NetBalance.InexactFloat64()},
		{"Quantidade de entradas", rep.Summary.InflowCount},
		{"Quantidade de saídas", rep.Summary.OutflowCount},
		{},
		{"Mês", string(invoice.KindInflow), string(invoice.KindOutflow)},
	}

	if rep.MonthlyErr != nil {
		rows = append(rows, []any{monthlyUnavailable, rep.MonthlyErr.Error()})
	}

	for _, month := range rep.Monthly.Months() {
		totals := rep.Monthly[month]
		rows = append(rows, []any{
			month,
			totals[invoice.KindInflow].InexactFloat64(),
			totals[invoice.KindOutflow].InexactFloat64(),
		})
	}

	rows = append(rows, []any{}, []any{"Fornecedor", "Total"})
	for _, s := range rep.Suppliers.Ranked() {
		rows = append(rows, []any{s.Supplier, s.Amount.InexactFloat64()})
	}

	for i, values := range rows {
		if len(values) == 0 {
			continue
		}

		if err := setRow(f, sheetSummary, i+1, values); err != nil {
			return err
		}
	}

	return f.SetColWidth(sheetSummary, "A", "A", 32)
}

func setRow(f *excelize.File, sheet string, n int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("locating row %d: %w", n, err)
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, n, err)
	}

	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}

	return out
}

const monthlyUnavailable = "Totais mensais indisponíveis"

// SummaryText renders rep as a plain text block for terminals and logs.
func SummaryText(rep *analytics.Report) string {
	var sb strings.Builder

	s := rep.Summary
	fmt.Fprintf(&sb, "Notas: %d\n", rep.Records)
	fmt.Fprintf(&sb, "Entradas: %s (%d)\n", money.FormatBRL(s.TotalInflow), s.InflowCount)
	fmt.Fprintf(&sb, "Saídas:   %s (%d)\n", money.FormatBRL(s.TotalOutflow), s.OutflowCount)
	fmt.Fprintf(&sb, "Saldo:    %s\n", money.FormatBRL(s.NetBalance))

	if rep.MonthlyErr != nil {
		fmt.Fprintf(&sb, "\n%s: %v\n", monthlyUnavailable, rep.MonthlyErr)
	}

	if months := rep.Monthly.Months(); len(months) > 0 {
		sb.WriteString("\nPor mês:\n")

		for _, m := range months {
			totals := rep.Monthly[m]
			fmt.Fprintf(&sb, "  %s  entradas %s  saídas %s\n", m,
				money.FormatBRL(totals[invoice.KindInflow]),
				money.FormatBRL(totals[invoice.KindOutflow]))
		}
	}

	if ranked := rep.Suppliers.Ranked(); len(ranked) > 0 {
		sb.WriteString("\nPor fornecedor:\n")

		for _, sa := range ranked {
			fmt.Fprintf(&sb, "  %-32s %s\n", sa.Supplier, money.FormatBRL(sa.Amount))
		}
	}

	return sb.String()
}
