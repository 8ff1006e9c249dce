package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/importer"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/money"
)

func newImportCmd(rt *runtime) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE...",
		Short: "Import NF-e XML files",
		Long: `Read each NF-e XML file and record it as an inflow invoice.

Supplier and store names are replaced by the registered ones when their CNPJ
is known. A file that fails is reported and the rest are still imported.`,
		Example: `  notas import nfe/*.xml
  notas import --dry-run 35240312345678000199550010000005671000005678.xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, path := range args {
				if err := importFile(cmd, rt, path, dryRun); err != nil {
					failed++

					fmt.Fprintf(out, "FAIL %s: %v\n", filepath.Base(path), err)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and show the files without saving")

	return cmd
}

func importFile(cmd *cobra.Command, rt *runtime, path string, dryRun bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	out := cmd.OutOrStdout()
	name := filepath.Base(path)

	if dryRun {
		p, err := rt.app.Importer.Preview(cmd.Context(), importer.FormatNFe, f)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "ok   %s: NF-e %s, %s, %s em %s\n",
			name, p.InvoiceNumber, p.SupplierName, money.FormatBRL(p.Amount), dates.FormatBR(p.EntryDate))

		return nil
	}

	rec, err := rt.app.Importer.Import(cmd.Context(), importer.FormatNFe, f)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "ok   %s: nota %d, %s, %s\n", name, rec.ID, rec.SupplierName, money.FormatBRL(rec.Amount.Decimal))

	return nil
}

func newListCmd(rt *runtime) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			records, err := rt.app.Invoices.List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			writeRecords(cmd.OutOrStdout(), records)

			return nil
		},
	}

	ff.register(cmd)

	return cmd
}

func writeRecords(w io.Writer, records []*invoice.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no invoices")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Data", "Fornecedor", "Loja", "NF-e", "Valor", "Tipo")

	for _, r := range records {
		amount := "-"
		if r.Amount.Valid {
			amount = money.FormatBRL(r.Amount.Decimal)
		}

		t.Row(
			fmt.Sprint(r.ID),
			dates.FormatBR(r.EntryDate),
			r.SupplierName,
			r.StoreName,
			r.InvoiceNumber,
			amount,
			string(r.KindOrDefault()),
		)
	}

	fmt.Fprintln(w, t.String())
}

func newFixDatesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "fix-dates",
		Short: "Rewrite entry dates stored as DD-MM-YYYY to YYYY-MM-DD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := rt.app.NormalizeDates(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d entry dates rewritten\n", n)

			return nil
		},
	}
}

var errNoOutput = errors.New("--output is required for xlsx")
