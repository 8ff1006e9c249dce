package command

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/notas/internal/analytics"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
	"github.com/MrJamesThe3rd/notas/internal/money"
	"github.com/MrJamesThe3rd/notas/internal/report"
)

func newSummaryCmd(rt *runtime) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show inflow, outflow and balance, with monthly and supplier totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := ff.filter()
			if err != nil {
				return err
			}

			rep, err := rt.app.Analytics.Report(cmd.Context(), filter)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.SummaryText(rep))

			return nil
		},
	}

	ff.register(cmd)

	return cmd
}

func newMonthlyCmd(rt *runtime) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Show totals per month and kind",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				monthly analytics.MonthlyTotals
				err     error
			)

			if ff.empty() {
				monthly, err = rt.app.Analytics.Monthly(cmd.Context())
			} else {
				monthly, err = filteredMonthly(cmd, rt, &ff)
			}

			if err != nil {
				return err
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Mês", "Entradas", "Saídas")

			for _, m := range monthly.Months() {
				totals := monthly[m]
				t.Row(m, money.FormatBRL(totals[invoice.KindInflow]), money.FormatBRL(totals[invoice.KindOutflow]))
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			return nil
		},
	}

	ff.register(cmd)

	return cmd
}

func filteredMonthly(cmd *cobra.Command, rt *runtime, ff *filterFlags) (analytics.MonthlyTotals, error) {
	filter, err := ff.filter()
	if err != nil {
		return nil, err
	}

	rep, err := rt.app.Analytics.Report(cmd.Context(), filter)
	if err != nil {
		return nil, err
	}

	return rep.Monthly, rep.MonthlyErr
}

func newSuppliersCmd(rt *runtime) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "suppliers",
		Short: "Show the total per supplier, inflow and outflow alike",
		RunE: func(cmd *cobra.Command, _ []string) error {
			totals, err := rt.app.Analytics.BySupplier(cmd.Context())
			if err != nil {
				return err
			}

			ranked := totals.Ranked()
			if top > 0 && len(ranked) > top {
				ranked = ranked[:top]
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("Fornecedor", "Total")

			for _, s := range ranked {
				t.Row(s.Supplier, money.FormatBRL(s.Amount))
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.String())

			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 0, "show only the N largest suppliers")

	return cmd
}

func newExportCmd(rt *runtime) *cobra.Command {
	var (
		ff     filterFlags
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export invoices as CSV or XLSX",
		Example: `  notas export --format csv > notas.csv
  notas export --format xlsx --output notas.xlsx --start 01/01/2024 --end 31/12/2024`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			filter, err := ff.filter()
			if err != nil {
				return err
			}

			if output == "" {
				if f == report.FormatXLSX {
					return errNoOutput
				}

				return rt.app.Reports.Export(cmd.Context(), filter, f, cmd.OutOrStdout())
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}

			if err := rt.app.Reports.Export(cmd.Context(), filter, f, file); err != nil {
				file.Close()
				os.Remove(output)

				return err
			}

			if err := file.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)

			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout, csv only)")

	return cmd
}
