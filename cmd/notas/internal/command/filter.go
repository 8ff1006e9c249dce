package command

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/notas/internal/dates"
	"github.com/MrJamesThe3rd/notas/internal/invoice"
)

type filterFlags struct {
	start    string
	end      string
	supplier string
	limit    int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start", "", "first entry date (DD/MM/YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "last entry date (DD/MM/YYYY or YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.supplier, "supplier", "", "only this supplier")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "maximum number of invoices, newest first")
}

func (f *filterFlags) filter() (invoice.ListFilter, error) {
	out := invoice.ListFilter{Supplier: f.supplier, Limit: f.limit}

	for _, d := range []struct {
		in  string
		dst **time.Time
	}{
		{f.start, &out.StartDate},
		{f.end, &out.EndDate},
	} {
		if d.in == "" {
			continue
		}

		iso, err := dates.Parse(d.in)
		if err != nil {
			return invoice.ListFilter{}, err
		}

		t, err := time.Parse(time.DateOnly, iso)
		if err != nil {
			return invoice.ListFilter{}, err
		}

		*d.dst = new(t)
	}

	return out, nil
}

func (f *filterFlags) empty() bool {
	return f.start == "" && f.end == "" && f.supplier == "" && f.limit == 0
}
