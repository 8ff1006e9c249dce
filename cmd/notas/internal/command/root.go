// Package command holds the notas command line.
package command

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/notas/internal/app"
	"github.com/MrJamesThe3rd/notas/internal/config"
	"github.com/MrJamesThe3rd/notas/internal/logging"
)

// runtime is filled in by the root command before any subcommand runs.
type runtime struct {
	cfg *config.Config
	app *app.App
}

func NewRoot() *cobra.Command {
	rt := &runtime{}

	var dbPath string

	root := &cobra.Command{
		Use:           "notas",
		Short:         "Invoice bookkeeping for small stores",
		Long:          "Register stores and suppliers, record invoices by hand or from NF-e XML, and see totals.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if dbPath != "" {
				cfg.DB.Path = dbPath
			}

			logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}

			slog.SetDefault(logger)

			a, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("opening %s: %w", cfg.DB.Path, err)
			}

			rt.cfg, rt.app = cfg, a

			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if rt.app == nil {
				return nil
			}

			return rt.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides DB_PATH)")

	root.AddCommand(
		newImportCmd(rt),
		newListCmd(rt),
		newSummaryCmd(rt),
		newMonthlyCmd(rt),
		newSuppliersCmd(rt),
		newExportCmd(rt),
		newFixDatesCmd(rt),
		newRegisterCmd(rt),
		newEntitiesCmd(rt),
	)

	return root
}
