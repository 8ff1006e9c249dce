package command

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/notas/internal/entity"
)

func newRegisterCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "register TYPE NAME CNPJ",
		Short: "Register a store or supplier",
		Long: `Register a store or supplier by CNPJ.

TYPE is store (loja) or supplier (fornecedor). Punctuation in the CNPJ is
ignored, so 12.345.678/0001-99 and 12345678000199 are the same.`,
		Example: `  notas register fornecedor "Distribuidora Alimentos" 12.345.678/0001-99`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entity.ParseType(args[0])
			if err != nil {
				return err
			}

			e, err := rt.app.Entities.Register(cmd.Context(), t, args[1], args[2])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s %d: %s (%s)\n", e.Type, e.ID, e.Name, e.TaxID)

			return nil
		},
	}
}

func newEntitiesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:       "entities TYPE",
		Short:     "List registered stores or suppliers",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(entity.TypeStore), string(entity.TypeSupplier)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := entity.ParseType(args[0])
			if err != nil {
				return err
			}

			list, err := rt.app.Entities.List(cmd.Context(), t)
			if err != nil {
				return err
			}

			if len(list) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no %s registered\n", t)
				return nil
			}

			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "Nome", "CNPJ")

			for _, e := range list {
				tbl.Row(fmt.Sprint(e.ID), e.Name, e.TaxID)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tbl.String())

			return nil
		},
	}
}
