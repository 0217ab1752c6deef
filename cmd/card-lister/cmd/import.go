package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goosebones/pokemon/internal/config"
	"github.com/goosebones/pokemon/internal/rows"
)

func importCmd() *cobra.Command {
	var sheet string

	cmd := &cobra.Command{
		Use:   "import <workbook.xlsx>",
		Short: "Load inventory rows from a workbook into the database",
		Long: "Upserts every data row of the workbook into the cards table, keyed by\n" +
			"sheet row number. A row already marked processed in the database stays\n" +
			"processed.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Rows.Backend != config.RowsBackendPostgres {
				return errors.New("import requires rows.backend: postgres")
			}

			x, err := rows.OpenXLSX(args[0], sheet, rows.WithXLSXLogger(a.log))
			if err != nil {
				return err
			}
			defer x.Close()

			imported, err := x.ImportRows(cmd.Context())
			if err != nil {
				return err
			}

			pg, err := a.postgres(cmd.Context())
			if err != nil {
				return err
			}
			if err := pg.Import(cmd.Context(), imported); err != nil {
				return err
			}

			a.log.Info("import complete", "workbook", args[0], "rows", len(imported))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows\n", len(imported))
			return err
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default: first sheet)")

	return cmd
}
