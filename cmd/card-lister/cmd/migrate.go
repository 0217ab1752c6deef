package cmd

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/goosebones/pokemon/internal/config"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Rows.Backend != config.RowsBackendPostgres {
				return errors.New("migrate requires rows.backend: postgres")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
			defer cancel()

			pg, err := a.postgres(ctx)
			if err != nil {
				return err
			}

			a.log.Info("running migrations", "host", a.cfg.Rows.Database.Host)

			applied, err := pg.Migrate(ctx)
			if err != nil {
				return err
			}

			a.log.Info("migrations complete", "applied", applied)
			return nil
		},
	}
}
