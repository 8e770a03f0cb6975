package commands

import (
	"github.com/spf13/cobra"

	database "mindsprint_backend/internals/databases"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the assignments table (postgres) or its indexes (mongo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			m, ok := rt.backend.(database.Migrator)
			if !ok {
				rt.log.WithField("driver", rt.cfg.StoreDriver).Info("nothing to migrate")
				return nil
			}
			if err := m.Migrate(ctx); err != nil {
				return err
			}
			rt.log.WithField("driver", rt.cfg.StoreDriver).Info("migration done")
			return nil
		},
	}
}
