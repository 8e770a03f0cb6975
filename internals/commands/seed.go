package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"mindsprint_backend/internals/features/homework/assignments/service"
	"mindsprint_backend/internals/seeds/homework"
)

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed [file]",
		Short: "Load sample homework, skipping entries already present",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			seeds, err := homework.Load(path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.close(ctx)

			n, err := homework.SeedHomework(ctx, service.New(rt.backend, rt.log), seeds, rt.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d assignment(s)\n", n)
			return nil
		},
	}
}
