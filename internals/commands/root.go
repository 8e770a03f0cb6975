// Package commands is the mindsprint CLI.
package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCommand serves HTTP when no subcommand is given.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	root := &cobra.Command{
		Use:           "mindsprint",
		Short:         "MindSprint homework backend",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          serve.RunE,
	}

	root.AddCommand(
		serve,
		NewMigrateCommand(),
		NewSeedCommand(),
		NewTokenCommand(),
	)
	return root
}

// Execute runs the CLI until SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
