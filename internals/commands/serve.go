package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	database "mindsprint_backend/internals/databases"
	"mindsprint_backend/internals/features/homework/assignments/service"
	middlewares "mindsprint_backend/internals/middlewares"
	routes "mindsprint_backend/internals/route"
	"mindsprint_backend/internals/server"
)

const shutdownTimeout = 5 * time.Second

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var accessLog bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), accessLog)
		},
	}

	cmd.Flags().BoolVar(&accessLog, "access-log", false, "write a fiber access log to stdout")
	return cmd
}

func runServe(ctx context.Context, accessLog bool) error {
	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer rt.close(context.Background())

	provider, err := newProvider(rt.cfg.Auth)
	if err != nil {
		return err
	}
	database.WarmUp(rt.backend.Ping, rt.log)

	opts := server.Options{
		Middleware: middlewares.Options{
			CORSOrigins:  rt.cfg.HTTP.CORSOrigins,
			RateLimitMax: rt.cfg.HTTP.RateLimitMax,
		},
		TrustedProxies: rt.cfg.HTTP.TrustedProxies,
	}
	if accessLog {
		opts.Middleware.AccessLog = os.Stdout
	}
	app := server.New(opts, routes.Deps{
		Environment: rt.cfg.Environment,
		Store:       rt.backend,
		Provider:    provider,
		Homework:    service.New(rt.backend, rt.log),
		Log:         rt.log,
	})

	errCh := make(chan error, 1)
	go func() {
		rt.log.WithField("port", rt.cfg.Port).Info("listening")
		errCh <- app.Listen("0.0.0.0:" + rt.cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
