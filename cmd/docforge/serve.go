package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/docforge/internal/server"
	"github.com/jonathan/docforge/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP generation server",
		Long:  `Start an HTTP server exposing POST /generate, GET /catalog and GET /health.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Port = port
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Port:      a.cfg.Port,
				Engine:    engine,
				Logger:    a.logger,
				RateLimit: ratelimit.LoadConfig(),
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			// Graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	return cmd
}
