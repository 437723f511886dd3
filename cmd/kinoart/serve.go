package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mmcdole/kinoart/internal/server"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve image info, placeholders and features over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, listen string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if listen == "" {
		listen = a.cfg.HTTP.Listen
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(a.svc, a.decoder, a.logger).ListenAndServe(ctx, listen)
}
