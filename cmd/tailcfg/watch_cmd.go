// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/ManuGH/tailcfg/internal/api"
	"github.com/ManuGH/tailcfg/internal/config"
	xglog "github.com/ManuGH/tailcfg/internal/log"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Hold the configuration, reload it on change and serve it over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, opts, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8089", "HTTP listen address")
	return cmd
}

func runWatch(ctx context.Context, opts *rootOptions, listen string) error {
	logger := xglog.WithComponent("watch")

	loader, cfg, err := opts.load()
	if err != nil {
		return err
	}
	holder := config.NewHolder(cfg, loader)
	if err := holder.StartWatcher(ctx); err != nil {
		return err
	}
	defer holder.Stop()

	srv, err := api.New(api.Config{
		ListenAddr: listen,
		Source:     holder,
		Logger:     xglog.WithComponent("api"),
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info().
		Str(xglog.FieldEvent, "watch.started").
		Str(xglog.FieldConfigPath, loader.Path()).
		Str(xglog.FieldFingerprint, holder.Fingerprint()).
		Msg("watching configuration")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Str(xglog.FieldEvent, "watch.stopped").Msg("watch stopped")
	return nil
}
