// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geodatabr/geodatabr/internal/api"
	"github.com/geodatabr/geodatabr/internal/config"
	"github.com/geodatabr/geodatabr/internal/jobs"
	xlog "github.com/geodatabr/geodatabr/internal/log"
)

func runServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file (YAML)")
	listen := fs.String("listen", "", "bind address (overrides config)")
	_ = fs.Parse(args)

	cfg, err := config.NewLoader(*configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	configureLogging(cfg.LogLevel)
	logger := xlog.WithComponent("serve")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ds, err := jobs.Load(ctx, jobs.Config{
		Year:         cfg.Year,
		Source:       cfg.Source,
		DataDir:      cfg.DataDir,
		StrictCounts: cfg.StrictCounts,
	})
	if err != nil {
		logger.Error().Err(err).Str("event", "serve.load_failed").Msg("failed to load dataset")
		return 1
	}

	server := api.NewServer(ds,
		api.WithMinify(cfg.Minify),
		api.WithRateLimit(cfg.RateLimit),
	)
	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("event", "serve.start").
			Str("listen", cfg.Listen).
			Int("year", ds.Year).
			Msg("HTTP API listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Str("event", "serve.shutdown_error").Msg("graceful shutdown failed")
			return 1
		}
		logger.Info().Str("event", "serve.stopped").Msg("server stopped")
		return 0
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("event", "serve.failed").Msg("server terminated")
			return 1
		}
		return 0
	}
}
