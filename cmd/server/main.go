// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/api"
	"github.com/tomtom215/staywise/internal/config"
	"github.com/tomtom215/staywise/internal/logging"
	"github.com/tomtom215/staywise/internal/metrics"
	"github.com/tomtom215/staywise/internal/supervisor"
	"github.com/tomtom215/staywise/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogConfig())
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("catalog", cfg.Catalog.Path).
		Msg("Starting Staywise")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	components, err := initEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing cache")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventLogger, closer, err := logging.NewEventLogger(cfg.Logging.EventLog)
	if err != nil {
		return err
	}
	defer closer.Close()

	tree, err := supervisor.NewSupervisorTree(eventLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	addDataServices(cfg, components, tree, logger)

	server := newHTTPServer(cfg, components, logger)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout,
		services.WithServerLogger(logger)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logger.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if n := tree.LogShutdownReport(); n > 0 {
		logger.Warn().Int("count", n).Msg("Services failed to stop within timeout")
	}
	logger.Info().Msg("Staywise stopped")
	return nil
}

//nolint:gocritic // zerolog.Logger is passed by value
func addDataServices(cfg *config.Config, c *EngineComponents, tree *supervisor.SupervisorTree, logger zerolog.Logger) {
	if cfg.Catalog.Watch {
		tree.AddDataService(services.NewCatalogWatchService(c.Engine, config.WatchFile, services.CatalogWatchConfig{
			Path:     cfg.Catalog.Path,
			Debounce: cfg.Catalog.WatchDebounce,
		}, logger))
	}
	if cfg.Inference.AuditInterval > 0 {
		tree.AddDataService(services.NewCompletionAuditService(c.Engine, services.CompletionAuditConfig{
			Interval:   cfg.Inference.AuditInterval,
			RunOnStart: true,
		}, logger))
	}
}

//nolint:gocritic // zerolog.Logger is passed by value
func newHTTPServer(cfg *config.Config, c *EngineComponents, logger zerolog.Logger) *http.Server {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled

	handler := api.NewHandler(c.Engine, api.WithVersion(version))
	router := api.NewRouter(handler, mw, logger)

	// WriteTimeout covers a full generation.
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + api.DefaultGenerationTimeout,
		IdleTimeout:       60 * time.Second,
	}
}
