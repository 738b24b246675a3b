// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// CatalogReloader swaps in the catalog at path. recommend.Engine implements
// it and keeps its current catalog when the load fails.
type CatalogReloader interface {
	Reload(path string) error
}

// WatchFunc starts watching path and calls onChange for every change event.
// The returned stop function ends the watch. config.WatchFile matches it.
type WatchFunc func(path string, onChange func(error)) (stop func() error, err error)

// CatalogWatchConfig configures a CatalogWatchService.
type CatalogWatchConfig struct {
	// Path is the catalog file.
	Path string

	// Debounce is the quiet period after the last change event before a
	// reload. Default: 500ms
	Debounce time.Duration
}

// CatalogWatchService reloads the catalog when its file changes.
type CatalogWatchService struct {
	engine CatalogReloader
	watch  WatchFunc
	config CatalogWatchConfig
	logger zerolog.Logger
	name   string

	// reloaded receives the result of every reload; tests read it.
	reloaded chan error
}

// NewCatalogWatchService creates a watcher over cfg.Path.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewCatalogWatchService(engine CatalogReloader, watch WatchFunc, cfg CatalogWatchConfig, logger zerolog.Logger) *CatalogWatchService {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	return &CatalogWatchService{
		engine: engine,
		watch:  watch,
		config: cfg,
		logger: logger.With().Str("service", "catalog-watch").Str("path", cfg.Path).Logger(),
		name:   "catalog-watch",
	}
}

// Serve implements suture.Service. A watch that cannot start is returned as
// an error so the supervisor retries with backoff.
func (s *CatalogWatchService) Serve(ctx context.Context) error {
	// Events arrive on the watcher's goroutine; one pending signal is enough.
	changed := make(chan struct{}, 1)
	watchErrs := make(chan error, 1)

	stop, err := s.watch(s.config.Path, func(err error) {
		if err != nil {
			select {
			case watchErrs <- err:
			default:
			}
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("start catalog watch: %w", err)
	}
	defer func() {
		if err := stop(); err != nil {
			s.logger.Warn().Err(err).Msg("Catalog watch did not stop cleanly")
		}
	}()

	s.logger.Info().Dur("debounce", s.config.Debounce).Msg("Watching catalog")

	timer := time.NewTimer(s.config.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-watchErrs:
			return fmt.Errorf("catalog watch: %w", err)

		case <-changed:
			timer.Reset(s.config.Debounce)

		case <-timer.C:
			err := s.engine.Reload(s.config.Path)
			if err == nil {
				s.logger.Info().Msg("Catalog change applied")
			}
			if s.reloaded != nil {
				select {
				case s.reloaded <- err:
				default:
				}
			}
		}
	}
}

// String implements fmt.Stringer for suture events.
func (s *CatalogWatchService) String() string {
	return s.name
}
