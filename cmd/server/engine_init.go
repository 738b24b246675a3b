// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package main

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/cache"
	"github.com/tomtom215/staywise/internal/config"
	"github.com/tomtom215/staywise/internal/llm"
	"github.com/tomtom215/staywise/internal/recommend"
)

// EngineComponents holds the engine and the resources it owns.
type EngineComponents struct {
	Engine *recommend.Engine
	Store  cache.Store
}

// Close releases the cache store.
func (c *EngineComponents) Close() error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Close()
}

// initEngine builds the engine from cfg and loads the catalog. A missing API
// key leaves the engine offline. A Redis store that cannot be reached falls
// back to memory. A catalog that fails to load is fatal.
//
//nolint:gocritic // zerolog.Logger is passed by value
func initEngine(cfg *config.Config, logger zerolog.Logger) (*EngineComponents, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, fmt.Errorf("inference policy: %w", err)
	}

	opts := []recommend.Option{}

	client, err := llm.New(cfg.GenerationConfig())
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Info().Msg("No LLM API key configured, recommendations are composed offline")
	case err != nil:
		return nil, fmt.Errorf("text generation client: %w", err)
	default:
		opts = append(opts, recommend.WithGenerator(client))
		logger.Info().
			Str("provider", cfg.LLM.Provider).
			Str("model", client.Model()).
			Msg("Text generation enabled")
	}

	store, err := initStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	if store != nil {
		opts = append(opts, recommend.WithCache(store))
	}

	engine, err := recommend.NewEngine(policy, logger, opts...)
	if err != nil {
		closeStore(store, logger)
		return nil, fmt.Errorf("create engine: %w", err)
	}

	if err := engine.Reload(cfg.Catalog.Path); err != nil {
		closeStore(store, logger)
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return &EngineComponents{Engine: engine, Store: store}, nil
}

// initStore opens the advice cache. It returns nil when caching is off.
//
//nolint:gocritic // zerolog.Logger is passed by value
func initStore(cfg *config.Config, logger zerolog.Logger) (cache.Store, error) {
	if cfg.Advisor.CacheTTL <= 0 {
		logger.Info().Msg("Advice cache disabled (advisor.cache_ttl=0)")
		return nil, nil
	}

	store, err := cache.New(cfg.StoreConfig())
	switch {
	case errors.Is(err, cache.ErrUnknownBackend):
		return nil, err
	case err != nil:
		logger.Warn().Err(err).Str("backend", cfg.Cache.Backend).Msg("Cache backend unavailable, using memory")
		return cache.NewMemory(cfg.Cache.MaxEntries), nil
	}

	logger.Info().
		Str("backend", cfg.Cache.Backend).
		Dur("ttl", cfg.Advisor.CacheTTL).
		Msg("Advice cache ready")
	return store, nil
}

//nolint:gocritic // zerolog.Logger is passed by value
func closeStore(store cache.Store, logger zerolog.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn().Err(err).Msg("Error closing cache")
	}
}
