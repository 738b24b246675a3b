// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/staywise/internal/cache"
)

// Validate checks that configuration values are present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateInference(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("HTTP_SHUTDOWN_TIMEOUT must be positive, got %s", c.Server.ShutdownTimeout)
	}
	switch strings.ToLower(c.Server.Environment) {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be one of development, staging, production, got %q", c.Server.Environment)
	}
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, disabled, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.Path) == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if c.Catalog.Watch && c.Catalog.WatchDebounce < 0 {
		return fmt.Errorf("CATALOG_WATCH_DEBOUNCE must not be negative, got %s", c.Catalog.WatchDebounce)
	}
	return nil
}

// validateInference checks the settings the engine policy does not cover.
// The policy itself is validated by recommend.Config.Validate via Policy.
func (c *Config) validateInference() error {
	if c.Inference.AuditInterval < 0 {
		return fmt.Errorf("INFERENCE_AUDIT_INTERVAL must not be negative, got %s", c.Inference.AuditInterval)
	}
	for name, kws := range c.Inference.Vocabulary {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("inference.vocabulary contains an empty theme name")
		}
		if len(kws) == 0 {
			return fmt.Errorf("inference.vocabulary theme %q has no keywords", name)
		}
	}
	if _, err := c.Policy(); err != nil {
		return fmt.Errorf("inference policy: %w", err)
	}
	return nil
}

func (c *Config) validateLLM() error {
	if err := validateHTTPURL(c.LLM.BaseURL, "LLM_BASE_URL"); err != nil {
		return err
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("LLM_MODEL is required")
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", c.LLM.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}
	if c.LLM.MaxRetries < 0 {
		return fmt.Errorf("LLM_MAX_RETRIES must not be negative, got %d", c.LLM.MaxRetries)
	}
	if c.LLM.RetryBackoff < 0 {
		return fmt.Errorf("LLM_RETRY_BACKOFF must not be negative, got %s", c.LLM.RetryBackoff)
	}
	if c.LLM.RequestsPerSecond > 0 && c.LLM.Burst < 1 {
		return fmt.Errorf("LLM_BURST must be positive when rate limiting is enabled, got %d", c.LLM.Burst)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch strings.ToLower(c.Cache.Backend) {
	case "", cache.BackendMemory:
		return nil
	case cache.BackendRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when CACHE_BACKEND=redis")
		}
		if c.Cache.RedisDB < 0 {
			return fmt.Errorf("REDIS_DB must not be negative, got %d", c.Cache.RedisDB)
		}
		return nil
	default:
		return fmt.Errorf("CACHE_BACKEND %q: %w", c.Cache.Backend, cache.ErrUnknownBackend)
	}
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
	}
	return nil
}

// validateHTTPURL checks that raw is an absolute http or https URL.
func validateHTTPURL(raw, name string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", name, raw)
	}
	return nil
}
