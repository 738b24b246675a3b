// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/staywise/internal/llm"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/staywise/config.yaml",
	"/etc/staywise/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	gen := llm.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8088,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			Path:          "hotel_data.json",
			Watch:         true,
			WatchDebounce: 500 * time.Millisecond,
		},
		Inference: InferenceConfig{
			MinMentions:      3,
			WeightStarRating: 0.3,
			WeightPriceRange: 0.2,
			WeightAmenities:  0.3,
			WeightThemes:     0.2,
			MaxStarRating:    5,
			RadiusKm:         100,
			MinSimilarity:    0.3,
			MaxNeighbors:     3,
			MinConfidence:    0.5,
			Workers:          0,
			MemoizeThemes:    true,
			AuditInterval:    15 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:          gen.Provider,
			BaseURL:           gen.BaseURL,
			APIKey:            "",
			Model:             gen.Model,
			MaxTokens:         gen.MaxTokens,
			Temperature:       float64(gen.Temperature),
			Timeout:           gen.Timeout,
			MaxRetries:        gen.MaxRetries,
			RetryBackoff:      gen.RetryBackoff,
			RequestsPerSecond: gen.RequestsPerSecond,
			Burst:             gen.Burst,
		},
		Advisor: AdvisorConfig{
			OfflineFallback:    true,
			CacheTTL:           10 * time.Minute,
			MaxRecommendations: 3,
		},
		Cache: CacheConfig{
			Backend:    "memory",
			MaxEntries: 1000,
			RedisAddr:  "localhost:6379",
			KeyPrefix:  "staywise:",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// Default returns the built-in configuration without consulting files or
// the environment.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
//
// Precedence is ENV > File > Defaults. The result is validated.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// HTTP_PORT -> server.port, DEEPSEEK_API_KEY -> llm.api_key
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server mappings
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging mappings
	"log_level":     "logging.level",
	"log_format":    "logging.format",
	"log_caller":    "logging.caller",
	"log_event_log": "logging.event_log",

	// Catalog mappings
	"catalog_path":           "catalog.path",
	"catalog_watch":          "catalog.watch",
	"catalog_watch_debounce": "catalog.watch_debounce",

	// Inference policy mappings
	"inference_min_mentions":       "inference.min_mentions",
	"inference_weight_star_rating": "inference.weight_star_rating",
	"inference_weight_price_range": "inference.weight_price_range",
	"inference_weight_amenities":   "inference.weight_amenities",
	"inference_weight_themes":      "inference.weight_themes",
	"inference_max_star_rating":    "inference.max_star_rating",
	"inference_radius_km":          "inference.radius_km",
	"inference_min_similarity":     "inference.min_similarity",
	"inference_max_neighbors":      "inference.max_neighbors",
	"inference_min_confidence":     "inference.min_confidence",
	"inference_workers":            "inference.workers",
	"inference_memoize_themes":     "inference.memoize_themes",
	"inference_audit_interval":     "inference.audit_interval",

	// Text generation mappings
	"llm_provider":            "llm.provider",
	"llm_base_url":            "llm.base_url",
	"deepseek_api_key":        "llm.api_key",
	"llm_api_key":             "llm.api_key",
	"llm_model":               "llm.model",
	"llm_max_tokens":          "llm.max_tokens",
	"llm_temperature":         "llm.temperature",
	"llm_timeout":             "llm.timeout",
	"llm_max_retries":         "llm.max_retries",
	"llm_retry_backoff":       "llm.retry_backoff",
	"llm_requests_per_second": "llm.requests_per_second",
	"llm_burst":               "llm.burst",

	// Advisor mappings
	"advisor_offline_fallback":    "advisor.offline_fallback",
	"advisor_cache_ttl":           "advisor.cache_ttl",
	"advisor_max_recommendations": "advisor.max_recommendations",

	// Cache mappings
	"cache_backend":     "cache.backend",
	"cache_max_entries": "cache.max_entries",
	"cache_key_prefix":  "cache.key_prefix",
	"redis_addr":        "cache.redis_addr",
	"redis_password":    "cache.redis_password",
	"redis_db":          "cache.redis_db",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped keys return an empty string and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - DEEPSEEK_API_KEY -> llm.api_key
//   - INFERENCE_RADIUS_KM -> inference.radius_km
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// WatchFile calls callback whenever the file at path changes. The callback
// receives the watcher error, if any. The returned function stops watching.
func WatchFile(path string, callback func(error)) (stop func() error, err error) {
	provider := file.Provider(path)
	if err := provider.Watch(func(_ interface{}, err error) {
		callback(err)
	}); err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return provider.Unwatch, nil
}
