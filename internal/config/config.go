// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package config

import (
	"net"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/staywise/internal/cache"
	"github.com/tomtom215/staywise/internal/llm"
	"github.com/tomtom215/staywise/internal/logging"
	"github.com/tomtom215/staywise/internal/recommend"
	"github.com/tomtom215/staywise/internal/recommend/themes"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example - access configuration values:
//
//	srv := http.Server{Addr: cfg.Server.Addr()}
//	client, err := llm.New(cfg.GenerationConfig())
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Inference InferenceConfig `koanf:"inference"`
	LLM       LLMConfig       `koanf:"llm"`
	Advisor   AdvisorConfig   `koanf:"advisor"`
	Cache     CacheConfig     `koanf:"cache"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging or production
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`

	// EventLog is an optional JSON file that also receives supervisor events.
	EventLog string `koanf:"event_log"`
}

// CatalogConfig locates the venue document.
type CatalogConfig struct {
	Path  string `koanf:"path"`
	Watch bool   `koanf:"watch"`

	// WatchDebounce coalesces bursts of file events into one reload.
	WatchDebounce time.Duration `koanf:"watch_debounce"`
}

// InferenceConfig is the similarity and voting policy.
type InferenceConfig struct {
	MinMentions int `koanf:"min_mentions"`

	// Vocabulary overrides theme keywords. Known themes keep their position;
	// new themes are appended in name order.
	Vocabulary map[string][]string `koanf:"vocabulary"`

	WeightStarRating float64 `koanf:"weight_star_rating"`
	WeightPriceRange float64 `koanf:"weight_price_range"`
	WeightAmenities  float64 `koanf:"weight_amenities"`
	WeightThemes     float64 `koanf:"weight_themes"`
	MaxStarRating    float64 `koanf:"max_star_rating"`

	RadiusKm      float64 `koanf:"radius_km"`
	MinSimilarity float64 `koanf:"min_similarity"`
	MaxNeighbors  int     `koanf:"max_neighbors"`
	MinConfidence float64 `koanf:"min_confidence"`

	Workers       int  `koanf:"workers"` // 0 = runtime.GOMAXPROCS
	MemoizeThemes bool `koanf:"memoize_themes"`

	// AuditInterval is the period of the background completion audit.
	// Zero disables the audit.
	AuditInterval time.Duration `koanf:"audit_interval"`
}

// LLMConfig holds the text generation endpoint settings.
type LLMConfig struct {
	Provider          string        `koanf:"provider"`
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Model             string        `koanf:"model"`
	MaxTokens         int           `koanf:"max_tokens"`
	Temperature       float64       `koanf:"temperature"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries"`
	RetryBackoff      time.Duration `koanf:"retry_backoff"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`
}

// AdvisorConfig holds recommendation settings.
type AdvisorConfig struct {
	OfflineFallback    bool          `koanf:"offline_fallback"`
	CacheTTL           time.Duration `koanf:"cache_ttl"`
	MaxRecommendations int           `koanf:"max_recommendations"`
}

// CacheConfig selects the advice cache backend.
type CacheConfig struct {
	Backend       string `koanf:"backend"` // memory or redis
	MaxEntries    int    `koanf:"max_entries"`
	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
	KeyPrefix     string `koanf:"key_prefix"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// LogConfig converts the logging section.
func (c *Config) LogConfig() logging.Config {
	return logging.Config{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		Caller:    c.Logging.Caller,
		Timestamp: true,
	}
}

// GenerationConfig converts the llm section.
func (c *Config) GenerationConfig() llm.Config {
	return llm.Config{
		Provider:          c.LLM.Provider,
		BaseURL:           c.LLM.BaseURL,
		APIKey:            c.LLM.APIKey,
		Model:             c.LLM.Model,
		MaxTokens:         c.LLM.MaxTokens,
		Temperature:       float32(c.LLM.Temperature),
		Timeout:           c.LLM.Timeout,
		MaxRetries:        c.LLM.MaxRetries,
		RetryBackoff:      c.LLM.RetryBackoff,
		RequestsPerSecond: c.LLM.RequestsPerSecond,
		Burst:             c.LLM.Burst,
	}
}

// StoreConfig converts the cache section.
func (c *Config) StoreConfig() cache.Config {
	return cache.Config{
		Backend:       c.Cache.Backend,
		MaxEntries:    c.Cache.MaxEntries,
		RedisAddr:     c.Cache.RedisAddr,
		RedisPassword: c.Cache.RedisPassword,
		RedisDB:       c.Cache.RedisDB,
		KeyPrefix:     c.Cache.KeyPrefix,
	}
}

// Policy builds the engine policy from the inference and advisor sections.
// The result is validated.
func (c *Config) Policy() (*recommend.Config, error) {
	in := c.Inference
	rc := recommend.DefaultConfig()
	rc.Themes.MinMentions = in.MinMentions
	rc.Themes.Vocabulary = mergeVocabulary(themes.DefaultVocabulary(), in.Vocabulary)
	rc.Weights = recommend.WeightConfig{
		StarRating: in.WeightStarRating,
		PriceRange: in.WeightPriceRange,
		Amenities:  in.WeightAmenities,
		Themes:     in.WeightThemes,
	}
	rc.MaxStarRating = in.MaxStarRating
	rc.Neighbors = recommend.NeighborConfig{
		RadiusKm:      in.RadiusKm,
		MinSimilarity: in.MinSimilarity,
		MaxNeighbors:  in.MaxNeighbors,
	}
	rc.Inference.MinConfidence = in.MinConfidence
	rc.Pipeline = recommend.PipelineConfig{
		Workers:       in.Workers,
		MemoizeThemes: in.MemoizeThemes,
	}
	rc.Advisor = recommend.AdvisorConfig{
		OfflineFallback:    c.Advisor.OfflineFallback,
		CacheTTL:           c.Advisor.CacheTTL,
		MaxRecommendations: c.Advisor.MaxRecommendations,
	}

	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return rc, nil
}

// mergeVocabulary applies keyword overrides to base. It returns nil when
// there is nothing to override so the engine keeps its built-in table.
func mergeVocabulary(base []themes.Theme, overrides map[string][]string) []themes.Theme {
	if len(overrides) == 0 {
		return nil
	}

	out := make([]themes.Theme, 0, len(base)+len(overrides))
	known := make(map[string]bool, len(base))
	for _, t := range base {
		known[t.Name] = true
		if kws, ok := overrides[t.Name]; ok {
			t.Keywords = append([]string(nil), kws...)
		}
		out = append(out, t)
	}

	var added []string
	for name := range overrides {
		if !known[name] {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	for _, name := range added {
		out = append(out, themes.Theme{Name: name, Keywords: append([]string(nil), overrides[name]...)})
	}
	return out
}
