// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"fmt"
	"math"
	"time"

	"github.com/tomtom215/staywise/internal/recommend/algorithms"
	"github.com/tomtom215/staywise/internal/recommend/themes"
)

// Config is the scoring policy of an Engine.
type Config struct {
	// Themes controls review theme extraction.
	Themes ThemeConfig `json:"themes"`

	// Weights caps each similarity term. They must sum to at most 1.
	Weights WeightConfig `json:"weights"`

	// MaxStarRating is the rating span the star term is normalized by.
	MaxStarRating float64 `json:"max_star_rating"`

	// Neighbors controls neighbor selection.
	Neighbors NeighborConfig `json:"neighbors"`

	// Inference controls feature voting.
	Inference InferenceConfig `json:"inference"`

	// Pipeline controls the completion run.
	Pipeline PipelineConfig `json:"pipeline"`

	// Advisor controls recommendation generation.
	Advisor AdvisorConfig `json:"advisor"`
}

// ThemeConfig contains theme extraction parameters.
type ThemeConfig struct {
	// MinMentions is the number of distinct reviews that must mention a
	// theme.
	MinMentions int `json:"min_mentions"`

	// Vocabulary replaces the built-in vocabulary when non-empty.
	Vocabulary []themes.Theme `json:"vocabulary,omitempty"`
}

// WeightConfig holds the maximum contribution of each similarity term.
type WeightConfig struct {
	StarRating float64 `json:"star_rating"`
	PriceRange float64 `json:"price_range"`
	Amenities  float64 `json:"amenities"`
	Themes     float64 `json:"themes"`
}

// Sum returns the total of all weights.
func (w WeightConfig) Sum() float64 {
	return w.StarRating + w.PriceRange + w.Amenities + w.Themes
}

// NeighborConfig contains neighbor selection parameters.
type NeighborConfig struct {
	// RadiusKm is the exclusive distance limit.
	RadiusKm float64 `json:"radius_km"`

	// MinSimilarity is the exclusive similarity floor.
	MinSimilarity float64 `json:"min_similarity"`

	// MaxNeighbors caps each neighbor set.
	MaxNeighbors int `json:"max_neighbors"`
}

// InferenceConfig contains feature voting parameters.
type InferenceConfig struct {
	// MinConfidence is the exclusive share of neighbor weight needed.
	MinConfidence float64 `json:"min_confidence"`
}

// PipelineConfig contains completion run parameters.
type PipelineConfig struct {
	// Workers bounds the venues processed concurrently. Zero means
	// GOMAXPROCS.
	Workers int `json:"workers"`

	// MemoizeThemes caches theme sets for the duration of one run.
	MemoizeThemes bool `json:"memoize_themes"`
}

// AdvisorConfig contains recommendation generation parameters.
type AdvisorConfig struct {
	// OfflineFallback answers with the offline composer when generation
	// fails.
	OfflineFallback bool `json:"offline_fallback"`

	// CacheTTL is how long generated text is cached. Zero disables caching.
	CacheTTL time.Duration `json:"cache_ttl"`

	// MaxRecommendations caps the venues the offline composer lists.
	MaxRecommendations int `json:"max_recommendations"`
}

// DefaultConfig returns the built-in policy.
func DefaultConfig() *Config {
	return &Config{
		Themes: ThemeConfig{
			MinMentions: themes.DefaultMinMentions,
		},
		Weights: WeightConfig{
			StarRating: 0.3,
			PriceRange: 0.2,
			Amenities:  0.3,
			Themes:     0.2,
		},
		MaxStarRating: 5,
		Neighbors: NeighborConfig{
			RadiusKm:      100,
			MinSimilarity: 0.3,
			MaxNeighbors:  3,
		},
		Inference: InferenceConfig{
			MinConfidence: 0.5,
		},
		Pipeline: PipelineConfig{
			Workers:       0,
			MemoizeThemes: true,
		},
		Advisor: AdvisorConfig{
			OfflineFallback:    true,
			CacheTTL:           10 * time.Minute,
			MaxRecommendations: 3,
		},
	}
}

// weightSlack absorbs float error when weights are written as decimals.
const weightSlack = 1e-9

// Validate checks the policy. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Themes.MinMentions < 1 {
		return fmt.Errorf("%w: themes.min_mentions must be positive, got %d", ErrInvalidConfig, c.Themes.MinMentions)
	}
	if len(c.Themes.Vocabulary) > 0 {
		if _, err := themes.NewExtractor(c.Themes.Vocabulary, c.Themes.MinMentions); err != nil {
			return fmt.Errorf("%w: themes.vocabulary: %w", ErrInvalidConfig, err)
		}
	}

	for name, w := range map[string]float64{
		"star_rating": c.Weights.StarRating,
		"price_range": c.Weights.PriceRange,
		"amenities":   c.Weights.Amenities,
		"themes":      c.Weights.Themes,
	} {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: weights.%s must be non-negative, got %f", ErrInvalidConfig, name, w)
		}
	}
	if sum := c.Weights.Sum(); sum > 1+weightSlack {
		return fmt.Errorf("%w: weights must sum to at most 1, got %f", ErrInvalidConfig, sum)
	}
	if !(c.MaxStarRating > 0) {
		return fmt.Errorf("%w: max_star_rating must be positive, got %f", ErrInvalidConfig, c.MaxStarRating)
	}

	if !(c.Neighbors.RadiusKm > 0) || math.IsInf(c.Neighbors.RadiusKm, 1) {
		return fmt.Errorf("%w: neighbors.radius_km must be positive and finite, got %f", ErrInvalidConfig, c.Neighbors.RadiusKm)
	}
	if c.Neighbors.MinSimilarity < 0 || !(c.Neighbors.MinSimilarity < 1) {
		return fmt.Errorf("%w: neighbors.min_similarity must be in [0, 1), got %f", ErrInvalidConfig, c.Neighbors.MinSimilarity)
	}
	if c.Neighbors.MaxNeighbors < 1 {
		return fmt.Errorf("%w: neighbors.max_neighbors must be positive, got %d", ErrInvalidConfig, c.Neighbors.MaxNeighbors)
	}

	if c.Inference.MinConfidence < 0 || !(c.Inference.MinConfidence < 1) {
		return fmt.Errorf("%w: inference.min_confidence must be in [0, 1), got %f", ErrInvalidConfig, c.Inference.MinConfidence)
	}

	if c.Pipeline.Workers < 0 {
		return fmt.Errorf("%w: pipeline.workers must be non-negative, got %d", ErrInvalidConfig, c.Pipeline.Workers)
	}
	if c.Advisor.CacheTTL < 0 {
		return fmt.Errorf("%w: advisor.cache_ttl must be non-negative, got %v", ErrInvalidConfig, c.Advisor.CacheTTL)
	}
	if c.Advisor.MaxRecommendations < 1 {
		return fmt.Errorf("%w: advisor.max_recommendations must be positive, got %d", ErrInvalidConfig, c.Advisor.MaxRecommendations)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Themes.Vocabulary = themes.CloneVocabulary(c.Themes.Vocabulary)
	return &clone
}

// vocabulary returns the effective theme vocabulary.
func (c *Config) vocabulary() []themes.Theme {
	if len(c.Themes.Vocabulary) > 0 {
		return c.Themes.Vocabulary
	}
	return themes.DefaultVocabulary()
}

func (c *Config) scorerConfig() algorithms.ScorerConfig {
	return algorithms.ScorerConfig{
		StarWeight:    c.Weights.StarRating,
		PriceWeight:   c.Weights.PriceRange,
		AmenityWeight: c.Weights.Amenities,
		ThemeWeight:   c.Weights.Themes,
		MaxStarRating: c.MaxStarRating,
	}
}

func (c *Config) finderConfig() algorithms.FinderConfig {
	return algorithms.FinderConfig{
		RadiusKm:      c.Neighbors.RadiusKm,
		MinSimilarity: c.Neighbors.MinSimilarity,
		MaxNeighbors:  c.Neighbors.MaxNeighbors,
	}
}

func (c *Config) infererConfig() algorithms.InfererConfig {
	return algorithms.InfererConfig{MinConfidence: c.Inference.MinConfidence}
}
