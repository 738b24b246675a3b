// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package algorithms

import (
	"math"

	"github.com/tomtom215/staywise/internal/models"
	"github.com/tomtom215/staywise/internal/recommend/themes"
)

// ThemeSource supplies a venue's review themes.
type ThemeSource interface {
	Themes(v *models.Venue) []string
}

// ScorerConfig contains the similarity term weights.
type ScorerConfig struct {
	// StarWeight scales star-rating proximity.
	StarWeight float64

	// PriceWeight is awarded when price labels match.
	PriceWeight float64

	// AmenityWeight scales amenity-set Jaccard overlap.
	AmenityWeight float64

	// ThemeWeight scales review-theme Jaccard overlap.
	ThemeWeight float64

	// MaxStarRating is the rating-difference divisor.
	MaxStarRating float64
}

// DefaultScorerConfig returns the default similarity weights.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		StarWeight:    0.3,
		PriceWeight:   0.2,
		AmenityWeight: 0.3,
		ThemeWeight:   0.2,
		MaxStarRating: 5,
	}
}

// Breakdown is a similarity score split into its terms.
type Breakdown struct {
	StarRating float64 `json:"star_rating"`
	PriceRange float64 `json:"price_range"`
	Amenities  float64 `json:"amenities"`
	Themes     float64 `json:"themes"`
	Total      float64 `json:"total"`
}

// Scorer computes pairwise venue similarity.
type Scorer struct {
	cfg    ScorerConfig
	themes ThemeSource
}

// NewScorer creates a scorer. A nil source extracts themes with the default
// vocabulary on every call.
func NewScorer(cfg ScorerConfig, source ThemeSource) *Scorer {
	if cfg.MaxStarRating <= 0 {
		cfg.MaxStarRating = 5
	}
	if source == nil {
		source = themes.NewDefaultExtractor()
	}
	return &Scorer{cfg: cfg, themes: source}
}

// WithThemes returns a copy of the scorer that reads themes from source.
func (s *Scorer) WithThemes(source ThemeSource) *Scorer {
	clone := *s
	if source != nil {
		clone.themes = source
	}
	return &clone
}

// Config returns the scorer's weights.
func (s *Scorer) Config() ScorerConfig {
	return s.cfg
}

// Similarity returns the similarity of a and b.
func (s *Scorer) Similarity(a, b *models.Venue) float64 {
	return s.Breakdown(a, b).Total
}

// Breakdown returns the similarity of a and b term by term.
func (s *Scorer) Breakdown(a, b *models.Venue) Breakdown {
	var bd Breakdown
	if a == nil || b == nil {
		return bd
	}

	ra, rb := a.Tags.StarRating, b.Tags.StarRating
	if ra != 0 && rb != 0 {
		term := s.cfg.StarWeight * (1 - math.Abs(ra-rb)/s.cfg.MaxStarRating)
		bd.StarRating = clamp(term, 0, s.cfg.StarWeight)
	}

	if pa := a.Tags.PriceRange; pa != "" && pa == b.Tags.PriceRange {
		bd.PriceRange = s.cfg.PriceWeight
	}

	if len(a.Tags.Amenities) > 0 && len(b.Tags.Amenities) > 0 {
		bd.Amenities = s.cfg.AmenityWeight * jaccard(a.Tags.Amenities, b.Tags.Amenities)
	}

	// Theme extraction is the only non-trivial term; skip it when it cannot
	// contribute.
	if s.cfg.ThemeWeight != 0 {
		ta, tb := s.themes.Themes(a), s.themes.Themes(b)
		if len(ta) > 0 && len(tb) > 0 {
			bd.Themes = s.cfg.ThemeWeight * jaccard(ta, tb)
		}
	}

	bd.Total = bd.StarRating + bd.PriceRange + bd.Amenities + bd.Themes
	return bd
}

// jaccard computes |A ∩ B| / |A ∪ B| over the distinct members of a and b.
// An empty union yields 0.
func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[s] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[s] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, v))
}
