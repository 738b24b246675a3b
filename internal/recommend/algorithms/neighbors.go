// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package algorithms

import (
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/staywise/internal/geo"
	"github.com/tomtom215/staywise/internal/models"
)

// FinderConfig contains configuration for neighbor selection.
type FinderConfig struct {
	// RadiusKm is the exclusive distance limit.
	RadiusKm float64

	// MinSimilarity is the exclusive similarity floor.
	MinSimilarity float64

	// MaxNeighbors caps the neighbor set size.
	MaxNeighbors int
}

// DefaultFinderConfig returns the default neighbor selection policy.
func DefaultFinderConfig() FinderConfig {
	return FinderConfig{
		RadiusKm:      100,
		MinSimilarity: 0.3,
		MaxNeighbors:  3,
	}
}

// Neighbor is a venue selected as similar to a target.
type Neighbor struct {
	Venue      *models.Venue
	DistanceKm float64
	Similarity float64
}

// MarshalJSON renders the neighbor by reference rather than embedding the
// whole venue.
func (n Neighbor) MarshalJSON() ([]byte, error) {
	var id, name string
	if n.Venue != nil {
		id, name = n.Venue.ID, n.Venue.Name
	}
	return json.Marshal(struct {
		VenueID    string  `json:"venue_id"`
		Name       string  `json:"name"`
		DistanceKm float64 `json:"distance_km"`
		Similarity float64 `json:"similarity"`
	}{id, name, n.DistanceKm, n.Similarity})
}

// Finder selects the most similar nearby venues for a target.
type Finder struct {
	cfg    FinderConfig
	scorer *Scorer
}

// NewFinder creates a finder that scores candidates with scorer.
func NewFinder(cfg FinderConfig, scorer *Scorer) *Finder {
	if scorer == nil {
		scorer = NewScorer(DefaultScorerConfig(), nil)
	}
	return &Finder{cfg: cfg, scorer: scorer}
}

// WithScorer returns a copy of the finder that scores with scorer.
func (f *Finder) WithScorer(scorer *Scorer) *Finder {
	clone := *f
	clone.scorer = scorer
	return &clone
}

// Config returns the finder's policy.
func (f *Finder) Config() FinderConfig {
	return f.cfg
}

// Find returns target's neighbor set drawn from candidates.
//
// Candidates sharing the target's id are skipped. The rest are kept when
// closer than RadiusKm and more similar than MinSimilarity, sorted by
// similarity descending with candidate order breaking ties. The result is
// never nil.
func (f *Finder) Find(target *models.Venue, candidates []*models.Venue) []Neighbor {
	out := make([]Neighbor, 0)
	if target == nil || f.cfg.MaxNeighbors <= 0 {
		return out
	}

	for _, c := range candidates {
		if c == nil || c.ID == target.ID {
			continue
		}

		d := geo.Between(target.Coordinates, c.Coordinates)
		if !(d < f.cfg.RadiusKm) {
			continue
		}

		sim := f.scorer.Similarity(target, c)
		if sim > f.cfg.MinSimilarity {
			out = append(out, Neighbor{Venue: c, DistanceKm: d, Similarity: sim})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})

	if len(out) > f.cfg.MaxNeighbors {
		out = out[:f.cfg.MaxNeighbors]
	}
	return out
}
