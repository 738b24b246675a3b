// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package algorithms

import (
	"math"
	"sort"

	"github.com/tomtom215/staywise/internal/models"
)

// InfererConfig contains configuration for feature inference.
type InfererConfig struct {
	// MinConfidence is the exclusive share of neighbor weight a feature
	// needs to be inferred.
	MinConfidence float64
}

// DefaultInfererConfig returns the default inference policy.
func DefaultInfererConfig() InfererConfig {
	return InfererConfig{MinConfidence: 0.5}
}

// Inference is the result of inferring a venue's features from its neighbors.
type Inference struct {
	// Features lists inferred keys by confidence descending, then key.
	Features []string `json:"inferred_features"`

	// Confidence maps each inferred key to a percentage rounded to one
	// decimal place.
	Confidence map[string]float64 `json:"confidence_scores"`

	// Novel lists the inferred keys the venue does not already carry as true.
	Novel []string `json:"novel_features,omitempty"`
}

// EmptyInference returns an inference with no features.
func EmptyInference() Inference {
	return Inference{
		Features:   []string{},
		Confidence: map[string]float64{},
	}
}

// Inferer derives feature flags from a neighbor set.
type Inferer struct {
	cfg InfererConfig
}

// NewInferer creates an inferer.
func NewInferer(cfg InfererConfig) *Inferer {
	return &Inferer{cfg: cfg}
}

// Config returns the inferer's policy.
func (inf *Inferer) Config() InfererConfig {
	return inf.cfg
}

// Infer votes on target's features using neighbors.
//
// Each neighbor adds its similarity to every non-reserved tag it carries as
// true. A feature's confidence is its vote divided by the sum of all neighbor
// similarities, including neighbors that did not vote for it. A flag set to
// false is an explicit no-vote.
func (inf *Inferer) Infer(target *models.Venue, neighbors []Neighbor) Inference {
	result := EmptyInference()
	if len(neighbors) == 0 {
		return result
	}

	votes := make(map[string]float64)
	var totalWeight float64
	for _, n := range neighbors {
		totalWeight += n.Similarity
		if n.Venue == nil {
			continue
		}
		for _, key := range n.Venue.Tags.TrueFeatures() {
			if models.IsReservedTag(key) {
				continue
			}
			votes[key] += n.Similarity
		}
	}
	if totalWeight <= 0 {
		return result
	}

	confidence := make(map[string]float64, len(votes))
	for key, vote := range votes {
		c := vote / totalWeight
		if c > inf.cfg.MinConfidence {
			confidence[key] = c
			result.Features = append(result.Features, key)
		}
	}

	sort.Slice(result.Features, func(i, j int) bool {
		ci, cj := confidence[result.Features[i]], confidence[result.Features[j]]
		if ci != cj {
			return ci > cj
		}
		return result.Features[i] < result.Features[j]
	})

	for _, key := range result.Features {
		result.Confidence[key] = Percent(confidence[key])
		if target == nil || !target.Tags.HasFeature(key) {
			result.Novel = append(result.Novel, key)
		}
	}
	return result
}

// Percent converts a ratio to a percentage rounded half away from zero to
// one decimal place.
func Percent(ratio float64) float64 {
	return math.Round(ratio*1000) / 10
}
