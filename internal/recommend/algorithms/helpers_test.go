// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package algorithms

import (
	"math"

	"github.com/tomtom215/staywise/internal/models"
)

// staticThemes is a ThemeSource backed by a fixed id -> themes table.
type staticThemes map[string][]string

func (s staticThemes) Themes(v *models.Venue) []string {
	return s[v.ID]
}

func venue(id string, lat, lng float64, tags models.Tags) *models.Venue {
	return &models.Venue{
		ID:          id,
		Name:        "Venue " + id,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
		Tags:        tags,
	}
}

func flags(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
