// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package geo

import (
	"math"
	"testing"

	"github.com/tomtom215/staywise/internal/models"
)

func TestDistance_KnownPairs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{"paris to london", 48.8566, 2.3522, 51.5074, -0.1278, 343.5, 1.0},
		{"new york to los angeles", 40.7128, -74.0060, 34.0522, -118.2437, 3935.7, 2.0},
		{"one degree of latitude", 0, 0, 1, 0, 111.19, 0.01},
		{"antimeridian neighbors", 0, 179.5, 0, -179.5, 111.19, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Distance(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("Distance() = %.3f km, want %.3f ± %.2f", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestDistance_Symmetry(t *testing.T) {
	t.Parallel()

	points := []models.Coordinates{
		{Lat: 39.7392, Lng: -104.9903},
		{Lat: 40.0150, Lng: -105.2705},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 89.9, Lng: 10},
		{Lat: 0, Lng: 0},
	}

	for _, a := range points {
		if d := Between(a, a); d != 0 {
			t.Errorf("Between(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			if ab, ba := Between(a, b), Between(b, a); ab != ba {
				t.Errorf("asymmetric distance %v -> %v: %v vs %v", a, b, ab, ba)
			}
		}
	}
}

func TestDistance_NaNPropagates(t *testing.T) {
	t.Parallel()

	if d := Distance(math.NaN(), 0, 0, 0); !math.IsNaN(d) {
		t.Errorf("Distance(NaN, ...) = %v, want NaN", d)
	}
}
