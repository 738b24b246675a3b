// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"context"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/models"
)

// fixtureVenues is a small Colorado catalog. Pairwise similarities among
// the first three venues are 0.8 (peak/ridge), 0.59 (peak/summit and
// ridge/summit) and 0.39 (peak/plains and ridge/plains). Faraway sits more
// than 150 km from everything else.
func fixtureVenues() []models.Venue {
	return []models.Venue{
		{
			ID: "peak", Name: "Peak Hotel", Address: "Denver, CO",
			Coordinates: models.Coordinates{Lat: 39.7392, Lng: -104.9903},
			Tags:        models.Tags{StarRating: 4, PriceRange: "$$", Amenities: []string{"spa", "wifi"}},
		},
		{
			ID: "ridge", Name: "Ridge Lodge", Address: "Boulder, CO",
			Coordinates: models.Coordinates{Lat: 40.0150, Lng: -105.2705},
			Tags: models.Tags{
				StarRating: 4, PriceRange: "$$", Amenities: []string{"spa", "wifi"},
				Features: map[string]bool{"near_mountain": true, "ski_access": true},
			},
		},
		{
			ID: "summit", Name: "Summit Inn", Address: "Golden, CO",
			Coordinates: models.Coordinates{Lat: 39.7555, Lng: -105.2211},
			Tags: models.Tags{
				StarRating: 5, PriceRange: "$$", Amenities: []string{"spa"},
				Features: map[string]bool{"near_mountain": true},
			},
			Reviews: []models.Review{
				{User: "ana", Rating: 5, Text: "Stunning mountain views from the balcony"},
				{User: "ben", Rating: 4, Text: "Close to the hiking trail"},
				{User: "cy", Rating: 4, Text: "Peak hours were busy"},
			},
		},
		{
			ID: "plains", Name: "Plains Motor Inn", Address: "Aurora, CO",
			Coordinates: models.Coordinates{Lat: 39.7294, Lng: -104.8319},
			Tags: models.Tags{
				StarRating: 3, PriceRange: "$", Amenities: []string{"wifi"},
				Features: map[string]bool{"pet_friendly": true, "near_mountain": false},
			},
		},
		{
			ID: "faraway", Name: "Faraway Chalet", Address: "Aspen, CO",
			Coordinates: models.Coordinates{Lat: 39.1911, Lng: -106.8175},
			Tags: models.Tags{
				StarRating: 4, PriceRange: "$$", Amenities: []string{"spa", "wifi"},
				Features: map[string]bool{"near_mountain": true},
			},
			Reviews: []models.Review{
				{User: "dee", Rating: 5, Text: "Ski the mountain all day"},
				{User: "eli", Rating: 5, Text: "Great hiking nearby"},
				{User: "fay", Rating: 4, Text: "Trail access from the door"},
			},
		},
		{
			ID: "motel", Name: "Roadside Motel",
			Coordinates: models.Coordinates{Lat: 39.7047, Lng: -105.0814},
			Reviews: []models.Review{
				{User: "gus", Rating: 3, Text: "Close to the beach"},
				{User: "hal", Rating: 2, Text: "Ocean breeze at night"},
				{User: "ivy", Rating: 3, Text: "Mountain in the distance"},
			},
		},
	}
}

func fixtureCatalog(t *testing.T) *models.Catalog {
	t.Helper()
	c, err := models.NewCatalog(fixtureVenues())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func newTestEngine(t *testing.T, cfg *Config, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	})}, opts...)
	e, err := NewEngine(cfg, zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	e.SetCatalog(fixtureCatalog(t))
	return e
}

type generateCall struct {
	system string
	user   string
}

// fakeGenerator records calls and answers from a scripted list.
type fakeGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	calls   []generateCall
}

func (g *fakeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, generateCall{system: system, user: user})
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.err != nil {
		return "", g.err
	}
	if len(g.replies) == 0 {
		return "generated", nil
	}
	reply := g.replies[0]
	if len(g.replies) > 1 {
		g.replies = g.replies[1:]
	}
	return reply, nil
}

func (g *fakeGenerator) Model() string { return "fake-model" }

func (g *fakeGenerator) Calls() []generateCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]generateCall(nil), g.calls...)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
