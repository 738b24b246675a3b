// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/models"
	"github.com/tomtom215/staywise/internal/recommend"
)

// testVenues holds three Front Range venues. Peak and Ridge score 0.8,
// Peak and Summit 0.59. Summit has enough reviews for the mountain theme.
func testVenues() []models.Venue {
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
				Features: map[string]bool{"near_mountain": true},
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
				{User: "ana", Rating: 5, Text: "Stunning mountain views"},
				{User: "ben", Rating: 4, Text: "Right by the hiking trail"},
				{User: "cy", Rating: 4, Text: "Great view of the peaks"},
			},
		},
	}
}

// stubGenerator answers every call with reply, or blocks until the context
// ends when block is set.
type stubGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	block bool
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, _, _ string) (string, error) {
	g.mu.Lock()
	g.calls++
	block, reply, err := g.block, g.reply, g.err
	g.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (g *stubGenerator) Model() string { return "stub-model" }

func newTestEngine(t *testing.T, cfg *recommend.Config, loaded bool, opts ...recommend.Option) *recommend.Engine {
	t.Helper()
	e, err := recommend.NewEngine(cfg, zerolog.Nop(), opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if loaded {
		c, err := models.NewCatalog(testVenues())
		if err != nil {
			t.Fatalf("NewCatalog() error = %v", err)
		}
		e.SetCatalog(c)
	}
	return e
}

// newTestServer builds the full router over engine with rate limiting off.
func newTestServer(t *testing.T, engine Engine, opts ...HandlerOption) http.Handler {
	t.Helper()
	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitDisabled = true
	return NewRouter(NewHandler(engine, opts...), mw, zerolog.Nop()).SetupChi()
}

// envelope is APIResponse with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: decode response %q: %v", method, target, rec.Body.String(), err)
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}
