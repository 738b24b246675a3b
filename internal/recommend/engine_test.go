// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/models"
	"github.com/tomtom215/staywise/internal/recommend/algorithms"
)

func neighborIDs(ns []algorithms.Neighbor) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Venue.ID
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEngine_NoCatalog(t *testing.T) {
	t.Parallel()

	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if e.Ready() || e.Catalog() != nil {
		t.Error("engine reports a catalog before one is loaded")
	}
	if _, err := e.Neighbors("peak"); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Neighbors() error = %v, want ErrNoCatalog", err)
	}
	if _, err := e.Complete(t.Context()); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Complete() error = %v, want ErrNoCatalog", err)
	}
	if _, err := e.Recommend(t.Context(), "mountain"); !errors.Is(err, ErrNoCatalog) {
		t.Errorf("Recommend() error = %v, want ErrNoCatalog", err)
	}
}

func TestEngine_Neighbors(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	tests := []struct {
		id   string
		want []string
	}{
		{"peak", []string{"ridge", "summit", "plains"}},
		{"ridge", []string{"peak", "summit", "plains"}},
		{"summit", []string{"peak", "ridge"}},
		{"plains", []string{"peak", "ridge"}},
		{"faraway", []string{}},
		{"motel", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := e.Neighbors(tt.id)
			if err != nil {
				t.Fatalf("Neighbors() error = %v", err)
			}
			if got == nil {
				t.Fatal("Neighbors() = nil, want empty slice")
			}
			if ids := neighborIDs(got); !equalStrings(ids, tt.want) {
				t.Errorf("Neighbors(%s) = %v, want %v", tt.id, ids, tt.want)
			}
		})
	}

	got, _ := e.Neighbors("peak")
	for i, want := range []float64{0.8, 0.59, 0.39} {
		if !approxEqual(got[i].Similarity, want) {
			t.Errorf("neighbor %d similarity = %v, want %v", i, got[i].Similarity, want)
		}
	}

	if _, err := e.Neighbors("nope"); !errors.Is(err, ErrVenueNotFound) {
		t.Errorf("Neighbors(nope) error = %v, want ErrVenueNotFound", err)
	}
}

func TestEngine_NeighborsMatchFullScan(t *testing.T) {
	t.Parallel()

	// Spread venues over a few hundred km, including two on the antimeridian.
	venues := fixtureVenues()
	venues = append(venues,
		models.Venue{ID: "fiji-w", Coordinates: models.Coordinates{Lat: -17.7, Lng: 179.8},
			Tags: models.Tags{StarRating: 4, PriceRange: "$$", Amenities: []string{"spa"}}},
		models.Venue{ID: "fiji-e", Coordinates: models.Coordinates{Lat: -17.7, Lng: -179.6},
			Tags: models.Tags{StarRating: 4, PriceRange: "$$", Amenities: []string{"spa"}}},
		models.Venue{ID: "edge", Coordinates: models.Coordinates{Lat: 40.55, Lng: -104.99},
			Tags: models.Tags{StarRating: 4, PriceRange: "$$", Amenities: []string{"spa", "wifi"}}},
	)
	c, err := models.NewCatalog(venues)
	if err != nil {
		t.Fatal(err)
	}

	for _, radius := range []float64{10, 40, 90.2, 100, 400} {
		cfg := DefaultConfig()
		cfg.Neighbors.RadiusKm = radius
		e, err := NewEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatal(err)
		}
		e.SetCatalog(c)

		scan := algorithms.NewFinder(cfg.finderConfig(), algorithms.NewScorer(cfg.scorerConfig(), e.Extractor()))
		for _, v := range c.Venues() {
			got, err := e.Neighbors(v.ID)
			if err != nil {
				t.Fatal(err)
			}
			want := scan.Find(v, c.Venues())
			if !equalStrings(neighborIDs(got), neighborIDs(want)) {
				t.Errorf("radius %v, %s: grid %v, scan %v", radius, v.ID, neighborIDs(got), neighborIDs(want))
			}
		}
	}
}

func TestEngine_Similarity(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	b, err := e.Similarity("peak", "ridge")
	if err != nil {
		t.Fatalf("Similarity() error = %v", err)
	}
	if !approxEqual(b.StarRating, 0.3) || !approxEqual(b.PriceRange, 0.2) ||
		!approxEqual(b.Amenities, 0.3) || b.Themes != 0 || !approxEqual(b.Total, 0.8) {
		t.Errorf("Similarity(peak, ridge) = %+v", b)
	}

	rev, _ := e.Similarity("ridge", "peak")
	if rev.Total != b.Total {
		t.Errorf("similarity not symmetric: %v vs %v", b.Total, rev.Total)
	}

	// Both venues carry the mountain theme.
	b, _ = e.Similarity("summit", "faraway")
	if !approxEqual(b.Themes, 0.2) {
		t.Errorf("Similarity(summit, faraway).Themes = %v, want 0.2", b.Themes)
	}

	if _, err := e.Similarity("peak", "nope"); !errors.Is(err, ErrVenueNotFound) {
		t.Errorf("Similarity() error = %v, want ErrVenueNotFound", err)
	}
}

func TestEngine_Themes(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	r, err := e.Themes("summit")
	if err != nil {
		t.Fatal(err)
	}
	if !equalStrings(r.Themes, []string{"mountain"}) || r.Counts["mountain"] != 3 || r.ReviewCount != 3 {
		t.Errorf("Themes(summit) = %+v", r)
	}

	// Two beach reviews and one mountain review fall short everywhere.
	r, _ = e.Themes("motel")
	if len(r.Themes) != 0 || r.Counts["beach"] != 2 || r.Counts["mountain"] != 1 {
		t.Errorf("Themes(motel) = %+v", r)
	}
}

func TestEngine_Nearby(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	got, err := e.Nearby(39.7392, -104.9903, 25)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"peak", "motel", "plains", "summit"}
	ids := make([]string, len(got))
	for i, n := range got {
		ids[i] = n.VenueID
	}
	if !equalStrings(ids, want) {
		t.Errorf("Nearby() = %v, want %v", ids, want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].DistanceKm < got[i-1].DistanceKm {
			t.Errorf("Nearby() not sorted by distance: %+v", got)
		}
	}
}

func TestEngine_Summaries(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)

	sums, err := e.Summaries()
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 6 || sums[0].ID != "peak" || sums[5].ID != "motel" {
		t.Fatalf("Summaries() order = %+v", sums)
	}

	motel := sums[5]
	if motel.StarRating != notAvailable || motel.PriceRange != notAvailable {
		t.Errorf("motel rating = %v, price = %v, want N/A", motel.StarRating, motel.PriceRange)
	}
	if motel.Amenities == nil || len(motel.KeyThemes) != 0 || motel.ReviewCount != 3 {
		t.Errorf("motel summary = %+v", motel)
	}

	summit := sums[2]
	if summit.StarRating != 5.0 || summit.Location != "Golden, CO" || !equalStrings(summit.KeyThemes, []string{"mountain"}) {
		t.Errorf("summit summary = %+v", summit)
	}
	if summit.Tags["near_mountain"] != true {
		t.Errorf("summit tags = %v", summit.Tags)
	}
}

func TestEngine_Reload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "catalog.json")
	doc := `{"hotels": [
		{"id": "a", "name": "A", "coordinates": {"lat": 1, "lng": 2}, "tags": {"star_rating": 4}, "reviews": []},
		{"id": "b", "name": "B", "coordinates": {"lat": 1.1, "lng": 2}, "tags": {}, "reviews": []}
	]}`
	if err := os.WriteFile(good, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Reload(good); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !e.Ready() || e.Catalog().Len() != 2 {
		t.Fatalf("catalog not loaded: %v", e.Catalog())
	}
	version := e.Catalog().Version()

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"hotels": [{"id": "x", "name": "X"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := e.Reload(bad); !errors.Is(err, models.ErrMalformedVenue) {
		t.Errorf("Reload(bad) error = %v, want ErrMalformedVenue", err)
	}
	if e.Catalog().Version() != version {
		t.Error("failed reload replaced the catalog")
	}

	if err := e.Reload(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Reload(missing) succeeded")
	}
	if e.Catalog().Version() != version {
		t.Error("failed reload replaced the catalog")
	}
}

func TestEngine_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	before := e.Catalog()

	e.SetCatalog(nil)
	if e.Catalog() != before {
		t.Error("SetCatalog(nil) replaced the catalog")
	}

	single, err := models.NewCatalog(fixtureVenues()[:1])
	if err != nil {
		t.Fatal(err)
	}
	e.SetCatalog(single)
	if before.Len() != 6 {
		t.Error("previous snapshot was mutated")
	}
	got, err := e.Neighbors("peak")
	if err != nil || len(got) != 0 {
		t.Errorf("single-venue Neighbors() = %v, %v", got, err)
	}
}
