// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCatalog = `{
  "hotels": [
    {
      "id": "h1",
      "name": "Alpine Lodge",
      "address": "Aspen, CO",
      "coordinates": {"lat": 39.19, "lng": -106.82},
      "tags": {"star_rating": 4.5, "price_range": "$$$", "amenities": ["wifi", "spa"], "near_mountain": true, "pet_friendly": false, "floors": 3},
      "reviews": [{"user": "ann", "rating": 5, "text": "Great hiking"}]
    },
    {
      "id": "h2",
      "name": "Equator Inn",
      "coordinates": {"lat": 0, "lng": 0},
      "tags": {},
      "reviews": []
    }
  ]
}`

func TestDecodeCatalog(t *testing.T) {
	t.Parallel()

	c, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}

	h1, ok := c.Get("h1")
	if !ok {
		t.Fatal("Get(h1) not found")
	}
	if h1.Tags.StarRating != 4.5 || h1.Tags.PriceRange != "$$$" {
		t.Errorf("reserved tags = %+v", h1.Tags)
	}
	if len(h1.Tags.Amenities) != 2 {
		t.Errorf("Amenities = %v, want 2 entries", h1.Tags.Amenities)
	}
	if v, present := h1.Tags.Feature("pet_friendly"); !present || v {
		t.Errorf("Feature(pet_friendly) = %v, %v; want false, true", v, present)
	}
	if _, present := h1.Tags.Feature("near_beach"); present {
		t.Error("absent feature reported as present")
	}
	if h1.Tags.Extra["floors"] != float64(3) {
		t.Errorf("Extra[floors] = %v, want 3", h1.Tags.Extra["floors"])
	}

	h2, _ := c.Get("h2")
	if h2.Coordinates.Lat != 0 || h2.Coordinates.Lng != 0 {
		t.Errorf("zero coordinates not preserved: %+v", h2.Coordinates)
	}

	if got := c.Venues()[0].ID; got != "h1" {
		t.Errorf("catalog order not preserved, first = %s", got)
	}
	if c.Version() == "" {
		t.Error("Version() is empty")
	}
}

func TestDecodeCatalog_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "missing id",
			doc:     `{"hotels": [{"name": "x", "coordinates": {"lat": 1, "lng": 2}}]}`,
			wantMsg: "id is required",
		},
		{
			name:    "empty id",
			doc:     `{"hotels": [{"id": "", "coordinates": {"lat": 1, "lng": 2}}]}`,
			wantMsg: "id is required",
		},
		{
			name:    "missing coordinates",
			doc:     `{"hotels": [{"id": "a"}]}`,
			wantMsg: "coordinates is required",
		},
		{
			name:    "missing lat",
			doc:     `{"hotels": [{"id": "a", "coordinates": {"lng": 2}}]}`,
			wantMsg: "lat is required",
		},
		{
			name:    "missing lng",
			doc:     `{"hotels": [{"id": "a", "coordinates": {"lat": 2}}]}`,
			wantMsg: "lng is required",
		},
		{
			name: "duplicate id",
			doc: `{"hotels": [
				{"id": "a", "coordinates": {"lat": 1, "lng": 2}},
				{"id": "a", "coordinates": {"lat": 3, "lng": 4}}
			]}`,
			wantMsg: "duplicates venue[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeCatalog(strings.NewReader(tt.doc))
			if !errors.Is(err, ErrMalformedVenue) {
				t.Fatalf("error = %v, want ErrMalformedVenue", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestDecodeCatalog_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := DecodeCatalog(strings.NewReader(`{"hotels": [`))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, ErrMalformedVenue) {
		t.Error("syntax errors should not be reported as malformed venues")
	}
}

func TestCatalog_VersionFingerprint(t *testing.T) {
	t.Parallel()

	a, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatal(err)
	}
	if a.Version() != b.Version() {
		t.Errorf("same content, different versions: %s vs %s", a.Version(), b.Version())
	}

	changed := strings.Replace(sampleCatalog, "Alpine Lodge", "Alpine Chalet", 1)
	c, err := DecodeCatalog(strings.NewReader(changed))
	if err != nil {
		t.Fatal(err)
	}
	if c.Version() == a.Version() {
		t.Error("changed content kept the same version")
	}
}

func TestNewCatalog_CopiesVenues(t *testing.T) {
	t.Parallel()

	venues := []Venue{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	c, err := NewCatalog(venues)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	venues[0].Name = "mutated"

	got, _ := c.Get("a")
	if got.Name != "A" {
		t.Errorf("catalog shares storage with caller: name = %s", got.Name)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) found a venue")
	}
}

func TestCatalog_NilSafe(t *testing.T) {
	t.Parallel()

	var c *Catalog
	if c.Len() != 0 || c.Venues() != nil || c.Version() != "" || !c.LoadedAt().IsZero() {
		t.Error("nil catalog accessors should return zero values")
	}
	if _, ok := c.Get("a"); ok {
		t.Error("nil catalog Get returned a venue")
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hotels.json")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
