// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package models

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/staywise/internal/validation"
)

// ErrMalformedVenue is returned when a venue lacks an identity field
// (id or coordinates) or repeats an id already present in the catalog.
var ErrMalformedVenue = errors.New("malformed venue")

// Catalog is an ordered, read-only collection of venues.
// Catalog order is significant: it breaks similarity ties.
type Catalog struct {
	venues   []*Venue
	index    map[string]int
	version  string
	loadedAt time.Time
}

// document is the on-disk catalog layout.
type document struct {
	Hotels []venueRecord `json:"hotels"`
}

// venueRecord mirrors Venue with pointer fields so missing identity fields
// can be told apart from zero values.
type venueRecord struct {
	ID          *string            `json:"id" validate:"required"`
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Coordinates *coordinatesRecord `json:"coordinates" validate:"required"`
	Tags        Tags               `json:"tags"`
	Reviews     []Review           `json:"reviews"`
}

type coordinatesRecord struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lng *float64 `json:"lng" validate:"required"`
}

// NewCatalog builds a catalog from in-memory venues. Venues are copied so the
// catalog owns its data.
func NewCatalog(venues []Venue) (*Catalog, error) {
	c := &Catalog{
		venues:   make([]*Venue, 0, len(venues)),
		index:    make(map[string]int, len(venues)),
		loadedAt: time.Now(),
	}
	for i := range venues {
		v := venues[i]
		if v.ID == "" {
			return nil, fmt.Errorf("%w: venue[%d]: id is required", ErrMalformedVenue, i)
		}
		if prev, dup := c.index[v.ID]; dup {
			return nil, fmt.Errorf("%w: venue[%d]: id %q duplicates venue[%d]", ErrMalformedVenue, i, v.ID, prev)
		}
		c.index[v.ID] = len(c.venues)
		c.venues = append(c.venues, &v)
	}

	data, err := json.Marshal(venues)
	if err != nil {
		return nil, fmt.Errorf("fingerprint catalog: %w", err)
	}
	c.version = fingerprint(data)
	return c, nil
}

// DecodeCatalog reads a catalog document from r.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var doc document
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	venues := make([]Venue, 0, len(doc.Hotels))
	for i := range doc.Hotels {
		rec := &doc.Hotels[i]
		// Nested coordinate members are checked by the same pass.
		if verr := validation.ValidateStruct(rec); verr != nil {
			return nil, fmt.Errorf("%w: venue[%d]: %s", ErrMalformedVenue, i, verr.Error())
		}
		venues = append(venues, Venue{
			ID:          *rec.ID,
			Name:        rec.Name,
			Address:     rec.Address,
			Coordinates: Coordinates{Lat: *rec.Coordinates.Lat, Lng: *rec.Coordinates.Lng},
			Tags:        rec.Tags,
			Reviews:     rec.Reviews,
		})
	}

	c, err := NewCatalog(venues)
	if err != nil {
		return nil, err
	}
	c.version = fingerprint(data)
	return c, nil
}

// LoadCatalog reads a catalog document from a file.
func LoadCatalog(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	c, err := DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Venues returns the venues in catalog order. The slice and the venues it
// points to must not be modified.
func (c *Catalog) Venues() []*Venue {
	if c == nil {
		return nil
	}
	return c.venues
}

// Len returns the number of venues.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.venues)
}

// Get returns the venue with the given id.
func (c *Catalog) Get(id string) (*Venue, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.venues[i], true
}

// Version is a content fingerprint. Two catalogs with the same content share
// a version.
func (c *Catalog) Version() string {
	if c == nil {
		return ""
	}
	return c.version
}

// LoadedAt reports when the catalog was built.
func (c *Catalog) LoadedAt() time.Time {
	if c == nil {
		return time.Time{}
	}
	return c.loadedAt
}

func fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum[:8])
}
