// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package models

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// Reserved tag keys. Every other key is a special feature flag.
const (
	TagStarRating = "star_rating"
	TagPriceRange = "price_range"
	TagAmenities  = "amenities"
)

// IsReservedTag reports whether key is one of the structured attributes that
// never take part in feature voting.
func IsReservedTag(key string) bool {
	switch key {
	case TagStarRating, TagPriceRange, TagAmenities:
		return true
	default:
		return false
	}
}

// Tags holds a venue's structured attributes.
//
// The wire form is a flat JSON object. The three reserved keys are decoded
// into typed fields; boolean values under any other key become feature flags
// with explicit presence, so an absent key stays "unknown" rather than false.
// Non-boolean values under non-reserved keys are kept in Extra.
type Tags struct {
	// StarRating is 0 when absent.
	StarRating float64
	PriceRange string
	Amenities  []string
	Features   map[string]bool
	Extra      map[string]any
}

// Feature returns the value of a feature flag and whether it is present.
func (t Tags) Feature(key string) (value, present bool) {
	value, present = t.Features[key]
	return value, present
}

// HasFeature reports whether the feature is present with value true.
func (t Tags) HasFeature(key string) bool {
	return t.Features[key]
}

// TrueFeatures returns the keys of all features whose value is true, sorted.
func (t Tags) TrueFeatures() []string {
	keys := make([]string, 0, len(t.Features))
	for k, v := range t.Features {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Map returns the flat representation of the tags, as found on the wire.
func (t Tags) Map() map[string]any {
	m := make(map[string]any, len(t.Features)+len(t.Extra)+3)
	for k, v := range t.Extra {
		m[k] = v
	}
	for k, v := range t.Features {
		m[k] = v
	}
	if t.StarRating != 0 {
		m[TagStarRating] = t.StarRating
	}
	if t.PriceRange != "" {
		m[TagPriceRange] = t.PriceRange
	}
	if t.Amenities != nil {
		m[TagAmenities] = t.Amenities
	}
	return m
}

// MarshalJSON encodes the tags as a flat object.
func (t Tags) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

// MarshalYAML encodes the tags as a flat mapping.
func (t Tags) MarshalYAML() (interface{}, error) {
	return t.Map(), nil
}

// UnmarshalJSON decodes a flat tag object. A reserved key carrying a value of
// the wrong type is treated as absent.
func (t *Tags) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}

	*t = Tags{}
	for key, value := range raw {
		switch key {
		case TagStarRating:
			if f, ok := value.(float64); ok {
				t.StarRating = f
			}
		case TagPriceRange:
			if s, ok := value.(string); ok {
				t.PriceRange = s
			}
		case TagAmenities:
			t.Amenities = stringList(value)
		default:
			if b, ok := value.(bool); ok {
				if t.Features == nil {
					t.Features = make(map[string]bool)
				}
				t.Features[key] = b
				continue
			}
			if t.Extra == nil {
				t.Extra = make(map[string]any)
			}
			t.Extra[key] = value
		}
	}
	return nil
}

func stringList(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
