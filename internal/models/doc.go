// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package models defines the venue data structures shared by every layer of
Staywise.

Key Components:

  - Venue: a recommendable place with coordinates, tags and reviews
  - Tags: structured attributes with three reserved keys (star_rating,
    price_range, amenities) and boolean feature flags with explicit presence
  - Catalog: an ordered, read-only venue collection with a content version

Catalog documents use the layout {"hotels": [Venue, ...]}. Decoding rejects
venues without an id or coordinates and duplicate ids with ErrMalformedVenue.

Thread Safety:

Venue and Catalog values are never mutated after construction and can be
shared freely between goroutines.
*/
package models
