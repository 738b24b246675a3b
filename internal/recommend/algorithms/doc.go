// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package algorithms implements the venue similarity metric, neighbor
// selection and confidence-weighted feature inference.
//
// # Similarity
//
// The similarity between two venues is the sum of four independently capped
// terms:
//
//	sim(a, b) = w_star  * (1 - |r_a - r_b| / max_rating)
//	          + w_price * [price_a == price_b]
//	          + w_amen  * jaccard(amenities_a, amenities_b)
//	          + w_theme * jaccard(themes_a, themes_b)
//
// A term whose inputs are missing on either side contributes 0. With the
// default weights (0.3, 0.2, 0.3, 0.2) the score lies in [0, 1].
//
// # Neighbors
//
// A Finder keeps candidates closer than a radius whose similarity exceeds a
// floor, sorted by similarity with catalog order breaking ties, and returns
// at most MaxNeighbors of them.
//
// # Inference
//
// An Inferer lets each neighbor vote, weighted by similarity, for every
// feature flag it carries as true. A feature is inferred when its share of
// the total neighbor weight exceeds MinConfidence.
//
// # Thread Safety
//
// Scorer, Finder and Inferer hold only immutable configuration and are safe
// for concurrent use when their ThemeSource is.
package algorithms
