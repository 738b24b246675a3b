// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import "errors"

var (
	// ErrVenueNotFound is returned when a lookup names an id that is not in
	// the current catalog.
	ErrVenueNotFound = errors.New("venue not found")

	// ErrInvalidConfig is wrapped by every Config.Validate failure.
	ErrInvalidConfig = errors.New("invalid recommend config")

	// ErrNoCatalog is returned when the engine has not loaded a catalog yet.
	ErrNoCatalog = errors.New("no catalog loaded")
)
