// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package models

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Review is a single guest review. Rating is an integer from 1 to 5.
type Review struct {
	User   string `json:"user" yaml:"user"`
	Rating int    `json:"rating" yaml:"rating"`
	Text   string `json:"text" yaml:"text"`
}

// Venue is a recommendable place. Venues are immutable once they are part of
// a Catalog; every derived structure is computed from them without mutation.
type Venue struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Address     string      `json:"address,omitempty" yaml:"address,omitempty"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
	Tags        Tags        `json:"tags" yaml:"tags"`
	Reviews     []Review    `json:"reviews" yaml:"reviews"`
}

// ReviewCount returns the number of reviews attached to the venue.
func (v *Venue) ReviewCount() int {
	return len(v.Reviews)
}
