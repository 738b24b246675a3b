// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package themes

import (
	"sync"

	"github.com/tomtom215/staywise/internal/models"
)

// Memo caches theme sets by venue id for the lifetime of one computation.
// It must not outlive the catalog snapshot it was filled from.
type Memo struct {
	extractor *Extractor

	mu     sync.Mutex
	themes map[string][]string
	hits   int
	misses int
}

// NewMemo wraps extractor with a per-run cache.
func NewMemo(extractor *Extractor) *Memo {
	return &Memo{
		extractor: extractor,
		themes:    make(map[string][]string),
	}
}

// Themes returns the venue's theme set, computing it on first use.
// The returned slice is shared and must not be modified.
func (m *Memo) Themes(v *models.Venue) []string {
	if v == nil {
		return []string{}
	}

	m.mu.Lock()
	if t, ok := m.themes[v.ID]; ok {
		m.hits++
		m.mu.Unlock()
		return t
	}
	m.misses++
	m.mu.Unlock()

	// Extraction is pure, so two goroutines racing on the same id store
	// identical values.
	t := m.extractor.Themes(v)

	m.mu.Lock()
	m.themes[v.ID] = t
	m.mu.Unlock()
	return t
}

// Stats returns the number of cache hits and misses.
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
