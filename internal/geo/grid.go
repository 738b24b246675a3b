// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package geo

import (
	"math"
	"sort"
	"sync"
)

// kmPerDegree is the length of one degree of latitude.
const kmPerDegree = 111.0

// Grid divides the globe into equal-degree cells so proximity queries only
// examine cells that can contain a match. Cell columns wrap at the
// antimeridian and the longitude span of a query widens with latitude, so a
// query never misses a point that lies within its radius.
//
// Time Complexity:
//   - Insert: O(1)
//   - Nearby: O(k) where k = entries in the examined cells
type Grid struct {
	mu       sync.RWMutex
	cellDeg  float64
	columns  int
	cells    map[cellKey][]*gridEntry
	entries  map[string]*gridEntry
	sequence int
}

type cellKey struct {
	X, Y int
}

type gridEntry struct {
	id  string
	lat float64
	lng float64
	seq int
	key cellKey
}

// Hit is a single proximity query result.
type Hit struct {
	ID         string  `json:"id"`
	DistanceKm float64 `json:"distance_km"`
	seq        int
}

// NewGrid creates a grid whose cells are roughly cellSizeKm on a side at the
// equator. Non-positive sizes fall back to 50 km.
func NewGrid(cellSizeKm float64) *Grid {
	if cellSizeKm <= 0 {
		cellSizeKm = 50
	}
	cellDeg := cellSizeKm / kmPerDegree
	return &Grid{
		cellDeg: cellDeg,
		columns: int(math.Ceil(360 / cellDeg)),
		cells:   make(map[cellKey][]*gridEntry),
		entries: make(map[string]*gridEntry),
	}
}

func (g *Grid) keyFor(lat, lng float64) cellKey {
	x := int(math.Floor((normalizeLng(lng) + 180) / g.cellDeg))
	y := int(math.Floor((lat + 90) / g.cellDeg))
	return cellKey{X: g.wrapColumn(x), Y: y}
}

func (g *Grid) wrapColumn(x int) int {
	x %= g.columns
	if x < 0 {
		x += g.columns
	}
	return x
}

func normalizeLng(lng float64) float64 {
	for lng >= 180 {
		lng -= 360
	}
	for lng < -180 {
		lng += 360
	}
	return lng
}

// Insert adds or replaces the point stored under id.
// Points keep their original insertion rank when replaced.
func (g *Grid) Insert(id string, lat, lng float64) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seq := g.sequence
	if existing, ok := g.entries[id]; ok {
		seq = existing.seq
		g.removeUnlocked(existing)
	} else {
		g.sequence++
	}

	entry := &gridEntry{id: id, lat: lat, lng: lng, seq: seq, key: g.keyFor(lat, lng)}
	g.cells[entry.key] = append(g.cells[entry.key], entry)
	g.entries[id] = entry
}

// Remove deletes the point stored under id and reports whether it existed.
func (g *Grid) Remove(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entry, ok := g.entries[id]
	if !ok {
		return false
	}
	g.removeUnlocked(entry)
	delete(g.entries, id)
	return true
}

func (g *Grid) removeUnlocked(entry *gridEntry) {
	cell := g.cells[entry.key]
	for i, e := range cell {
		if e.id == entry.id {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, entry.key)
		return
	}
	g.cells[entry.key] = cell
}

// Len returns the number of stored points.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Nearby returns every point within radiusKm of (lat, lng), nearest first.
// Equal distances keep insertion order.
func (g *Grid) Nearby(lat, lng, radiusKm float64) []Hit {
	if radiusKm < 0 || math.IsNaN(radiusKm) {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	rows := int(math.Ceil(radiusKm/kmPerDegree/g.cellDeg)) + 1
	// Columns narrow toward the poles; size the span for the most poleward
	// latitude the circle can reach and scan the whole ring near the poles.
	cols := g.columns
	if poleward := math.Abs(lat) + radiusKm/kmPerDegree; poleward < 89 {
		cosLat := math.Cos(poleward * math.Pi / 180)
		cols = int(math.Ceil(radiusKm/(kmPerDegree*cosLat)/g.cellDeg)) + 1
	}

	center := g.keyFor(lat, lng)
	seen := make(map[int]bool)
	var hits []Hit

	for dx := -cols; dx <= cols; dx++ {
		x := g.wrapColumn(center.X + dx)
		if seen[x] {
			continue
		}
		seen[x] = true
		for dy := -rows; dy <= rows; dy++ {
			for _, e := range g.cells[cellKey{X: x, Y: center.Y + dy}] {
				d := Distance(lat, lng, e.lat, e.lng)
				if d <= radiusKm {
					hits = append(hits, Hit{ID: e.id, DistanceKm: d, seq: e.seq})
				}
			}
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].DistanceKm != hits[j].DistanceKm {
			return hits[i].DistanceKm < hits[j].DistanceKm
		}
		return hits[i].seq < hits[j].seq
	})
	return hits
}
