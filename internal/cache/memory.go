// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/staywise/internal/metrics"
)

// DefaultMaxEntries bounds a Memory store when no capacity is given.
const DefaultMaxEntries = 1024

// cleanupInterval is how often expired entries are swept.
const cleanupInterval = time.Minute

// memoryEntry is a node in the recency list.
type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time // zero means no expiration
	prev      *memoryEntry
	next      *memoryEntry
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Memory is a bounded in-process Store with TTL expiration. When full, the
// least recently used entry is evicted.
//
// Time Complexity: Get, Set and eviction are O(1).
type Memory struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*memoryEntry

	// head.next is the most recently used, tail.prev the least.
	head *memoryEntry
	tail *memoryEntry

	stats Stats
	now   func() time.Time

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemory creates a memory store holding at most capacity entries and
// starts its background cleanup. Close stops the cleanup.
func NewMemory(capacity int) *Memory {
	m := newMemory(capacity, time.Now)
	go m.cleanupLoop(cleanupInterval)
	return m
}

func newMemory(capacity int, now func() time.Time) *Memory {
	if capacity <= 0 {
		capacity = DefaultMaxEntries
	}
	m := &Memory{
		capacity: capacity,
		items:    make(map[string]*memoryEntry, capacity),
		head:     &memoryEntry{},
		tail:     &memoryEntry{},
		now:      now,
		stop:     make(chan struct{}),
	}
	m.head.next = m.tail
	m.tail.prev = m.head
	m.stats.LastCleanup = now()
	return m
}

// Get retrieves a value, removing it if it has expired.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.items[key]
	if ok && entry.expired(m.now()) {
		m.removeEntry(entry)
		m.stats.Evictions++
		ok = false
	}
	if !ok {
		m.stats.Misses++
		metrics.RecordCacheLookup(BackendMemory, false)
		return "", false, nil
	}

	m.moveToFront(entry)
	m.stats.Hits++
	metrics.RecordCacheLookup(BackendMemory, true)
	return entry.value, true, nil
}

// Set stores a value. A non-positive ttl never expires.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = m.now().Add(ttl)
	}

	if entry, ok := m.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		m.moveToFront(entry)
		return nil
	}

	entry := &memoryEntry{key: key, value: value, expiresAt: expiresAt}
	m.addToFront(entry)
	m.items[key] = entry

	for len(m.items) > m.capacity {
		m.removeEntry(m.tail.prev)
		m.stats.Evictions++
	}
	m.stats.TotalKeys = int64(len(m.items))
	return nil
}

// Delete removes a single entry.
func (m *Memory) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.items[key]; ok {
		m.removeEntry(entry)
		m.stats.Evictions++
		m.stats.TotalKeys = int64(len(m.items))
	}
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// GetStats returns a snapshot of current cache performance statistics.
func (m *Memory) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// HitRate returns the cache hit rate as a percentage
func (m *Memory) HitRate() float64 {
	stats := m.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

// Close stops the background cleanup. It is safe to call more than once.
func (m *Memory) Close() error {
	m.closeOnce.Do(func() {
		close(m.stop)
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (m *Memory) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup removes all expired entries and returns how many it removed.
func (m *Memory) cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for entry := m.tail.prev; entry != m.head; {
		prev := entry.prev
		if entry.expired(now) {
			m.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	m.stats.Evictions += int64(removed)
	m.stats.TotalKeys = int64(len(m.items))
	m.stats.LastCleanup = now
	return removed
}

// Internal methods (must be called with lock held)

func (m *Memory) addToFront(entry *memoryEntry) {
	entry.prev = m.head
	entry.next = m.head.next
	m.head.next.prev = entry
	m.head.next = entry
}

func (m *Memory) moveToFront(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	m.addToFront(entry)
}

func (m *Memory) removeEntry(entry *memoryEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(m.items, entry.key)
	m.stats.TotalKeys = int64(len(m.items))
}
