// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Backend names accepted by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Store is a string cache with per-entry expiration.
type Store interface {
	// Get returns the cached value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. A non-positive ttl means no expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases the store's resources.
	Close() error
}

// Config selects and configures a cache backend.
type Config struct {
	Backend       string
	MaxEntries    int
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string
}

// New creates the store named by cfg.Backend. An empty backend selects memory.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", BackendMemory:
		return NewMemory(cfg.MaxEntries), nil
	case BackendRedis:
		return NewRedis(RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.KeyPrefix,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Key creates a cache key from a namespace and the parts that identify a
// cached value.
func Key(namespace string, parts ...string) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = []byte(strings.Join(parts, "\x00"))
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}
