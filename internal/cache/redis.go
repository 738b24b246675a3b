// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomtom215/staywise/internal/metrics"
)

// RedisConfig configures a Redis store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix is prepended to every key. Defaults to "staywise:".
	Prefix string
}

// Redis is a Store backed by a Redis server.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis creates a Redis store. The connection is established lazily on
// first use.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis cache: address is required")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "staywise:"
	}
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: cfg.Prefix,
	}, nil
}

// Get returns the cached value. redis.Nil is reported as a miss.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCacheLookup(BackendRedis, false)
		return "", false, nil
	}
	if err != nil {
		metrics.RecordCacheError(BackendRedis, "get")
		return "", false, fmt.Errorf("redis GET %s: %w", key, err)
	}
	metrics.RecordCacheLookup(BackendRedis, true)
	return data, true, nil
}

// Set stores value with ttl. A non-positive ttl keeps the key until evicted
// by the server.
func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, r.prefix+key, value, ttl).Err(); err != nil {
		metrics.RecordCacheError(BackendRedis, "set")
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity to the server.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis PING: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
