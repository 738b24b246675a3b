// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package cache stores generated recommendation text keyed by request content.

Only opaque prose is cached. Derived structures such as neighbor sets and
inference reports are always recomputed from the live catalog.

# Backends

  - Memory: a bounded in-process map with TTL expiration and LRU eviction
  - Redis: a shared store via go-redis v9, for multi-instance deployments

Both implement Store. Backends are chosen with New from a Config:

	store, err := cache.New(cache.Config{Backend: "redis", RedisAddr: "localhost:6379"})
	if err != nil {
	    return err
	}
	defer store.Close()

# Keys

Key hashes its parts so that long preference strings and previous
recommendation text produce compact keys:

	key := cache.Key("advice", mode, preferences, catalogVersion, model)

Thread Safety:

All Store implementations are safe for concurrent use.
*/
package cache
