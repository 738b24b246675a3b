// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package config provides centralized configuration management for Staywise.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

 1. Built-in defaults (see defaultConfig)
 2. An optional YAML file, located through CONFIG_PATH or the first of
    DefaultConfigPaths that exists
 3. Environment variables listed in the mapping table of envTransformFunc

Unmapped environment variables are ignored so that unrelated process
environment never leaks into configuration.

# Sections

  - server: HTTP listener (HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT)
  - logging: zerolog level and format, optional supervisor event log
  - catalog: venue document path and hot reload (CATALOG_PATH, CATALOG_WATCH)
  - inference: the similarity and voting policy (INFERENCE_*)
  - llm: the OpenAI-compatible text generation endpoint (DEEPSEEK_API_KEY, LLM_*)
  - advisor: offline fallback and advice caching
  - cache: memory or Redis advice cache (CACHE_BACKEND, REDIS_*)
  - security: CORS and rate limiting

# Example

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	policy, err := cfg.Policy()
*/
package config
