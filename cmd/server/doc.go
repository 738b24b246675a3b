// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package main is the entry point for the Staywise server.

Staywise loads a venue catalog, extracts review themes, scores venue
similarity, infers missing features from geographic neighbors and answers
travel preference queries over HTTP.

# Application Architecture

	RootSupervisor ("staywise")
	├── DataSupervisor ("data-layer")
	│   ├── Catalog watch (catalog.watch)
	│   └── Completion audit (inference.audit_interval > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: koanf v2 with defaults, config file and environment
 2. Logging: zerolog with JSON or console output
 3. Cache: in-memory or Redis store for generated text
 4. Text generation: OpenAI-compatible client, offline when no key is set
 5. Engine: themes, similarity, neighbors and inference over the catalog
 6. Supervisor tree: suture v4
 7. HTTP server: chi router with middleware stack

# Configuration

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	HTTP_PORT=8088
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console
	CATALOG_PATH=hotel_data.json
	DEEPSEEK_API_KEY=<key>       # unset: offline recommendations
	CACHE_BACKEND=memory         # memory or redis
	REDIS_ADDR=localhost:6379

See internal/config for the full table.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains within
server.shutdown_timeout and services that miss it are reported.
*/
package main
