// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package api provides the HTTP interface of the venue engine using the Chi
router.

# Endpoints

All endpoints live under /api/v1:

	GET  /health/live                 liveness probe
	GET  /health/ready                503 until a catalog is loaded
	GET  /venues                      venue summaries in catalog order
	GET  /venues/{id}                 venue with theme counts and themes
	GET  /venues/{id}/neighbors       neighbor set
	GET  /venues/nearby               lat, lng, radius_km (0 < r <= 500)
	GET  /similarity                  a, b
	GET  /completion                  inference report for every venue
	POST /recommendations             {"preferences": "..."}
	POST /recommendations/refine      {"preferences": "...", "initial": "..."}

Prometheus metrics are served at /metrics.

# Response Format

Every endpoint answers with the same envelope:

	{
	  "success": true,
	  "data": {...},
	  "error": {"code": "NOT_FOUND", "message": "...", "request_id": "..."},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

# Middleware

Requests pass through, in order: request id and logging context, access
log, RealIP, Recoverer, CORS, then for /api/v1 httprate limiting and
Prometheus instrumentation. Recommendation handlers bound generation with a
30 second timeout.
*/
package api
