// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package middleware provides HTTP middleware shared by the API router.
//
//   - RequestID assigns or propagates X-Request-ID and seeds the logging
//     context with request and correlation ids.
//   - AccessLog writes one structured log line per request.
//   - PrometheusMetrics records request counts and latency labelled by the
//     chi route pattern, so path parameters do not explode label
//     cardinality.
//
// All middleware use the standard func(http.Handler) http.Handler shape and
// are installed with chi's Use.
package middleware
