// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

/*
Package metrics provides Prometheus metrics collection and export for observability.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Completion pipeline runs, neighbor set sizes and inferred features
  - Catalog size and reloads
  - Text-generation requests and circuit breaker state
  - Advice cache hit/miss rates

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8088/metrics

# Usage

All metrics are registered with the default registry through promauto on
package initialization. Record them through the helper functions:

	metrics.RecordAPIRequest("GET", "/api/v1/venues", "200", time.Since(start))
	metrics.RecordPipelineRun(time.Since(start), err)
*/
package metrics
