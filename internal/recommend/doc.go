// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package recommend ties the feature-inference core to a venue catalog.
//
// # Architecture
//
// Engine holds the current catalog snapshot and the scoring policy. From
// them it answers per-venue queries and runs the completion pipeline:
//
//   - themes.Extractor derives review themes per venue
//   - algorithms.Scorer compares venue pairs
//   - algorithms.Finder selects each venue's neighbor set
//   - algorithms.Inferer votes missing feature flags from the neighbors
//
// Complete applies the last three to every venue and returns a Report. The
// advisor (Recommend and Refine) hands venue summaries and the Report to a
// text Generator, or to a deterministic offline composer when no generator
// is configured or generation fails.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger,
//	    recommend.WithGenerator(client),
//	    recommend.WithCache(store),
//	)
//	if err := engine.Reload("hotel_data.json"); err != nil {
//	    return err
//	}
//	report, err := engine.Complete(ctx)
//	rec, err := engine.Refine(ctx, "quiet mountain lodge", "")
//
// # Thread Safety
//
// The catalog snapshot is swapped atomically by Reload and SetCatalog. Every
// operation reads one snapshot from start to finish, so a reload never
// changes the result of a computation already in flight.
package recommend
