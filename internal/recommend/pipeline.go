// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/tomtom215/staywise/internal/metrics"
	"github.com/tomtom215/staywise/internal/recommend/algorithms"
	"github.com/tomtom215/staywise/internal/recommend/themes"
)

// VenueInference is one venue's entry in a Report.
type VenueInference struct {
	Name string `json:"name"`
	algorithms.Inference
}

// Report maps venue id to the features inferred for it.
type Report map[string]VenueInference

// Coverage returns the share of venues with at least one inferred feature.
func (r Report) Coverage() float64 {
	if len(r) == 0 {
		return 0
	}
	var n int
	for _, vi := range r {
		if len(vi.Features) > 0 {
			n++
		}
	}
	return float64(n) / float64(len(r))
}

// Complete infers features for every venue in the catalog.
//
// Each venue's neighbors are drawn from the full catalog. Venues are
// processed on a bounded worker pool and results are placed by catalog
// index, so the report does not depend on scheduling. A canceled context
// aborts the run with ctx.Err().
func (e *Engine) Complete(ctx context.Context) (Report, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return e.complete(ctx, s)
}

func (e *Engine) complete(ctx context.Context, s *snapshot) (Report, error) {
	start := time.Now()

	finder := e.finder
	var memo *themes.Memo
	if e.cfg.Pipeline.MemoizeThemes {
		memo = themes.NewMemo(e.extractor)
		finder = finder.WithScorer(e.scorer.WithThemes(memo))
	}

	venues := s.catalog.Venues()
	results := make([]algorithms.Inference, len(venues))

	workers := e.cfg.Pipeline.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(venues) {
		workers = len(venues)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				target := venues[i]
				neighbors := s.neighbors(finder, target)
				results[i] = e.inferer.Infer(target, neighbors)
				metrics.RecordVenueInference(len(neighbors), len(results[i].Features))
			}
		}()
	}

	var runErr error
feed:
	for i := range venues {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if runErr == nil {
		runErr = ctx.Err()
	}
	metrics.RecordPipelineRun(time.Since(start), runErr)
	if runErr != nil {
		e.logger.Warn().Err(runErr).Msg("Completion run aborted")
		return nil, runErr
	}

	report := make(Report, len(venues))
	for i, v := range venues {
		report[v.ID] = VenueInference{Name: v.Name, Inference: results[i]}
	}
	metrics.CompletionCoverage.Set(report.Coverage())

	event := e.logger.Debug().
		Int("venues", len(venues)).
		Int("workers", workers).
		Dur("duration", time.Since(start))
	if memo != nil {
		hits, misses := memo.Stats()
		event = event.Int("theme_hits", hits).Int("theme_misses", misses)
	}
	event.Msg("Completion run finished")

	return report, nil
}
