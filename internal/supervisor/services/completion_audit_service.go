// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/staywise/internal/recommend"
)

// CompletionRunner runs the completion pipeline over the current catalog.
type CompletionRunner interface {
	Ready() bool
	Complete(ctx context.Context) (recommend.Report, error)
}

// CompletionAuditConfig configures a CompletionAuditService.
type CompletionAuditConfig struct {
	// Interval between runs. Zero disables the service.
	Interval time.Duration

	// RunOnStart runs once before the first tick.
	RunOnStart bool

	// Timeout bounds a single run. Default: Interval
	Timeout time.Duration
}

// CompletionAuditService runs the completion pipeline periodically and logs
// how much of the catalog it could complete. The pipeline itself records
// the run and coverage metrics.
type CompletionAuditService struct {
	engine CompletionRunner
	config CompletionAuditConfig
	logger zerolog.Logger
	name   string

	// ran receives every finished run's report; tests read it.
	ran chan recommend.Report
}

// NewCompletionAuditService creates an audit service.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewCompletionAuditService(engine CompletionRunner, cfg CompletionAuditConfig, logger zerolog.Logger) *CompletionAuditService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = cfg.Interval
	}
	return &CompletionAuditService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "completion-audit").Logger(),
		name:   "completion-audit",
	}
}

// Serve implements suture.Service. A zero interval returns
// suture.ErrDoNotRestart.
func (s *CompletionAuditService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("Completion audit disabled")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("Completion audit starting")
	if s.config.RunOnStart {
		s.audit(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.audit(ctx)
		}
	}
}

func (s *CompletionAuditService) audit(ctx context.Context) {
	if !s.engine.Ready() {
		s.logger.Debug().Msg("No catalog loaded, skipping completion audit")
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	report, err := s.engine.Complete(runCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("Completion audit failed")
		}
		return
	}

	var inferred, novel int
	for _, vi := range report {
		inferred += len(vi.Features)
		novel += len(vi.Novel)
	}
	s.logger.Info().
		Int("venues", len(report)).
		Int("inferred_features", inferred).
		Int("novel_features", novel).
		Float64("coverage", report.Coverage()).
		Dur("duration", time.Since(start)).
		Msg("Completion audit finished")

	if s.ran != nil {
		select {
		case s.ran <- report:
		default:
		}
	}
}

// String implements fmt.Stringer for suture events.
func (s *CompletionAuditService) String() string {
	return s.name
}
