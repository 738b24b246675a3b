// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/staywise/internal/logging"
	"github.com/tomtom215/staywise/internal/recommend"
	"github.com/tomtom215/staywise/internal/recommend/algorithms"
)

type fakeCompleter struct {
	ready atomic.Bool
	runs  atomic.Int32
	err   error
}

func (f *fakeCompleter) Ready() bool { return f.ready.Load() }

func (f *fakeCompleter) Complete(context.Context) (recommend.Report, error) {
	f.runs.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return recommend.Report{
		"peak": {Name: "Peak Hotel", Inference: algorithms.Inference{
			Features:   []string{"near_mountain", "spa"},
			Confidence: map[string]float64{"near_mountain": 78.1, "spa": 61},
			Novel:      []string{"near_mountain"},
		}},
		"plains": {Name: "Plains Motor Inn", Inference: algorithms.EmptyInference()},
	}, nil
}

func TestCompletionAuditService_Disabled(t *testing.T) {
	svc := NewCompletionAuditService(&fakeCompleter{}, CompletionAuditConfig{}, zerolog.Nop())
	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() = %v, want suture.ErrDoNotRestart", err)
	}
}

func TestCompletionAuditService_RunsOnSchedule(t *testing.T) {
	var buf bytes.Buffer
	engine := &fakeCompleter{}
	engine.ready.Store(true)

	svc := NewCompletionAuditService(engine,
		CompletionAuditConfig{Interval: 20 * time.Millisecond, RunOnStart: true},
		logging.NewTestLogger(&buf))
	svc.ran = make(chan recommend.Report, 8)

	if svc.config.Timeout != 20*time.Millisecond {
		t.Errorf("Timeout = %v, want the interval", svc.config.Timeout)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	for i := 0; i < 2; i++ {
		select {
		case report := <-svc.ran:
			if len(report) != 2 {
				t.Errorf("report has %d venues", len(report))
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("run %d did not finish", i)
		}
	}
	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Completion audit finished",
		`"inferred_features":2`,
		`"novel_features":1`,
		`"coverage":0.5`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}

func TestCompletionAuditService_SkipsAndFailures(t *testing.T) {
	t.Run("no catalog", func(t *testing.T) {
		engine := &fakeCompleter{}
		svc := NewCompletionAuditService(engine, CompletionAuditConfig{Interval: time.Hour}, zerolog.Nop())
		svc.audit(context.Background())
		if engine.runs.Load() != 0 {
			t.Errorf("runs = %d, want 0 without a catalog", engine.runs.Load())
		}
	})

	t.Run("pipeline error is logged", func(t *testing.T) {
		var buf bytes.Buffer
		engine := &fakeCompleter{err: errors.New("boom")}
		engine.ready.Store(true)
		svc := NewCompletionAuditService(engine, CompletionAuditConfig{Interval: time.Hour}, logging.NewTestLogger(&buf))
		svc.ran = make(chan recommend.Report, 1)

		svc.audit(context.Background())
		if engine.runs.Load() != 1 {
			t.Errorf("runs = %d, want 1", engine.runs.Load())
		}
		if !strings.Contains(buf.String(), "Completion audit failed") {
			t.Errorf("log = %s", buf.String())
		}
		if len(svc.ran) != 0 {
			t.Error("failed run was reported as finished")
		}
	})
}
