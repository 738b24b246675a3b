// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.With("service", "http").WithGroup("event").Info("service started",
		"attempt", 2,
		"elapsed", time.Second,
		"ok", true,
		"err", errors.New("boom"),
	)

	out := buf.String()
	for _, want := range []string{
		`"service":"http"`,
		`"event.attempt":2`,
		`"event.ok":true`,
		`"event.err":"boom"`,
		`"message":"service started"`,
		`"level":"info"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
		{slog.LevelError + 4, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.level); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(zerolog.New(nil).Level(zerolog.WarnLevel))
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info enabled on a warn logger")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error disabled on a warn logger")
	}
}

func TestNewFanoutLogger(t *testing.T) {
	var zbuf, jbuf bytes.Buffer
	SetLogger(NewTestLogger(&zbuf))
	defer Init(DefaultConfig())

	NewFanoutLogger(&jbuf).Warn("service terminated", "service", "catalog-watch")

	for name, out := range map[string]string{"zerolog": zbuf.String(), "json": jbuf.String()} {
		if !strings.Contains(out, "service terminated") || !strings.Contains(out, "catalog-watch") {
			t.Errorf("%s output missing record: %s", name, out)
		}
	}
}

func TestNewEventLogger(t *testing.T) {
	logger, closer, err := NewEventLogger("")
	if err != nil || logger == nil {
		t.Fatalf("NewEventLogger(\"\") = %v, %v", logger, err)
	}
	if err := closer.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}

	path := filepath.Join(t.TempDir(), "events.jsonl")
	logger, closer, err = NewEventLogger(path)
	if err != nil {
		t.Fatalf("NewEventLogger() error = %v", err)
	}
	logger.Info("tree started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"msg":"tree started"`) {
		t.Errorf("event file = %s", data)
	}

	if _, _, err := NewEventLogger(filepath.Join(t.TempDir(), "missing", "events.jsonl")); err == nil {
		t.Error("expected error for unwritable path")
	}
}
