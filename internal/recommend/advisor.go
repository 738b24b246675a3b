// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"context"
	"strings"
	"time"

	"github.com/tomtom215/staywise/internal/cache"
	"github.com/tomtom215/staywise/internal/logging"
)

// Mode selects the recommendation pass.
type Mode string

const (
	// ModeBasic recommends from venue summaries alone.
	ModeBasic Mode = "basic"

	// ModeRefined re-ranks an initial answer using the completion report.
	ModeRefined Mode = "refined"
)

// Source records where a recommendation's text came from.
type Source string

const (
	SourceLLM     Source = "llm"
	SourceOffline Source = "offline"
	SourceCache   Source = "cache"
)

// Recommendation is the answer to a preferences query.
type Recommendation struct {
	Mode           Mode      `json:"mode"`
	Preferences    string    `json:"preferences"`
	Text           string    `json:"text"`
	Source         Source    `json:"source"`
	Model          string    `json:"model,omitempty"`
	CatalogVersion string    `json:"catalog_version"`
	GeneratedAt    time.Time `json:"generated_at"`

	// Initial is the basic answer a refinement started from.
	Initial string `json:"initial,omitempty"`

	// Report is the completion report used by a refinement.
	Report Report `json:"report,omitempty"`

	// Warning explains a fallback to the offline composer.
	Warning string `json:"warning,omitempty"`
}

// Recommend runs the basic pass.
func (e *Engine) Recommend(ctx context.Context, preferences string) (*Recommendation, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return e.recommend(ctx, s, strings.TrimSpace(preferences))
}

func (e *Engine) recommend(ctx context.Context, s *snapshot, preferences string) (*Recommendation, error) {
	rec := e.newRecommendation(s, ModeBasic, preferences)

	build := func() (string, error) {
		return basicUserMessage(preferences, s.summaries(e.extractor))
	}
	offline := func() string {
		return e.composeOffline(s, ModeBasic, preferences, nil)
	}
	if err := e.advise(ctx, rec, basicSystemPrompt, build, offline); err != nil {
		return nil, err
	}
	return rec, nil
}

// Refine runs the refinement pass over initial. When initial is empty the
// basic pass runs first and its text is used.
func (e *Engine) Refine(ctx context.Context, preferences, initial string) (*Recommendation, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	preferences = strings.TrimSpace(preferences)
	initial = strings.TrimSpace(initial)

	if initial == "" {
		basic, err := e.recommend(ctx, s, preferences)
		if err != nil {
			return nil, err
		}
		initial = basic.Text
	}

	report, err := e.complete(ctx, s)
	if err != nil {
		return nil, err
	}

	rec := e.newRecommendation(s, ModeRefined, preferences)
	rec.Initial = initial
	rec.Report = report

	build := func() (string, error) {
		return refinedUserMessage(preferences, initial, report)
	}
	offline := func() string {
		return e.composeOffline(s, ModeRefined, preferences, report)
	}
	if err := e.advise(ctx, rec, refinedSystemPrompt, build, offline); err != nil {
		return nil, err
	}
	return rec, nil
}

func (e *Engine) newRecommendation(s *snapshot, mode Mode, preferences string) *Recommendation {
	return &Recommendation{
		Mode:           mode,
		Preferences:    preferences,
		CatalogVersion: s.catalog.Version(),
		GeneratedAt:    e.now().UTC(),
	}
}

// advise fills rec.Text from the cache, the generator or the offline
// composer, in that order. Only generated text is cached.
func (e *Engine) advise(ctx context.Context, rec *Recommendation, system string, build func() (string, error), offline func() string) error {
	if e.generator == nil {
		rec.Text, rec.Source = offline(), SourceOffline
		return nil
	}

	model := e.generator.Model()
	key := cache.Key("advice", string(rec.Mode), rec.Preferences, rec.Initial, rec.CatalogVersion, model)
	if text, ok := e.cached(ctx, key); ok {
		rec.Text, rec.Source, rec.Model = text, SourceCache, model
		return nil
	}

	user, err := build()
	if err != nil {
		return err
	}

	text, err := e.generator.Generate(ctx, system, user)
	if err != nil {
		if !e.cfg.Advisor.OfflineFallback || ctx.Err() != nil {
			return err
		}
		logging.Ctx(ctx).Warn().Err(err).Str("mode", string(rec.Mode)).Msg("Generation failed, answering offline")
		rec.Text, rec.Source = offline(), SourceOffline
		rec.Warning = "text generation unavailable; offline ranking used"
		return nil
	}

	rec.Text, rec.Source, rec.Model = text, SourceLLM, model
	e.store(ctx, key, text)
	return nil
}

func (e *Engine) cached(ctx context.Context, key string) (string, bool) {
	if e.cache == nil || e.cfg.Advisor.CacheTTL <= 0 {
		return "", false
	}
	text, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Advice cache read failed, bypassing")
		return "", false
	}
	return text, ok
}

func (e *Engine) store(ctx context.Context, key, text string) {
	if e.cache == nil || e.cfg.Advisor.CacheTTL <= 0 {
		return
	}
	if err := e.cache.Set(ctx, key, text, e.cfg.Advisor.CacheTTL); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("Advice cache write failed")
	}
}
