// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/staywise/internal/logging"
)

// Recommend answers POST /recommendations with the basic pass.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.generationTimeout)
	defer cancel()

	rec, err := h.engine.Recommend(ctx, req.Preferences)
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	logging.Ctx(ctx).Info().
		Str("mode", string(rec.Mode)).
		Str("source", string(rec.Source)).
		Msg("Recommendation served")
	rw.SuccessWithMeta(rec, &APIMeta{CatalogVersion: rec.CatalogVersion})
}

// Refine answers POST /recommendations/refine. When initial is empty the
// basic pass runs first.
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RefineRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.generationTimeout)
	defer cancel()

	rec, err := h.engine.Refine(ctx, req.Preferences, req.Initial)
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	logging.Ctx(ctx).Info().
		Str("mode", string(rec.Mode)).
		Str("source", string(rec.Source)).
		Int("venues", len(rec.Report)).
		Msg("Recommendation served")
	rw.SuccessWithMeta(rec, &APIMeta{CatalogVersion: rec.CatalogVersion})
}
