// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/staywise/internal/models"
)

// VenueDetail is the response of GET /venues/{id}.
type VenueDetail struct {
	*models.Venue
	Themes      []string       `json:"themes"`
	ThemeCounts map[string]int `json:"theme_counts"`
}

// ListVenues returns a summary of every venue in catalog order.
func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	summaries, err := h.engine.Summaries()
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	rw.SuccessWithMeta(summaries, h.catalogMeta(len(summaries)))
}

// GetVenue returns one venue with its review themes.
func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	id := chi.URLParam(r, "id")

	v, err := h.engine.Venue(id)
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	report, err := h.engine.Themes(id)
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	rw.Success(VenueDetail{Venue: v, Themes: report.Themes, ThemeCounts: report.Counts})
}

// VenueNeighbors returns the neighbor set of a venue.
func (h *Handler) VenueNeighbors(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	neighbors, err := h.engine.Neighbors(chi.URLParam(r, "id"))
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	rw.SuccessWithMeta(neighbors, h.catalogMeta(len(neighbors)))
}

// NearbyVenues returns the venues within radius_km of (lat, lng), nearest
// first.
func (h *Handler) NearbyVenues(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	req, err := parseNearbyRequest(r.URL.Query())
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if !validateRequest(rw, &req) {
		return
	}

	venues, err := h.engine.Nearby(*req.Lat, *req.Lng, req.RadiusKm)
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	rw.SuccessWithMeta(venues, h.catalogMeta(len(venues)))
}

// Similarity returns the similarity breakdown of venues a and b.
func (h *Handler) Similarity(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	q := r.URL.Query()
	req := SimilarityRequest{A: q.Get("a"), B: q.Get("b")}
	if !validateRequest(rw, &req) {
		return
	}

	breakdown, err := h.engine.Similarity(req.A, req.B)
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	rw.Success(map[string]interface{}{
		"a":         req.A,
		"b":         req.B,
		"breakdown": breakdown,
	})
}

// Completion runs the completion pipeline over the catalog.
func (h *Handler) Completion(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	report, err := h.engine.Complete(r.Context())
	if err != nil {
		respondEngineError(rw, err)
		return
	}
	rw.SuccessWithMeta(report, h.catalogMeta(len(report)))
}
