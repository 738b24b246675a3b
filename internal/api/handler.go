// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/staywise/internal/llm"
	"github.com/tomtom215/staywise/internal/logging"
	"github.com/tomtom215/staywise/internal/models"
	"github.com/tomtom215/staywise/internal/recommend"
	"github.com/tomtom215/staywise/internal/recommend/algorithms"
)

// DefaultGenerationTimeout bounds a recommendation request.
const DefaultGenerationTimeout = 30 * time.Second

// Engine is the part of recommend.Engine the handlers use.
type Engine interface {
	Ready() bool
	Catalog() *models.Catalog
	Summaries() ([]recommend.Summary, error)
	Venue(id string) (*models.Venue, error)
	Themes(id string) (*recommend.ThemeReport, error)
	Neighbors(id string) ([]algorithms.Neighbor, error)
	Nearby(lat, lng, radiusKm float64) ([]recommend.NearbyVenue, error)
	Similarity(a, b string) (algorithms.Breakdown, error)
	Complete(ctx context.Context) (recommend.Report, error)
	Recommend(ctx context.Context, preferences string) (*recommend.Recommendation, error)
	Refine(ctx context.Context, preferences, initial string) (*recommend.Recommendation, error)
}

// Handler serves the venue API.
type Handler struct {
	engine            Engine
	startTime         time.Time
	generationTimeout time.Duration
	version           string
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithGenerationTimeout overrides DefaultGenerationTimeout.
func WithGenerationTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) {
		if d > 0 {
			h.generationTimeout = d
		}
	}
}

// WithVersion sets the version reported by the liveness probe.
func WithVersion(v string) HandlerOption {
	return func(h *Handler) { h.version = v }
}

// NewHandler creates a handler over engine.
func NewHandler(engine Engine, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine:            engine,
		startTime:         time.Now(),
		generationTimeout: DefaultGenerationTimeout,
		version:           "dev",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// catalogMeta returns response metadata naming the current catalog.
func (h *Handler) catalogMeta(count int) *APIMeta {
	return &APIMeta{CatalogVersion: h.engine.Catalog().Version(), Count: &count}
}

// respondEngineError maps engine and generation errors to HTTP responses.
func respondEngineError(rw *ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommend.ErrVenueNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrNoCatalog):
		rw.ServiceUnavailable("No venue catalog is loaded")
	case errors.Is(err, context.DeadlineExceeded):
		rw.Timeout("Recommendation timed out")
	case errors.Is(err, context.Canceled):
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled")
	case errors.Is(err, llm.ErrGeneration):
		rw.ExternalServiceError("text generation", err)
	default:
		logging.Ctx(rw.r.Context()).Error().Err(err).Msg("Request failed")
		rw.InternalError("Internal server error")
	}
}
