// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/cache"
	"github.com/tomtom215/staywise/internal/geo"
	"github.com/tomtom215/staywise/internal/metrics"
	"github.com/tomtom215/staywise/internal/models"
	"github.com/tomtom215/staywise/internal/recommend/algorithms"
	"github.com/tomtom215/staywise/internal/recommend/themes"
)

// gridCellKm sizes the spatial index cells.
const gridCellKm = 50

// Generator produces free-text answers from a system and a user message.
// llm.Client implements it.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
	Model() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithGenerator sets the text generator used by Recommend and Refine.
func WithGenerator(g Generator) Option {
	return func(e *Engine) {
		e.generator = g
	}
}

// WithCache sets the store for generated text.
func WithCache(s cache.Store) Option {
	return func(e *Engine) {
		e.cache = s
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// Engine answers similarity, neighbor and inference queries over the
// current catalog. It is safe for concurrent use.
type Engine struct {
	cfg    *Config
	logger zerolog.Logger

	extractor *themes.Extractor
	scorer    *algorithms.Scorer
	finder    *algorithms.Finder
	inferer   *algorithms.Inferer

	snap atomic.Pointer[snapshot]

	generator Generator
	cache     cache.Store
	now       func() time.Time
}

// snapshot is one immutable catalog generation.
type snapshot struct {
	catalog *models.Catalog
	grid    *geo.Grid
	order   map[string]int
}

func newSnapshot(c *models.Catalog) *snapshot {
	s := &snapshot{
		catalog: c,
		grid:    geo.NewGrid(gridCellKm),
		order:   make(map[string]int, c.Len()),
	}
	for i, v := range c.Venues() {
		s.order[v.ID] = i
		s.grid.Insert(v.ID, v.Coordinates.Lat, v.Coordinates.Lng)
	}
	return s
}

// NewEngine creates an engine with no catalog. A nil cfg means
// DefaultConfig.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewEngine(cfg *Config, logger zerolog.Logger, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	extractor, err := themes.NewExtractor(cfg.vocabulary(), cfg.Themes.MinMentions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	scorer := algorithms.NewScorer(cfg.scorerConfig(), extractor)

	e := &Engine{
		cfg:       cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		extractor: extractor,
		scorer:    scorer,
		finder:    algorithms.NewFinder(cfg.finderConfig(), scorer),
		inferer:   algorithms.NewInferer(cfg.infererConfig()),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Config returns a copy of the engine's policy.
func (e *Engine) Config() *Config {
	return e.cfg.Clone()
}

// Extractor returns the engine's theme extractor.
func (e *Engine) Extractor() *themes.Extractor {
	return e.extractor
}

// HasGenerator reports whether a text generator is configured.
func (e *Engine) HasGenerator() bool {
	return e.generator != nil
}

// SetCatalog atomically replaces the catalog.
func (e *Engine) SetCatalog(c *models.Catalog) {
	if c == nil {
		return
	}
	e.snap.Store(newSnapshot(c))
	metrics.CatalogVenues.Set(float64(c.Len()))
}

// Reload loads the catalog at path and swaps it in. On failure the current
// catalog stays in place.
func (e *Engine) Reload(path string) error {
	c, err := models.LoadCatalog(path)
	if err != nil {
		metrics.RecordCatalogReload(0, err)
		e.logger.Error().Err(err).Str("path", path).Msg("Catalog reload failed, keeping current catalog")
		return err
	}

	prev := e.Catalog()
	e.SetCatalog(c)
	metrics.RecordCatalogReload(c.Len(), nil)

	event := e.logger.Info().Str("path", path).Int("venues", c.Len()).Str("version", c.Version())
	if prev != nil {
		event = event.Str("previous_version", prev.Version())
	}
	event.Msg("Catalog loaded")
	return nil
}

// Catalog returns the current catalog, or nil.
func (e *Engine) Catalog() *models.Catalog {
	s := e.snap.Load()
	if s == nil {
		return nil
	}
	return s.catalog
}

// Ready reports whether a catalog is loaded.
func (e *Engine) Ready() bool {
	return e.snap.Load() != nil
}

func (e *Engine) current() (*snapshot, error) {
	s := e.snap.Load()
	if s == nil {
		return nil, ErrNoCatalog
	}
	return s, nil
}

func (s *snapshot) venue(id string) (*models.Venue, error) {
	v, ok := s.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrVenueNotFound, id)
	}
	return v, nil
}

// Venue returns the venue with the given id.
func (e *Engine) Venue(id string) (*models.Venue, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.venue(id)
}

// ThemeReport explains a venue's theme set.
type ThemeReport struct {
	VenueID     string         `json:"venue_id"`
	Name        string         `json:"name"`
	Themes      []string       `json:"themes"`
	Counts      map[string]int `json:"counts"`
	MinMentions int            `json:"min_mentions"`
	ReviewCount int            `json:"review_count"`
}

// Themes returns the theme set of a venue with per-theme mention counts.
func (e *Engine) Themes(id string) (*ThemeReport, error) {
	v, err := e.Venue(id)
	if err != nil {
		return nil, err
	}
	return &ThemeReport{
		VenueID:     v.ID,
		Name:        v.Name,
		Themes:      e.extractor.Themes(v),
		Counts:      e.extractor.Counts(v.Reviews),
		MinMentions: e.extractor.MinMentions(),
		ReviewCount: v.ReviewCount(),
	}, nil
}

// Neighbors returns the neighbor set of a venue.
func (e *Engine) Neighbors(id string) ([]algorithms.Neighbor, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	target, err := s.venue(id)
	if err != nil {
		return nil, err
	}
	return s.neighbors(e.finder, target), nil
}

// neighbors runs finder over the venues the grid places within the radius,
// in catalog order. The grid keeps points at exactly the radius and the
// finder drops them, so the result equals a scan of the whole catalog.
func (s *snapshot) neighbors(finder *algorithms.Finder, target *models.Venue) []algorithms.Neighbor {
	lat, lng := target.Coordinates.Lat, target.Coordinates.Lng
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return []algorithms.Neighbor{}
	}

	hits := s.grid.Nearby(lat, lng, finder.Config().RadiusKm)
	idx := make([]int, 0, len(hits))
	for _, h := range hits {
		if i, ok := s.order[h.ID]; ok {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)

	venues := s.catalog.Venues()
	candidates := make([]*models.Venue, len(idx))
	for k, i := range idx {
		candidates[k] = venues[i]
	}
	return finder.Find(target, candidates)
}

// Similarity returns the similarity breakdown of two venues.
func (e *Engine) Similarity(a, b string) (algorithms.Breakdown, error) {
	s, err := e.current()
	if err != nil {
		return algorithms.Breakdown{}, err
	}
	va, err := s.venue(a)
	if err != nil {
		return algorithms.Breakdown{}, err
	}
	vb, err := s.venue(b)
	if err != nil {
		return algorithms.Breakdown{}, err
	}
	return e.scorer.Breakdown(va, vb), nil
}

// NearbyVenue is a proximity query result.
type NearbyVenue struct {
	VenueID    string  `json:"venue_id"`
	Name       string  `json:"name"`
	DistanceKm float64 `json:"distance_km"`
}

// Nearby returns the venues within radiusKm of a point, nearest first.
// Equal distances keep catalog order.
func (e *Engine) Nearby(lat, lng, radiusKm float64) ([]NearbyVenue, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	hits := s.grid.Nearby(lat, lng, radiusKm)
	out := make([]NearbyVenue, 0, len(hits))
	for _, h := range hits {
		v, ok := s.catalog.Get(h.ID)
		if !ok {
			continue
		}
		out = append(out, NearbyVenue{VenueID: v.ID, Name: v.Name, DistanceKm: h.DistanceKm})
	}
	return out, nil
}

// Summary is the condensed view of a venue handed to the text generator.
type Summary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	StarRating  any            `json:"star_rating"`
	PriceRange  string         `json:"price_range"`
	Amenities   []string       `json:"amenities"`
	ReviewCount int            `json:"review_count"`
	KeyThemes   []string       `json:"key_themes"`
	Tags        map[string]any `json:"tags"`
}

// notAvailable stands in for a missing star rating or price range.
const notAvailable = "N/A"

func summarize(v *models.Venue, keyThemes []string) Summary {
	s := Summary{
		ID:          v.ID,
		Name:        v.Name,
		Location:    v.Address,
		StarRating:  notAvailable,
		PriceRange:  notAvailable,
		Amenities:   v.Tags.Amenities,
		ReviewCount: v.ReviewCount(),
		KeyThemes:   keyThemes,
		Tags:        v.Tags.Map(),
	}
	if v.Tags.StarRating != 0 {
		s.StarRating = v.Tags.StarRating
	}
	if v.Tags.PriceRange != "" {
		s.PriceRange = v.Tags.PriceRange
	}
	if s.Amenities == nil {
		s.Amenities = []string{}
	}
	return s
}

// Summaries returns a summary of every venue, in catalog order.
func (e *Engine) Summaries() ([]Summary, error) {
	s, err := e.current()
	if err != nil {
		return nil, err
	}
	return s.summaries(e.extractor), nil
}

func (s *snapshot) summaries(source algorithms.ThemeSource) []Summary {
	out := make([]Summary, 0, s.catalog.Len())
	for _, v := range s.catalog.Venues() {
		out = append(out, summarize(v, source.Themes(v)))
	}
	return out
}
