// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/staywise/internal/cache"
	"github.com/tomtom215/staywise/internal/config"
)

const testCatalog = `{"hotels": [
  {"id": "h1", "name": "Lakeside Inn", "coordinates": {"lat": 46.0, "lng": 8.9},
   "tags": {"star_rating": 4, "price_range": "$$", "amenities": ["spa"]}},
  {"id": "h2", "name": "Shore Lodge", "coordinates": {"lat": 46.01, "lng": 8.91},
   "tags": {"star_rating": 4, "price_range": "$$", "amenities": ["spa"], "lake_view": true}}
]}`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotel_data.json")
	if err := os.WriteFile(path, []byte(testCatalog), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInitEngine_Offline(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = writeCatalog(t)

	c, err := initEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("initEngine() error = %v", err)
	}
	defer c.Close()

	if c.Engine.HasGenerator() {
		t.Error("engine has a generator without an API key")
	}
	if !c.Engine.Ready() || c.Engine.Catalog().Len() != 2 {
		t.Errorf("catalog not loaded")
	}
	if _, ok := c.Store.(*cache.Memory); !ok {
		t.Errorf("store = %T, want *cache.Memory", c.Store)
	}
}

func TestInitEngine_Options(t *testing.T) {
	t.Run("configured key enables generation", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Path = writeCatalog(t)
		cfg.LLM.APIKey = "sk-test"

		c, err := initEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("initEngine() error = %v", err)
		}
		defer c.Close()
		if !c.Engine.HasGenerator() {
			t.Error("engine has no generator")
		}
	})

	t.Run("zero ttl disables the cache", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Path = writeCatalog(t)
		cfg.Advisor.CacheTTL = 0

		c, err := initEngine(cfg, zerolog.Nop())
		if err != nil {
			t.Fatalf("initEngine() error = %v", err)
		}
		if c.Store != nil {
			t.Errorf("store = %T, want nil", c.Store)
		}
		if err := c.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	t.Run("missing catalog fails", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Path = filepath.Join(t.TempDir(), "missing.json")
		if _, err := initEngine(cfg, zerolog.Nop()); err == nil || !strings.Contains(err.Error(), "load catalog") {
			t.Errorf("initEngine() error = %v, want load catalog failure", err)
		}
	})

	t.Run("unknown cache backend fails", func(t *testing.T) {
		cfg := config.Default()
		cfg.Catalog.Path = writeCatalog(t)
		cfg.Cache.Backend = "memcached"
		if _, err := initEngine(cfg, zerolog.Nop()); !errors.Is(err, cache.ErrUnknownBackend) {
			t.Errorf("initEngine() error = %v, want ErrUnknownBackend", err)
		}
	})
}

func TestNewHTTPServer(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = writeCatalog(t)
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 9999

	c, err := initEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("initEngine() error = %v", err)
	}
	defer c.Close()

	srv := newHTTPServer(cfg, c, zerolog.Nop())
	if srv.Addr != "127.0.0.1:9999" {
		t.Errorf("Addr = %q", srv.Addr)
	}
	if srv.WriteTimeout <= cfg.Server.Timeout || srv.ReadHeaderTimeout != 10*time.Second {
		t.Errorf("timeouts: write %v read header %v", srv.WriteTimeout, srv.ReadHeaderTimeout)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/venues/h1/neighbors", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"venue_id":"h2"`) {
		t.Errorf("neighbors: %d %s", rec.Code, rec.Body.String())
	}
}
