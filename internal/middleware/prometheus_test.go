// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/staywise/internal/metrics"
)

func newMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/metrics-test/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func TestPrometheusMetrics_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	router := newMetricsRouter()
	ok := metrics.APIRequestsTotal.WithLabelValues("GET", "/metrics-test/venues/{id}", "200")
	notFound := metrics.APIRequestsTotal.WithLabelValues("GET", "/metrics-test/venues/{id}", "404")
	okBefore, nfBefore := testutil.ToFloat64(ok), testutil.ToFloat64(notFound)

	for _, id := range []string{"a", "b", "missing"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics-test/venues/"+id, nil))
	}

	if got := testutil.ToFloat64(ok) - okBefore; got != 2 {
		t.Errorf("200 count delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(notFound) - nfBefore; got != 1 {
		t.Errorf("404 count delta = %v, want 1", got)
	}
}

func TestPrometheusMetrics_Unmatched(t *testing.T) {
	t.Parallel()

	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	counter := metrics.APIRequestsTotal.WithLabelValues("DELETE", unmatchedRoute, "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/anything", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("unmatched count delta = %v, want 1", got)
	}
}

func TestStatusRecorder(t *testing.T) {
	t.Parallel()

	t.Run("default status", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		_, _ = rec.Write([]byte("hello"))
		if rec.status != http.StatusOK || rec.bytes != 5 {
			t.Errorf("status = %d, bytes = %d", rec.status, rec.bytes)
		}
	})

	t.Run("first status wins", func(t *testing.T) {
		t.Parallel()
		rec := newStatusRecorder(httptest.NewRecorder())
		rec.WriteHeader(http.StatusCreated)
		rec.WriteHeader(http.StatusInternalServerError)
		if rec.status != http.StatusCreated {
			t.Errorf("status = %d, want 201", rec.status)
		}
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()
		inner := httptest.NewRecorder()
		if newStatusRecorder(inner).Unwrap() != inner {
			t.Error("Unwrap() did not return the wrapped writer")
		}
	})
}
