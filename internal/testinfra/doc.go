// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package testinfra provides test infrastructure for unit and integration tests.
//
// # Mock Completion Server
//
// MockCompletionServer is an OpenAI-compatible chat completions endpoint
// backed by httptest. It records every request and can be scripted to fail,
// which lets text-generation clients be tested without network access:
//
//	srv := testinfra.NewMockCompletionServer(t)
//	defer srv.Close()
//	srv.Reply("1. Alpine Lodge")
//	srv.FailNext(2, http.StatusServiceUnavailable)
//
// # Redis Container
//
// Integration tests (build tag "integration") can start a real Redis server
// with testcontainers-go:
//
//	//go:build integration
//
//	func TestRedisStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    rc, err := testinfra.NewRedisContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, rc)
//	    // connect to rc.Addr
//	}
//
// Run integration tests with:
//
//	go test -tags integration ./...
package testinfra
