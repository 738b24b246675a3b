// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

package testinfra

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

// CompletionCapture represents a captured chat completion request.
type CompletionCapture struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

// CompletionMessage is a chat message as sent by a client.
type CompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest is the decoded body of a captured request.
type CompletionRequest struct {
	Model       string              `json:"model"`
	Messages    []CompletionMessage `json:"messages"`
	MaxTokens   int                 `json:"max_tokens"`
	Temperature float32             `json:"temperature"`
}

// MockCompletionServer provides an OpenAI-compatible chat completions
// endpoint for tests. Requests to any path other than /v1/chat/completions
// receive 404.
type MockCompletionServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	captures []CompletionCapture
	reply    string
	failures []int
}

// NewMockCompletionServer creates and starts a mock completion server.
// It is closed automatically when the test ends.
func NewMockCompletionServer(t *testing.T) *MockCompletionServer {
	t.Helper()

	m := &MockCompletionServer{reply: "mock completion"}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

func (m *MockCompletionServer) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body.Close()

	m.mu.Lock()
	m.captures = append(m.captures, CompletionCapture{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: r.Header.Clone(),
		Body:    body,
	})
	var status int
	if len(m.failures) > 0 {
		status, m.failures = m.failures[0], m.failures[1:]
	}
	reply := m.reply
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path != "/v1/chat/completions" {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"message":"not found","type":"invalid_request_error"}}`)
		return
	}
	if status != 0 {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":{"message":"scripted failure %d","type":"server_error"}}`, status)
		return
	}

	resp := map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "deepseek-chat",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]string{"role": "assistant", "content": reply},
			"finish_reason": "stop",
		}},
		"usage": map[string]int{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// URL returns the server's base URL, without the /v1 suffix.
func (m *MockCompletionServer) URL() string {
	return m.Server.URL
}

// Close shuts down the server.
func (m *MockCompletionServer) Close() {
	m.Server.Close()
}

// Reply sets the assistant content returned by successful responses.
func (m *MockCompletionServer) Reply(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reply = content
}

// FailNext makes the next n requests fail with status.
func (m *MockCompletionServer) FailNext(n, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.failures = append(m.failures, status)
	}
}

// Captures returns all captured requests.
func (m *MockCompletionServer) Captures() []CompletionCapture {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionCapture, len(m.captures))
	copy(out, m.captures)
	return out
}

// Requests decodes all captured request bodies.
func (m *MockCompletionServer) Requests() []CompletionRequest {
	captures := m.Captures()
	out := make([]CompletionRequest, 0, len(captures))
	for _, c := range captures {
		var req CompletionRequest
		if err := json.Unmarshal(c.Body, &req); err == nil {
			out = append(out, req)
		}
	}
	return out
}

// LastRequest returns the most recent decoded request.
func (m *MockCompletionServer) LastRequest() (CompletionRequest, bool) {
	reqs := m.Requests()
	if len(reqs) == 0 {
		return CompletionRequest{}, false
	}
	return reqs[len(reqs)-1], true
}

// Bearer returns the bearer token sent with the most recent request.
func (m *MockCompletionServer) Bearer() string {
	captures := m.Captures()
	if len(captures) == 0 {
		return ""
	}
	return strings.TrimPrefix(captures[len(captures)-1].Headers.Get("Authorization"), "Bearer ")
}
