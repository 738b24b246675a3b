// Staywise - Venue Similarity and Feature Inference
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/staywise

// Package llm is the text-generation client used for recommendation prose.
//
// Client speaks the OpenAI chat-completions protocol through go-openai, so any
// compatible provider works; the default is DeepSeek. Each Generate call is
// rate limited, retried on transient failures and guarded by a circuit
// breaker. The reply is returned as opaque text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/tomtom215/staywise/internal/logging"
	"github.com/tomtom215/staywise/internal/metrics"
)

// PlaceholderAPIKey is the key shipped in sample configuration. It is treated
// the same as an empty key.
const PlaceholderAPIKey = "YOUR_DEEPSEEK_API_KEY_HERE"

var (
	// ErrNotConfigured is returned by New when no usable API key is set.
	ErrNotConfigured = errors.New("llm: api key not configured")

	// ErrGeneration wraps every failure of a Generate call.
	ErrGeneration = errors.New("llm: generation failed")
)

// Config configures a Client.
type Config struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32

	// Timeout bounds a single attempt.
	Timeout time.Duration

	// MaxRetries is the number of attempts after the first. Retries happen
	// only for transport errors, 429 and 5xx responses.
	MaxRetries   int
	RetryBackoff time.Duration

	// RequestsPerSecond <= 0 disables rate limiting.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the DeepSeek defaults. The API key is left empty.
func DefaultConfig() Config {
	return Config{
		Provider:          "deepseek",
		BaseURL:           "https://api.deepseek.com",
		Model:             "deepseek-chat",
		MaxTokens:         2000,
		Temperature:       0.7,
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryBackoff:      2 * time.Second,
		RequestsPerSecond: 3,
		Burst:             5,
	}
}

// Configured reports whether the config carries a real API key.
func (c Config) Configured() bool {
	key := strings.TrimSpace(c.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

// Client generates chat completions.
type Client struct {
	api     *openai.Client
	cfg     Config
	limiter *rate.Limiter
	breaker *breaker
	sleep   func(ctx context.Context, d time.Duration) error
}

// New creates a client. It returns ErrNotConfigured when the key is empty or
// the placeholder.
func New(cfg Config) (*Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/") + "/v1"
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout + 5*time.Second}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	name := "llm-" + cfg.Provider
	if cfg.Provider == "" {
		name = "llm"
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		cfg:     cfg,
		limiter: rate.NewLimiter(limit, burst),
		breaker: newBreaker(name),
		sleep:   sleepContext,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate sends one system and one user message and returns the reply text.
// Every error is wrapped with ErrGeneration.
func (c *Client) Generate(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, system, user)
	if err != nil {
		metrics.RecordLLMRequest(outcome(err), time.Since(start))
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	metrics.RecordLLMRequest("success", time.Since(start))
	return text, nil
}

func (c *Client) generate(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.backoff(attempt)); err != nil {
				return "", err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limit wait: %w", err)
		}

		text, err := c.breaker.execute(func() (string, error) {
			return c.attempt(ctx, req)
		})
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !retryable(ctx, err) {
			return "", err
		}
		logging.Ctx(ctx).Warn().Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", c.cfg.MaxRetries+1).
			Msg("Completion attempt failed")
	}
	return "", fmt.Errorf("after %d attempts: %w", c.cfg.MaxRetries+1, lastErr)
}

func (c *Client) attempt(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(attemptCtx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

var errNoChoices = errors.New("response contained no choices")

// backoff grows linearly with the attempt number plus up to half a step of
// jitter.
func (c *Client) backoff(attempt int) time.Duration {
	step := c.cfg.RetryBackoff
	if step <= 0 {
		return 0
	}
	return time.Duration(attempt)*step + rand.N(step/2+1) //nolint:gosec // jitter
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// statusCode extracts the HTTP status of a failed call, or 0 when the call
// never produced a response.
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil || isBreakerRejection(err) {
		return false
	}
	switch code := statusCode(err); {
	case code == 0:
		return !errors.Is(err, errNoChoices)
	case code == http.StatusTooManyRequests:
		return true
	default:
		return code >= 500
	}
}

// clientFault reports errors caused by the request itself. They do not count
// against the breaker.
func clientFault(err error) bool {
	code := statusCode(err)
	return code >= 400 && code < 500 && code != http.StatusTooManyRequests
}

func outcome(err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case isBreakerRejection(err):
		return "rejected"
	default:
		return "error"
	}
}
