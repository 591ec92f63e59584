package explain

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// rateLimitedModel enforces a token bucket rate limit on requests,
// keeping the client inside provider rate limits.
type rateLimitedModel struct {
	next    ChatModel
	limiter *rate.Limiter
}

// RateLimitMiddleware creates middleware that enforces rate limiting
// using a token bucket. The limit sets sustained requests per second;
// burst allows temporary spikes above it.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)
	return func(next ChatModel) ChatModel {
		return &rateLimitedModel{next: next, limiter: limiter}
	}
}

// DoRequest blocks until a token is available, then forwards the
// request.
func (m *rateLimitedModel) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", 0, 0, fmt.Errorf("rate limit: %w", err)
	}
	return m.next.DoRequest(ctx, prompt, opts)
}

// Model returns the model name from the wrapped implementation.
func (m *rateLimitedModel) Model() string { return m.next.Model() }

// timeoutModel bounds each request with a deadline so explanations never
// hang the caller indefinitely.
type timeoutModel struct {
	next    ChatModel
	timeout time.Duration
}

// TimeoutMiddleware creates middleware that enforces a per-request
// timeout.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next ChatModel) ChatModel {
		return &timeoutModel{next: next, timeout: timeout}
	}
}

// DoRequest executes the request with a timeout context.
func (m *timeoutModel) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.DoRequest(ctx, prompt, opts)
}

// Model returns the model name from the wrapped implementation.
func (m *timeoutModel) Model() string { return m.next.Model() }
