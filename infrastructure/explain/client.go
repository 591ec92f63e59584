// Package explain turns compliance decisions into natural language
// narratives using chat-completion providers. It abstracts
// provider-specific details behind a common interface with middleware
// support for rate limiting and timeouts, and degrades to a
// deterministic summary when no provider is available.
package explain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/fairlens/fairlens/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.ChatCompleter = (*Client)(nil)

// ChatModel is the low-level contract every chat provider implements.
// DoRequest returns the generated content along with input and output
// token counts.
type ChatModel interface {
	DoRequest(ctx context.Context, prompt string, opts map[string]any) (content string, tokensIn, tokensOut int, err error)

	// Model returns the model identifier requests are sent to.
	Model() string
}

// Middleware wraps a ChatModel with cross-cutting behavior such as rate
// limiting or timeouts.
type Middleware func(ChatModel) ChatModel

// Config configures a chat provider and the client middleware around it.
type Config struct {
	// Provider selects the registered provider factory: "openai",
	// "anthropic", or "google".
	Provider string `yaml:"provider"`

	// APIKey authenticates against the provider.
	APIKey string `yaml:"api_key"`

	// Model overrides the provider's default model when non-empty.
	Model string `yaml:"model"`

	// BaseURL overrides the provider's API endpoint when non-empty.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each request; zero disables the timeout
	// middleware.
	Timeout time.Duration `yaml:"timeout"`

	// RequestsPerSecond caps the sustained request rate; zero disables
	// the rate limit middleware.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst allows temporary spikes above the sustained rate.
	Burst int `yaml:"burst"`
}

// ProviderFactory constructs a ChatModel from configuration.
type ProviderFactory func(Config) (ChatModel, error)

var (
	factoryMu sync.RWMutex
	factories = make(map[string]ProviderFactory)
)

// RegisterProviderFactory registers a provider factory under a name.
// Providers self-register from their init functions.
func RegisterProviderFactory(name string, factory ProviderFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	factories[name] = factory
}

// NewChatModel constructs the provider named by the configuration.
func NewChatModel(config Config) (ChatModel, error) {
	factoryMu.RLock()
	factory, ok := factories[config.Provider]
	factoryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, config.Provider)
	}
	return factory(config)
}

// Client adapts a ChatModel, wrapped in the configured middleware, to
// the ChatCompleter port.
type Client struct {
	model ChatModel
}

// NewClient builds a provider from the configuration and wraps it with
// timeout and rate limit middleware as configured, then any extra
// middleware in the order given.
func NewClient(config Config, extra ...Middleware) (*Client, error) {
	model, err := NewChatModel(config)
	if err != nil {
		return nil, err
	}

	if config.Timeout > 0 {
		model = TimeoutMiddleware(config.Timeout)(model)
	}
	if config.RequestsPerSecond > 0 {
		burst := config.Burst
		if burst < 1 {
			burst = 1
		}
		model = RateLimitMiddleware(rate.Limit(config.RequestsPerSecond), burst)(model)
	}
	for _, mw := range extra {
		model = mw(model)
	}
	return &Client{model: model}, nil
}

// NewClientWithModel wraps an existing ChatModel directly, bypassing
// provider construction. Intended for tests and custom providers.
func NewClientWithModel(model ChatModel) *Client {
	return &Client{model: model}
}

// Complete implements the ChatCompleter port, discarding token counts.
func (c *Client) Complete(ctx context.Context, prompt string, opts map[string]any) (string, error) {
	content, _, _, err := c.model.DoRequest(ctx, prompt, opts)
	return content, err
}

// optString reads a string option with a default.
func optString(opts map[string]any, key, fallback string) string {
	if value, ok := opts[key].(string); ok && value != "" {
		return value
	}
	return fallback
}

// optInt reads an int option with a default, accepting float64 values
// that survive a JSON round trip.
func optInt(opts map[string]any, key string, fallback int) int {
	switch value := opts[key].(type) {
	case int:
		if value > 0 {
			return value
		}
	case float64:
		if value > 0 {
			return int(value)
		}
	}
	return fallback
}

// optFloat reads a float option. The second return reports presence.
func optFloat(opts map[string]any, key string) (float64, bool) {
	value, ok := opts[key].(float64)
	return value, ok
}
