package ports

import (
	"context"
	"time"

	"github.com/fairlens/fairlens/internal/domain"
)

// MetricsCollector abstracts metrics collection for decision processing.
// Implementations might use Prometheus, StatsD, or other monitoring
// systems. The interface keeps the engine decoupled from any specific
// metrics backend.
type MetricsCollector interface {
	// RecordLatency records the duration of an operation.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric by the given value.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets a gauge metric to the given value.
	RecordGauge(metric string, value float64, labels map[string]string)
}

// ChatCompleter abstracts a chat-completion backend used to turn decisions
// into narrative explanations. Implementations apply their own timeouts
// and rate limits; the core engine never blocks on them.
type ChatCompleter interface {
	// Complete sends a prompt and returns the generated text.
	// The opts map carries provider-specific parameters such as
	// temperature or max_tokens.
	Complete(ctx context.Context, prompt string, opts map[string]any) (string, error)
}

// DecisionStore holds assembled decisions for retrieval by the glue layer.
// The demo ships an in-memory implementation; durability is explicitly out
// of scope.
type DecisionStore interface {
	// Put stores a decision, overwriting any previous decision with the
	// same ID.
	Put(decision domain.Decision)

	// Get returns the decision with the given ID, or
	// domain.ErrUnknownDecision when absent.
	Get(id string) (domain.Decision, error)

	// List returns all stored decisions in insertion order.
	List() []domain.Decision
}

// DecisionProcessor produces one decision per (application, framework)
// pair. It is the seam where cross-cutting middleware such as tracing
// wraps the decision service.
type DecisionProcessor interface {
	// Process evaluates the record under the named framework and returns
	// the assembled decision.
	Process(ctx context.Context, rec domain.Record, framework string) (domain.Decision, error)
}
