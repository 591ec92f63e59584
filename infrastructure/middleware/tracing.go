package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.DecisionProcessor = (*TracingProcessor)(nil)

// tracerName identifies this instrumentation library in exported spans.
const tracerName = "fairlens/decision-engine"

// TracingProcessor wraps a DecisionProcessor with OpenTelemetry tracing.
// It creates one span per processed decision, annotates it with the
// evaluation outcome, and records an event for non-compliant decisions.
type TracingProcessor struct {
	next ports.DecisionProcessor
}

// NewTracingProcessor wraps the given processor with tracing.
func NewTracingProcessor(next ports.DecisionProcessor) *TracingProcessor {
	return &TracingProcessor{next: next}
}

// Process implements the DecisionProcessor interface, delegating to the
// wrapped processor inside a span.
func (p *TracingProcessor) Process(ctx context.Context, rec domain.Record, framework string) (domain.Decision, error) {
	applicationID, _ := domain.Get(rec, domain.KeyApplicationID)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "DecisionService.Process",
		trace.WithAttributes(
			attribute.String("application.id", applicationID),
			attribute.String("compliance.framework", framework),
		))
	defer span.End()

	decision, err := p.next.Process(ctx, rec, framework)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return domain.Decision{}, err
	}

	span.SetAttributes(
		attribute.String("decision.id", decision.ID),
		attribute.Float64("trust.score", decision.Trust.OverallScore),
		attribute.Float64("compliance.percentage", decision.Compliance.CompliancePercentage),
		attribute.Bool("compliance.compliant", decision.Compliance.Compliant),
	)
	if !decision.Compliance.Compliant {
		span.AddEvent("decision.noncompliant", trace.WithAttributes(
			attribute.Int("compliance.failed_requirements", len(decision.Compliance.NonCompliant)),
		))
	}
	span.SetStatus(codes.Ok, "")
	return decision, nil
}
