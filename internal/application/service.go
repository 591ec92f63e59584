package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairlens/fairlens/infrastructure/evaluators"
	"github.com/fairlens/fairlens/infrastructure/journal"
	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.DecisionProcessor = (*DecisionService)(nil)

// DecisionService orchestrates a full compliance decision: trust
// evaluation, framework compliance check, decision assembly with a
// verification checksum, and bookkeeping in the store, journal, and
// timeline.
type DecisionService struct {
	evaluator *TrustEvaluator
	registry  *FrameworkRegistry
	store     ports.DecisionStore

	journal  *journal.Log
	timeline *journal.Timeline
	metrics  ports.MetricsCollector
	logger   *zap.Logger

	defaultFramework string
}

// ServiceOption configures optional collaborators of a DecisionService.
type ServiceOption func(*DecisionService)

// WithJournal records analysis steps into the given log.
func WithJournal(log *journal.Log) ServiceOption {
	return func(s *DecisionService) { s.journal = log }
}

// WithTimeline records compliance events onto the given timeline.
func WithTimeline(timeline *journal.Timeline) ServiceOption {
	return func(s *DecisionService) { s.timeline = timeline }
}

// WithMetrics reports processing metrics to the given collector.
func WithMetrics(metrics ports.MetricsCollector) ServiceOption {
	return func(s *DecisionService) { s.metrics = metrics }
}

// WithLogger sets the structured logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *DecisionService) { s.logger = logger }
}

// WithDefaultFramework sets the framework applied when a processing
// request names none.
func WithDefaultFramework(name string) ServiceOption {
	return func(s *DecisionService) {
		if name != "" {
			s.defaultFramework = name
		}
	}
}

// NewDecisionService creates a decision service over the given
// evaluator, framework registry, and decision store.
func NewDecisionService(
	evaluator *TrustEvaluator,
	registry *FrameworkRegistry,
	store ports.DecisionStore,
	opts ...ServiceOption,
) (*DecisionService, error) {
	if evaluator == nil || registry == nil || store == nil {
		return nil, fmt.Errorf("%w: evaluator, registry, and store are required", domain.ErrInvalidConfiguration)
	}

	s := &DecisionService{
		evaluator:        evaluator,
		registry:         registry,
		store:            store,
		logger:           zap.NewNop(),
		defaultFramework: evaluators.DefaultFramework,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Process evaluates the record under the named framework and assembles
// a checksummed decision. An empty framework name falls back to the
// default framework; the record must carry an application ID.
func (s *DecisionService) Process(ctx context.Context, rec domain.Record, framework string) (domain.Decision, error) {
	if err := ctx.Err(); err != nil {
		return domain.Decision{}, err
	}

	applicationID, ok := domain.Get(rec, domain.KeyApplicationID)
	if !ok || applicationID == "" {
		return domain.Decision{}, fmt.Errorf("%w: application record has no id", domain.ErrInvalidConfiguration)
	}
	if framework == "" {
		framework = s.defaultFramework
	}

	start := time.Now()

	trust, err := s.evaluator.Evaluate(rec, framework)
	if err != nil {
		return domain.Decision{}, domain.NewFrameworkError(framework, "trust evaluation", err)
	}
	for _, factor := range trust.Factors {
		s.record(journal.Entry{
			Step:          factor.FactorID,
			ApplicationID: applicationID,
			Framework:     framework,
			Message:       factor.Explanation.Summary,
			Details: map[string]any{
				"score":      factor.Score,
				"weight":     factor.Weight,
				"components": factor.Explanation.Components,
			},
		})
	}
	s.record(journal.Entry{
		Step:          journal.StepTrustEvaluation,
		ApplicationID: applicationID,
		Framework:     framework,
		Message:       fmt.Sprintf("Trust evaluation for application %s: score %.1f", applicationID, trust.OverallScore),
		Details: map[string]any{
			"trust_score": trust.OverallScore,
			"compliant":   trust.Compliant,
		},
	})

	compliance, err := s.registry.EvaluateCompliance(framework, trust)
	if err != nil {
		return domain.Decision{}, domain.NewFrameworkError(framework, "compliance evaluation", err)
	}
	s.record(journal.Entry{
		Step:          journal.StepComplianceCheck,
		ApplicationID: applicationID,
		Framework:     framework,
		Message: fmt.Sprintf("Compliance check for application %s: %.1f%% of requirements met",
			applicationID, compliance.CompliancePercentage),
		Details: map[string]any{
			"compliance_percentage": compliance.CompliancePercentage,
			"compliant":             compliance.Compliant,
		},
	})

	decision := domain.Decision{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		Framework:     framework,
		CreatedAt:     time.Now().UTC(),
		Trust:         trust,
		Compliance:    compliance,
		Application:   rec.Map(),
	}
	checksum, err := decision.ComputeChecksum()
	if err != nil {
		return domain.Decision{}, fmt.Errorf("computing decision checksum: %w", err)
	}
	decision.Checksum = checksum

	s.store.Put(decision)

	status := "NON-COMPLIANT"
	if compliance.Compliant {
		status = "COMPLIANT"
	}
	s.record(journal.Entry{
		Step:          journal.StepDecisionAssembled,
		ApplicationID: applicationID,
		Framework:     framework,
		Message: fmt.Sprintf("Compliance decision for application %s: %s with trust score %.1f",
			applicationID, status, trust.OverallScore),
		Details: map[string]any{
			"decision_id": decision.ID,
			"compliant":   compliance.Compliant,
			"trust_score": trust.OverallScore,
		},
	})

	if s.timeline != nil {
		factorScores := make(map[string]float64, len(trust.Factors))
		for id, factor := range trust.Factors {
			factorScores[id] = factor.Score
		}
		if _, err := s.timeline.AddEvent(applicationID, journal.EventEvaluation, map[string]any{
			"decision_id":      decision.ID,
			"framework":        framework,
			"compliance_score": compliance.CompliancePercentage,
			"trust_score":      trust.OverallScore,
			"compliant":        compliance.Compliant,
			"factor_scores":    factorScores,
		}); err != nil {
			s.logger.Warn("recording timeline event failed",
				zap.String("application_id", applicationID),
				zap.Error(err))
		}
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		labels := map[string]string{"framework": framework}
		s.metrics.RecordLatency("process_decision", elapsed, labels)
		s.metrics.RecordCounter("decisions_processed", 1, map[string]string{
			"framework": framework,
			"compliant": fmt.Sprintf("%t", compliance.Compliant),
		})
		s.metrics.RecordGauge("trust_score", trust.OverallScore, labels)
	}

	s.logger.Info("decision processed",
		zap.String("application_id", applicationID),
		zap.String("framework", framework),
		zap.String("decision_id", decision.ID),
		zap.Float64("trust_score", trust.OverallScore),
		zap.Float64("compliance_percentage", compliance.CompliancePercentage),
		zap.Bool("compliant", compliance.Compliant),
		zap.Duration("elapsed", elapsed))

	return decision, nil
}

// Decision returns the stored decision with the given ID.
func (s *DecisionService) Decision(id string) (domain.Decision, error) {
	return s.store.Get(id)
}

// Decisions returns all stored decisions in processing order.
func (s *DecisionService) Decisions() []domain.Decision {
	return s.store.List()
}

// Verify recomputes the stored decision's checksum and reports whether
// it still matches. The outcome is recorded on the application's
// timeline.
func (s *DecisionService) Verify(id string) (bool, error) {
	decision, err := s.store.Get(id)
	if err != nil {
		return false, err
	}

	verified, err := decision.Verify()
	if err != nil {
		return false, err
	}

	if s.timeline != nil {
		if _, err := s.timeline.AddEvent(decision.ApplicationID, journal.EventVerification, map[string]any{
			"decision_id": id,
			"verified":    verified,
		}); err != nil {
			s.logger.Warn("recording verification event failed",
				zap.String("decision_id", id),
				zap.Error(err))
		}
	}
	if s.metrics != nil {
		s.metrics.RecordCounter("decisions_verified", 1, map[string]string{
			"verified": fmt.Sprintf("%t", verified),
		})
	}
	return verified, nil
}

// record writes a journal entry when a journal is configured.
func (s *DecisionService) record(entry journal.Entry) {
	if s.journal != nil {
		s.journal.Record(entry)
	}
}
