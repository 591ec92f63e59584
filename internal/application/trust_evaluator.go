package application

import (
	"fmt"

	"github.com/fairlens/fairlens/infrastructure/evaluators"
	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// trustThresholds maps framework identifiers to the minimum overall
// trust score the framework demands. Frameworks absent from the table
// use defaultTrustThreshold.
var trustThresholds = map[string]float64{
	"GDPR":      65,
	"FCRA":      60,
	"CCPA":      70,
	"GLBA":      75,
	"EU_AI_ACT": 80,
	"FINRA":     70,
}

// defaultTrustThreshold applies to frameworks without a dedicated entry
// in the threshold table.
const defaultTrustThreshold = 65

// FactorConfig pairs a factor factory with the weight its scores carry
// in the overall trust score.
type FactorConfig struct {
	Factory ports.FactorFactory
	Weight  float64
}

// DefaultFactorConfigs returns the four built-in trust factors at their
// default weights.
func DefaultFactorConfigs() []FactorConfig {
	return []FactorConfig{
		{Factory: func(w float64) ports.Factor { return evaluators.NewDataQualityFactor(w) }, Weight: evaluators.DefaultDataQualityWeight},
		{Factory: func(w float64) ports.Factor { return evaluators.NewModelConfidenceFactor(w) }, Weight: evaluators.DefaultModelConfidenceWeight},
		{Factory: func(w float64) ports.Factor { return evaluators.NewRegulatoryAlignmentFactor(w) }, Weight: evaluators.DefaultRegulatoryAlignmentWeight},
		{Factory: func(w float64) ports.Factor { return evaluators.NewEthicsFactor(w) }, Weight: evaluators.DefaultEthicsWeight},
	}
}

// TrustEvaluator computes the overall trust score for an application
// record as the weighted mean of its configured factors. Factories
// produce a fresh factor instance per evaluation, so a single evaluator
// is safe for concurrent use.
type TrustEvaluator struct {
	configs    []FactorConfig
	thresholds map[string]float64
}

// TrustOption configures optional behavior of a TrustEvaluator.
type TrustOption func(*TrustEvaluator)

// WithTrustThresholds overrides the minimum overall trust score for the
// given frameworks. Frameworks absent from the map keep the built-in
// defaults.
func WithTrustThresholds(overrides map[string]float64) TrustOption {
	return func(e *TrustEvaluator) {
		for framework, threshold := range overrides {
			e.thresholds[framework] = threshold
		}
	}
}

// NewTrustEvaluator creates a trust evaluator over the given factor
// configurations. An empty configuration is rejected.
func NewTrustEvaluator(configs []FactorConfig, opts ...TrustOption) (*TrustEvaluator, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("%w: at least one trust factor is required", domain.ErrInvalidConfiguration)
	}
	for i, cfg := range configs {
		if cfg.Factory == nil {
			return nil, fmt.Errorf("%w: factor config %d has no factory", domain.ErrInvalidConfiguration, i)
		}
		if cfg.Weight <= 0 {
			return nil, fmt.Errorf("%w: factor config %d has non-positive weight %.2f", domain.ErrInvalidConfiguration, i, cfg.Weight)
		}
	}
	thresholds := make(map[string]float64, len(trustThresholds))
	for framework, threshold := range trustThresholds {
		thresholds[framework] = threshold
	}

	e := &TrustEvaluator{configs: configs, thresholds: thresholds}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// TrustThreshold returns the minimum overall trust score required under
// the given framework.
func (e *TrustEvaluator) TrustThreshold(framework string) float64 {
	if threshold, ok := e.thresholds[framework]; ok {
		return threshold
	}
	return defaultTrustThreshold
}

// Evaluate scores the record under the given regulatory framework. The
// framework identifier is injected into the record so framework-aware
// factors can branch on it; the caller's record is not modified.
func (e *TrustEvaluator) Evaluate(rec domain.Record, framework string) (domain.TrustReport, error) {
	scoped := domain.With(rec, domain.KeyFramework, framework)

	factors := make(map[string]domain.FactorScore, len(e.configs))
	var weightedSum, totalWeight float64

	for _, cfg := range e.configs {
		factor := cfg.Factory(cfg.Weight)

		score, err := factor.Evaluate(scoped)
		if err != nil {
			return domain.TrustReport{}, fmt.Errorf("evaluating factor %s: %w", factor.ID(), err)
		}
		explanation, err := factor.Explanation()
		if err != nil {
			return domain.TrustReport{}, fmt.Errorf("explaining factor %s: %w", factor.ID(), err)
		}

		factors[factor.ID()] = domain.FactorScore{
			FactorID:    factor.ID(),
			Name:        factor.Name(),
			Score:       score,
			Weight:      factor.Weight(),
			Explanation: explanation,
		}
		weightedSum += score * factor.Weight()
		totalWeight += factor.Weight()
	}

	var overall float64
	if totalWeight > 0 {
		overall = weightedSum / totalWeight
	}

	return domain.TrustReport{
		OverallScore: overall,
		Framework:    framework,
		Factors:      factors,
		Compliant:    overall >= e.TrustThreshold(framework),
	}, nil
}
