package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// stubFactor returns a fixed score regardless of the record, letting
// tests control aggregation inputs exactly.
type stubFactor struct {
	id     string
	weight float64
	score  float64
	err    error

	evaluated bool
	seen      domain.Record
}

func (f *stubFactor) ID() string      { return f.id }
func (f *stubFactor) Name() string    { return f.id }
func (f *stubFactor) Weight() float64 { return f.weight }

func (f *stubFactor) Evaluate(rec domain.Record) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.evaluated = true
	f.seen = rec
	return f.score, nil
}

func (f *stubFactor) Explanation() (domain.Explanation, error) {
	if !f.evaluated {
		return domain.Explanation{}, domain.ErrNotEvaluated
	}
	return domain.Explanation{Factor: f.id, Score: f.score}, nil
}

// stubConfig builds a FactorConfig whose factory returns the given
// factor, ignoring the weight the evaluator passes in.
func stubConfig(factor *stubFactor) FactorConfig {
	return FactorConfig{
		Factory: func(float64) ports.Factor { return factor },
		Weight:  factor.weight,
	}
}

func TestNewTrustEvaluator_Validation(t *testing.T) {
	_, err := NewTrustEvaluator(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = NewTrustEvaluator([]FactorConfig{{Factory: nil, Weight: 1}})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)

	_, err = NewTrustEvaluator([]FactorConfig{stubConfig(&stubFactor{id: "f", weight: 0})})
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestTrustEvaluator_WeightedMean(t *testing.T) {
	evaluator, err := NewTrustEvaluator([]FactorConfig{
		stubConfig(&stubFactor{id: "a", weight: 1.0, score: 90}),
		stubConfig(&stubFactor{id: "b", weight: 3.0, score: 70}),
	})
	require.NoError(t, err)

	report, err := evaluator.Evaluate(domain.NewRecord(), "FINRA")
	require.NoError(t, err)

	// (90*1 + 70*3) / 4 = 75.
	assert.InDelta(t, 75.0, report.OverallScore, 1e-9)
	assert.Equal(t, "FINRA", report.Framework)
	assert.True(t, report.Compliant, "75 meets FINRA's 70 threshold")

	require.Len(t, report.Factors, 2)
	assert.InDelta(t, 90.0, report.FactorScoreOf("a"), 1e-9)
	assert.InDelta(t, 70.0, report.FactorScoreOf("b"), 1e-9)
}

func TestTrustEvaluator_UniformScoresIgnoreWeights(t *testing.T) {
	// When every factor scores the same, the weighted mean equals that
	// score no matter how the weights are skewed.
	evaluator, err := NewTrustEvaluator([]FactorConfig{
		stubConfig(&stubFactor{id: "a", weight: 0.1, score: 80}),
		stubConfig(&stubFactor{id: "b", weight: 5.0, score: 80}),
		stubConfig(&stubFactor{id: "c", weight: 2.3, score: 80}),
	})
	require.NoError(t, err)

	report, err := evaluator.Evaluate(domain.NewRecord(), "EU_AI_ACT")
	require.NoError(t, err)

	assert.InDelta(t, 80.0, report.OverallScore, 1e-9)
	assert.True(t, report.Compliant, "80 meets the EU AI Act's 80 threshold")
}

func TestTrustEvaluator_Thresholds(t *testing.T) {
	tests := []struct {
		framework string
		score     float64
		compliant bool
	}{
		{"EU_AI_ACT", 79.9, false},
		{"EU_AI_ACT", 80.0, true},
		{"FCRA", 60.0, true},
		{"GLBA", 74.0, false},
		{"UNLISTED", 65.0, true},
		{"UNLISTED", 64.9, false},
	}

	for _, tt := range tests {
		t.Run(tt.framework, func(t *testing.T) {
			evaluator, err := NewTrustEvaluator([]FactorConfig{
				stubConfig(&stubFactor{id: "a", weight: 1.0, score: tt.score}),
			})
			require.NoError(t, err)

			report, err := evaluator.Evaluate(domain.NewRecord(), tt.framework)
			require.NoError(t, err)
			assert.Equal(t, tt.compliant, report.Compliant)
		})
	}
}

func TestTrustEvaluator_ThresholdOverrides(t *testing.T) {
	evaluator, err := NewTrustEvaluator(
		[]FactorConfig{stubConfig(&stubFactor{id: "a", weight: 1.0, score: 75})},
		WithTrustThresholds(map[string]float64{"EU_AI_ACT": 75}),
	)
	require.NoError(t, err)

	report, err := evaluator.Evaluate(domain.NewRecord(), "EU_AI_ACT")
	require.NoError(t, err)
	assert.True(t, report.Compliant, "override lowers the EU AI Act bar to 75")
	assert.InDelta(t, 75.0, evaluator.TrustThreshold("EU_AI_ACT"), 1e-9)
}

func TestTrustEvaluator_InjectsFrameworkWithoutMutatingCaller(t *testing.T) {
	factor := &stubFactor{id: "a", weight: 1.0, score: 50}
	evaluator, err := NewTrustEvaluator([]FactorConfig{stubConfig(factor)})
	require.NoError(t, err)

	rec := domain.RecordFromMap(map[string]any{"id": "LC_1001"})
	_, err = evaluator.Evaluate(rec, "FINRA")
	require.NoError(t, err)

	injected, ok := domain.Get(factor.seen, domain.KeyFramework)
	require.True(t, ok, "factors see the framework identifier")
	assert.Equal(t, "FINRA", injected)

	assert.False(t, rec.Has("regulatory_framework"), "caller's record is untouched")
}

func TestTrustEvaluator_FactorErrorAborts(t *testing.T) {
	boom := errors.New("scoring failed")
	evaluator, err := NewTrustEvaluator([]FactorConfig{
		stubConfig(&stubFactor{id: "a", weight: 1.0, err: boom}),
	})
	require.NoError(t, err)

	_, err = evaluator.Evaluate(domain.NewRecord(), "FINRA")
	assert.ErrorIs(t, err, boom)
}

func TestDefaultFactorConfigs(t *testing.T) {
	configs := DefaultFactorConfigs()
	require.Len(t, configs, 4)

	seen := make(map[string]bool)
	for _, cfg := range configs {
		factor := cfg.Factory(cfg.Weight)
		seen[factor.ID()] = true
		assert.InDelta(t, cfg.Weight, factor.Weight(), 1e-9)
	}
	assert.True(t, seen["data_quality"])
	assert.True(t, seen["model_confidence"])
	assert.True(t, seen["regulatory_alignment"])
	assert.True(t, seen["ethical_considerations"])
}
