package evaluators

import (
	"fmt"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

var _ ports.Factor = (*ModelConfidenceFactor)(nil)

// Blend ratios for the model confidence factor.
const (
	certaintyBlend  = 0.6
	robustnessBlend = 0.4
)

// commonPurposes are the loan purposes with the deepest training history,
// which makes model behavior on them more predictable.
var commonPurposes = map[string]bool{
	"debt_consolidation": true,
	"credit_card":        true,
	"home_improvement":   true,
}

// PredictionCertaintyEvaluator approximates how certain the scoring model
// would be about this application. Real systems would use prediction
// probabilities; this is a deterministic heuristic over the application
// profile.
type PredictionCertaintyEvaluator struct{}

// Evaluate starts from a base certainty and adjusts for grade, extreme
// metrics, and employment history length.
func (PredictionCertaintyEvaluator) Evaluate(rec domain.Record) float64 {
	score := 70.0

	grade, _ := domain.Get(rec, domain.KeyGrade)
	switch grade {
	case "A", "B":
		score += 15
	case "D", "E":
		score -= 10
	}

	if dti, _ := domain.Get(rec, domain.KeyDTI); dti > 35 {
		score -= 15
	}

	if amount, _ := domain.Get(rec, domain.KeyLoanAmount); amount > 35000 {
		score -= 10
	}

	employment, _ := domain.Get(rec, domain.KeyEmploymentLength)
	if employment > 5 {
		score += 10
	} else if employment < 1 {
		score -= 15
	}

	return clamp(score)
}

// ModelRobustnessEvaluator approximates how well the model generalizes to
// this application type, keyed on purpose, housing status, and
// delinquency history.
type ModelRobustnessEvaluator struct{}

// Evaluate starts from a base robustness and adjusts for how well
// represented the application's characteristics are.
func (ModelRobustnessEvaluator) Evaluate(rec domain.Record) float64 {
	score := 75.0

	purpose, _ := domain.Get(rec, domain.KeyPurpose)
	if commonPurposes[purpose] {
		score += 15
	} else {
		score -= 10
	}

	ownership, _ := domain.Get(rec, domain.KeyHomeOwnership)
	switch ownership {
	case "MORTGAGE", "RENT":
		score += 10
	case "OWN":
		score += 5
	default:
		score -= 10
	}

	if delinq, _ := domain.Get(rec, domain.KeyDelinquencies); delinq > 2 {
		score -= 15
	}

	return clamp(score)
}

// ModelConfidenceFactor blends prediction certainty and model robustness
// into one confidence score.
type ModelConfidenceFactor struct {
	baseFactor
	certainty  PredictionCertaintyEvaluator
	robustness ModelRobustnessEvaluator
}

// NewModelConfidenceFactor creates a model confidence factor with the
// given overall weight.
func NewModelConfidenceFactor(weight float64) *ModelConfidenceFactor {
	return &ModelConfidenceFactor{
		baseFactor: baseFactor{
			id:     FactorModelConfidence,
			name:   "Model Confidence",
			weight: weight,
		},
	}
}

// Evaluate scores the record and records an explanation classifying both
// sub-scores into qualitative buckets.
func (f *ModelConfidenceFactor) Evaluate(rec domain.Record) (float64, error) {
	certainty := f.certainty.Evaluate(rec)
	robustness := f.robustness.Evaluate(rec)

	score := certainty*certaintyBlend + robustness*robustnessBlend

	f.record(score, map[string]float64{
		"prediction_certainty": certainty,
		"model_robustness":     robustness,
	}, fmt.Sprintf("Model confidence score is %.1f/100, with %s prediction certainty and %s model robustness",
		score,
		band(certainty, "high", "moderate", "low"),
		band(robustness, "high", "moderate", "low")))

	return score, nil
}
