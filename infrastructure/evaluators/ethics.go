package evaluators

import (
	"fmt"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

var _ ports.Factor = (*EthicsFactor)(nil)

// Blend ratios for the ethical considerations factor.
const (
	fairnessBlend = 0.6
	biasBlend     = 0.4
)

// uncommonPurposes lists loan purposes that historically attract skewed
// treatment. The list is illustrative, not derived from any dataset.
var uncommonPurposes = map[string]bool{
	"wedding":  true,
	"vacation": true,
	"moving":   true,
	"medical":  true,
}

// knownOwnership enumerates the housing statuses the fairness rules were
// designed around.
var knownOwnership = map[string]bool{
	"MORTGAGE": true,
	"RENT":     true,
	"OWN":      true,
}

// FairnessEvaluator checks whether the offered loan terms are fair
// relative to the applicant's profile.
type FairnessEvaluator struct{}

// Evaluate starts from a base fairness score and deducts for interest
// rates out of line with the grade, loan amounts large relative to
// income, and DTI treated inconsistently with the grade.
func (FairnessEvaluator) Evaluate(rec domain.Record) float64 {
	score := 80.0

	grade, _ := domain.Get(rec, domain.KeyGrade)
	rate, _ := domain.Get(rec, domain.KeyInterestRate)

	switch {
	case grade == "A" && rate > 10:
		score -= 20
	case grade == "B" && rate > 15:
		score -= 15
	case grade == "C" && rate > 20:
		score -= 10
	}

	amount, _ := domain.Get(rec, domain.KeyLoanAmount)
	income, _ := domain.Get(rec, domain.KeyAnnualIncome)
	if income > 0 {
		ratio := amount / income
		if ratio > 1.0 {
			score -= 15
		} else if ratio > 0.5 {
			score -= 5
		}
	}

	dti, _ := domain.Get(rec, domain.KeyDTI)
	if dti > 40 && (grade == "A" || grade == "B") {
		score -= 15
	}

	return clamp(score)
}

// BiasEvaluator looks for indicators that the application would be
// treated differently for reasons unrelated to creditworthiness.
type BiasEvaluator struct{}

// Evaluate starts from a perfect score and deducts for housing statuses
// outside the modeled set, short employment history, and uncommon loan
// purposes.
func (BiasEvaluator) Evaluate(rec domain.Record) float64 {
	score := 100.0

	ownership, _ := domain.Get(rec, domain.KeyHomeOwnership)
	if !knownOwnership[ownership] {
		score -= 15
	}

	if employment, _ := domain.Get(rec, domain.KeyEmploymentLength); employment < 2 {
		score -= 10
	}

	purpose, _ := domain.Get(rec, domain.KeyPurpose)
	if uncommonPurposes[purpose] {
		score -= 15
	}

	return clamp(score)
}

// EthicsFactor blends fairness and bias detection into one ethical
// considerations score.
type EthicsFactor struct {
	baseFactor
	fairness FairnessEvaluator
	bias     BiasEvaluator
}

// NewEthicsFactor creates an ethical considerations factor with the given
// overall weight.
func NewEthicsFactor(weight float64) *EthicsFactor {
	return &EthicsFactor{
		baseFactor: baseFactor{
			id:     FactorEthics,
			name:   "Ethical Considerations",
			weight: weight,
		},
	}
}

// Evaluate scores the record and records an explanation classifying
// fairness and residual bias into qualitative buckets.
func (f *EthicsFactor) Evaluate(rec domain.Record) (float64, error) {
	fairness := f.fairness.Evaluate(rec)
	bias := f.bias.Evaluate(rec)

	score := fairness*fairnessBlend + bias*biasBlend

	f.record(score, map[string]float64{
		"fairness":       fairness,
		"bias_detection": bias,
	}, fmt.Sprintf("Ethical considerations score is %.1f/100, with %s fairness and %s potential bias",
		score,
		band(fairness, "high", "moderate", "low"),
		band(bias, "minimal", "moderate", "significant")))

	return score, nil
}
