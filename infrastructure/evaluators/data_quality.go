package evaluators

import (
	"fmt"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

var _ ports.Factor = (*DataQualityFactor)(nil)

// Blend ratios for the data quality factor.
const (
	completenessBlend = 0.4
	consistencyBlend  = 0.3
	accuracyBlend     = 0.3
)

// CompletenessEvaluator scores how many of the required application
// fields are present with non-nil values.
type CompletenessEvaluator struct{}

// Evaluate returns 100 times the fraction of required fields populated.
func (CompletenessEvaluator) Evaluate(rec domain.Record) float64 {
	present := 0
	for _, field := range domain.RequiredFields {
		if rec.Has(field) {
			present++
		}
	}
	return float64(present) / float64(len(domain.RequiredFields)) * 100
}

// ConsistencyEvaluator checks the application's fields against each other
// and deducts fixed penalties for combinations that should not co-occur.
type ConsistencyEvaluator struct{}

// Evaluate starts from a perfect score and deducts for inconsistencies:
// a top-grade application asking for an outsized amount (or a bottom-grade
// one asking for a trivial amount), and a reported DTI far from the ratio
// implied by the loan amount and income.
func (ConsistencyEvaluator) Evaluate(rec domain.Record) float64 {
	score := 100.0

	amount, _ := domain.Get(rec, domain.KeyLoanAmount)
	grade, _ := domain.Get(rec, domain.KeyGrade)

	if grade == "A" && amount > 30000 {
		score -= 20
	} else if grade == "E" && amount < 5000 {
		score -= 20
	}

	dti, _ := domain.Get(rec, domain.KeyDTI)
	income, _ := domain.Get(rec, domain.KeyAnnualIncome)

	if income > 0 {
		expected := amount / income * 100
		diff := dti - expected
		if diff < 0 {
			diff = -diff
		}
		if diff > 20 {
			score -= 30
		}
	}

	return clamp(score)
}

// AccuracyEvaluator checks that numeric fields fall inside plausible
// ranges. Each out-of-range field deducts independently.
type AccuracyEvaluator struct{}

// Evaluate deducts a fixed penalty per implausible field: loan amount
// outside (0, 100000], interest rate outside (0, 30], annual income
// outside (0, 500000], and DTI outside (0, 100].
func (AccuracyEvaluator) Evaluate(rec domain.Record) float64 {
	score := 100.0

	amount, _ := domain.Get(rec, domain.KeyLoanAmount)
	rate, _ := domain.Get(rec, domain.KeyInterestRate)
	income, _ := domain.Get(rec, domain.KeyAnnualIncome)
	dti, _ := domain.Get(rec, domain.KeyDTI)

	if amount <= 0 || amount > 100000 {
		score -= 20
	}
	if rate <= 0 || rate > 30 {
		score -= 20
	}
	if income <= 0 || income > 500000 {
		score -= 20
	}
	if dti <= 0 || dti > 100 {
		score -= 20
	}

	return clamp(score)
}

// DataQualityFactor blends completeness, consistency, and accuracy into
// one data quality score.
type DataQualityFactor struct {
	baseFactor
	completeness CompletenessEvaluator
	consistency  ConsistencyEvaluator
	accuracy     AccuracyEvaluator
}

// NewDataQualityFactor creates a data quality factor with the given
// overall weight.
func NewDataQualityFactor(weight float64) *DataQualityFactor {
	return &DataQualityFactor{
		baseFactor: baseFactor{
			id:     FactorDataQuality,
			name:   "Data Quality",
			weight: weight,
		},
	}
}

// Evaluate scores the record and records an explanation naming the
// strongest sub-component.
func (f *DataQualityFactor) Evaluate(rec domain.Record) (float64, error) {
	completeness := f.completeness.Evaluate(rec)
	consistency := f.consistency.Evaluate(rec)
	accuracy := f.accuracy.Evaluate(rec)

	score := completeness*completenessBlend +
		consistency*consistencyBlend +
		accuracy*accuracyBlend

	strength := "accuracy"
	if completeness > 70 {
		strength = "completeness"
	} else if consistency > 70 {
		strength = "consistency"
	}

	f.record(score, map[string]float64{
		"completeness": completeness,
		"consistency":  consistency,
		"accuracy":     accuracy,
	}, fmt.Sprintf("Data quality score is %.1f/100, with strengths in %s", score, strength))

	return score, nil
}
