package evaluators

import (
	"fmt"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

var _ ports.Factor = (*RegulatoryAlignmentFactor)(nil)

// Blend ratios for the regulatory alignment factor.
const (
	frameworkFitBlend  = 0.7
	documentationBlend = 0.3
)

// DefaultFramework is assumed when no framework identifier was injected
// into the record.
const DefaultFramework = "EU_AI_ACT"

// FrameworkFitEvaluator scores how well the application profile aligns
// with the emphasis of the regulatory framework it is evaluated under.
// It branches on the framework identifier injected into the record by the
// trust evaluator.
type FrameworkFitEvaluator struct{}

// Evaluate starts from a base alignment score and applies
// framework-specific adjustments: the EU AI Act path rewards transparent
// risk profiles, the FINRA path rewards clean delinquency history and low
// leverage, and the GDPR path assumes proper consent.
func (FrameworkFitEvaluator) Evaluate(rec domain.Record) float64 {
	framework, ok := domain.Get(rec, domain.KeyFramework)
	if !ok {
		framework = DefaultFramework
	}

	score := 70.0

	switch framework {
	case "EU_AI_ACT":
		grade, _ := domain.Get(rec, domain.KeyGrade)
		switch grade {
		case "A", "B":
			score += 15
		case "D", "E":
			score -= 10
		}

		dti, _ := domain.Get(rec, domain.KeyDTI)
		if dti < 20 {
			score += 10
		} else if dti > 35 {
			score -= 15
		}

	case "FINRA":
		delinq, _ := domain.Get(rec, domain.KeyDelinquencies)
		if delinq == 0 {
			score += 15
		} else if delinq > 2 {
			score -= 20
		}

		dti, _ := domain.Get(rec, domain.KeyDTI)
		if dti < 25 {
			score += 10
		} else if dti > 40 {
			score -= 15
		}

	case "GDPR":
		score += 10
	}

	return clamp(score)
}

// DocumentationEvaluator scores documentation quality using field
// completeness as a proxy for the presence of supporting paperwork.
type DocumentationEvaluator struct{}

// Evaluate starts from a base documentation score and adjusts by the
// fraction of required fields populated.
func (DocumentationEvaluator) Evaluate(rec domain.Record) float64 {
	score := 65.0

	present := 0
	for _, field := range domain.RequiredFields {
		if rec.Has(field) {
			present++
		}
	}
	completeness := float64(present) / float64(len(domain.RequiredFields))

	if completeness > 0.9 {
		score += 25
	} else if completeness > 0.7 {
		score += 15
	} else if completeness < 0.5 {
		score -= 20
	}

	return clamp(score)
}

// RegulatoryAlignmentFactor blends framework fit and documentation
// quality into one alignment score.
type RegulatoryAlignmentFactor struct {
	baseFactor
	frameworkFit  FrameworkFitEvaluator
	documentation DocumentationEvaluator
}

// NewRegulatoryAlignmentFactor creates a regulatory alignment factor with
// the given overall weight.
func NewRegulatoryAlignmentFactor(weight float64) *RegulatoryAlignmentFactor {
	return &RegulatoryAlignmentFactor{
		baseFactor: baseFactor{
			id:     FactorRegulatoryAlignment,
			name:   "Regulatory Alignment",
			weight: weight,
		},
	}
}

// Evaluate scores the record and records an explanation naming the
// framework the alignment was measured against.
func (f *RegulatoryAlignmentFactor) Evaluate(rec domain.Record) (float64, error) {
	frameworkFit := f.frameworkFit.Evaluate(rec)
	documentation := f.documentation.Evaluate(rec)

	score := frameworkFit*frameworkFitBlend + documentation*documentationBlend

	framework, ok := domain.Get(rec, domain.KeyFramework)
	if !ok {
		framework = DefaultFramework
	}

	f.record(score, map[string]float64{
		"framework_compliance": frameworkFit,
		"documentation":        documentation,
	}, fmt.Sprintf("Regulatory alignment score is %.1f/100 for %s, with %s framework compliance and %s documentation",
		score, framework,
		band(frameworkFit, "strong", "moderate", "weak"),
		band(documentation, "thorough", "adequate", "insufficient")))

	return score, nil
}
