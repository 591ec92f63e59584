// Package evaluators provides the sub-evaluators and composite trust
// factors that score loan applications for the compliance decisioning
// engine. Every scorer is a pure function of the record: missing fields
// contribute neutrally and outputs are clamped to [0, 100].
//
// The numeric constants in this package are demo-grade heuristics carried
// over from the reference scoring rules. They set the direction and rough
// magnitude of each adjustment; they are not derived from any regulatory
// source.
package evaluators

// Factor identifiers used in framework mappings and trust reports.
const (
	FactorDataQuality         = "data_quality"
	FactorModelConfidence     = "model_confidence"
	FactorRegulatoryAlignment = "regulatory_alignment"
	FactorEthics              = "ethical_considerations"
)

// Default factor weights for the overall trust score.
const (
	DefaultDataQualityWeight         = 1.0
	DefaultModelConfidenceWeight     = 0.8
	DefaultRegulatoryAlignmentWeight = 1.2
	DefaultEthicsWeight              = 1.0
)

// clamp bounds a score to the valid [0, 100] range.
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// band classifies a sub-score into one of three qualitative buckets for
// explanation summaries: above 70, above 50, or at most 50.
func band(score float64, high, moderate, low string) string {
	switch {
	case score > 70:
		return high
	case score > 50:
		return moderate
	default:
		return low
	}
}
