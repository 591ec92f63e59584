package domain

// Explanation captures the structured reasoning behind a single trust
// factor score. It pairs the blended score with the named sub-component
// scores that produced it and a human-readable summary line.
type Explanation struct {
	// Factor is the display name of the trust factor.
	Factor string `json:"factor"`

	// Score is the blended 0-100 factor score being explained.
	Score float64 `json:"score"`

	// Components maps sub-evaluator names to their individual 0-100 scores.
	Components map[string]float64 `json:"components"`

	// Summary is a one-line qualitative description of the score.
	Summary string `json:"summary"`
}

// FactorScore holds one trust factor's contribution to an evaluation.
// Instances are created once per evaluation call and never mutated;
// re-evaluating a record produces fresh FactorScore values.
type FactorScore struct {
	// FactorID is the stable identifier used in framework mappings
	// (e.g. "data_quality").
	FactorID string `json:"factor_id"`

	// Name is the human-readable factor name (e.g. "Data Quality").
	Name string `json:"name"`

	// Score is the factor's blended score in [0, 100].
	Score float64 `json:"score"`

	// Weight is the factor's weight in the overall trust score.
	Weight float64 `json:"weight"`

	// Explanation describes how the score was derived.
	Explanation Explanation `json:"explanation"`
}

// TrustReport is the outcome of evaluating every trust factor against a
// loan application. OverallScore is the weighted mean of the factor
// scores; a zero total weight yields an OverallScore of exactly 0.
type TrustReport struct {
	// OverallScore is the weighted mean of all factor scores in [0, 100].
	OverallScore float64 `json:"overall_score"`

	// Framework is the regulatory framework identifier the evaluation
	// was performed under.
	Framework string `json:"regulatory_framework"`

	// Factors maps factor IDs to their scores and explanations.
	Factors map[string]FactorScore `json:"factors"`

	// Compliant reports whether OverallScore met the framework-specific
	// trust threshold.
	Compliant bool `json:"compliant"`
}

// FactorScoreOf returns the score for the given factor ID, or 0 when the
// factor is absent. Frameworks use this when computing requirement scores,
// where an unmapped factor contributes zero by policy.
func (t TrustReport) FactorScoreOf(factorID string) float64 {
	if fs, ok := t.Factors[factorID]; ok {
		return fs.Score
	}
	return 0
}
