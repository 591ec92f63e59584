package domain

// Requirement is an atomic regulatory obligation declared by a framework
// at construction time. Requirements are static; they are never mutated
// at runtime.
type Requirement struct {
	// ID uniquely identifies the requirement within its framework
	// (e.g. "EUAI-01").
	ID string `json:"id"`

	// Description states the obligation in plain language.
	Description string `json:"description"`

	// Category groups requirements for remediation lookup
	// (e.g. "Transparency", "Risk").
	Category string `json:"category"`
}

// FactorMapping links one trust factor to a set of requirements with a
// weight. Multiple mappings may be registered for the same factor; they
// accumulate as additive entries rather than replacing one another.
type FactorMapping struct {
	// FactorID is the trust factor identifier (e.g. "data_quality").
	FactorID string `json:"factor_id"`

	// RequirementIDs lists the requirements this factor contributes to.
	RequirementIDs []string `json:"requirement_ids"`

	// Weight scales the factor's contribution to the mapped requirements.
	Weight float64 `json:"weight"`
}

// FactorContribution records one factor's weighted input to a requirement
// score, preserved in results for explainability.
type FactorContribution struct {
	FactorID string  `json:"factor_id"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

// RequirementResult is the compliance outcome for a single requirement.
// A requirement with no mapped factors is always non-compliant with a
// score of exactly 0; that is policy, not an error.
type RequirementResult struct {
	RequirementID string               `json:"requirement_id"`
	Compliant     bool                 `json:"compliant"`
	Score         float64              `json:"score"`
	Description   string               `json:"description"`
	Category      string               `json:"category"`
	Factors       []FactorContribution `json:"factors"`
}

// RequirementShortfall summarizes a non-compliant requirement for the
// remediation section of a compliance report.
type RequirementShortfall struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
	Category    string  `json:"category"`
}

// Remediation is the corrective guidance generated from the lowest-scoring
// non-compliant requirement's category, with up to two further shortfalls
// attached as supplementary context.
type Remediation struct {
	// Priority is the lowest-scoring non-compliant requirement.
	Priority RequirementShortfall `json:"priority_requirement"`

	// Suggestion is the category-specific corrective action text.
	Suggestion string `json:"suggestion"`

	// Additional lists up to two further non-compliant requirements.
	Additional []RequirementShortfall `json:"additional_requirements"`
}

// ComplianceReport is the outcome of checking a TrustReport against one
// regulatory framework. Overall compliance uses a framework-specific
// percentage threshold, which is distinct from the per-requirement score
// threshold.
type ComplianceReport struct {
	// Framework is the framework identifier (e.g. "EU_AI_ACT").
	Framework string `json:"framework"`

	// Description is the framework's self-description.
	Description string `json:"description"`

	// Compliant reports whether CompliancePercentage met the framework's
	// pass bar.
	Compliant bool `json:"compliant"`

	// CompliancePercentage is 100 * compliant requirements / total.
	CompliancePercentage float64 `json:"compliance_percentage"`

	// CompliantCount is the number of requirements that passed.
	CompliantCount int `json:"compliant_requirements"`

	// TotalCount is the number of requirements declared by the framework.
	TotalCount int `json:"total_requirements"`

	// Requirements maps requirement IDs to their individual results.
	Requirements map[string]RequirementResult `json:"requirement_compliance"`

	// NonCompliant lists failing requirements sorted ascending by score,
	// ties broken by declaration order.
	NonCompliant []RequirementShortfall `json:"non_compliant_requirements"`

	// Remediation is present only when at least one requirement failed.
	Remediation *Remediation `json:"remediation,omitempty"`
}
