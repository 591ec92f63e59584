package ports

import (
	"github.com/fairlens/fairlens/internal/domain"
)

// Framework is a named regulatory policy that maps trust factors to
// weighted requirements and judges a trust evaluation against them.
// Implementations are pure computations over a TrustReport: no state
// machine, no I/O, safe for concurrent use.
type Framework interface {
	// Name returns the framework identifier, such as "EU_AI_ACT".
	Name() string

	// Description returns the framework's self-description.
	Description() string

	// Requirements returns the framework's declared requirements in
	// declaration order.
	Requirements() []domain.Requirement

	// EvaluateCompliance checks the trust report against every declared
	// requirement and aggregates the per-requirement outcomes into a
	// framework-level compliance report.
	EvaluateCompliance(trust domain.TrustReport) (domain.ComplianceReport, error)

	// RequirementsForFactor returns all requirements the given factor is
	// mapped to. An unknown factor yields an empty slice.
	RequirementsForFactor(factorID string) []domain.Requirement

	// FactorsForRequirement returns the weighted factor contributions
	// mapped to the given requirement, taking the first matching mapping
	// per factor.
	FactorsForRequirement(requirementID string) []domain.FactorContribution
}
