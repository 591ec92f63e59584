// Package regulatory implements the regulatory frameworks that judge
// trust evaluations against weighted requirement mappings. Frameworks
// are declared as static specs and evaluated by a shared engine, so
// adding a framework means writing a spec, not an evaluator.
package regulatory

import (
	"fmt"
	"slices"
	"sort"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

var _ ports.Framework = (*StandardFramework)(nil)

// fallbackSuggestion is used when a non-compliant requirement's category
// has no remediation template.
const fallbackSuggestion = "Review and address compliance issues"

// maxAdditionalShortfalls caps the supplementary shortfalls attached to
// a remediation, keeping the guidance focused on the worst offenders.
const maxAdditionalShortfalls = 2

// Spec declares a regulatory framework: its requirements, the factor
// mappings that score them, the per-requirement score threshold, and the
// percentage of requirements that must pass for overall compliance.
type Spec struct {
	// Name is the framework identifier, such as "EU_AI_ACT".
	Name string

	// Description is the framework's self-description, carried verbatim
	// into compliance reports.
	Description string

	// Requirements lists the framework's obligations in declaration
	// order. IDs must be unique.
	Requirements []domain.Requirement

	// Mappings link trust factors to the requirements they score. Every
	// referenced requirement ID must be declared above.
	Mappings []domain.FactorMapping

	// RequirementThreshold is the minimum weighted score for a single
	// requirement to count as compliant.
	RequirementThreshold float64

	// PassPercentage is the minimum percentage of compliant requirements
	// for the framework as a whole to report compliance.
	PassPercentage float64

	// Remediation maps requirement categories to corrective action text.
	Remediation map[string]string
}

// StandardFramework evaluates compliance for one declared Spec. It holds
// no mutable state and is safe for concurrent use.
type StandardFramework struct {
	spec Spec
	byID map[string]domain.Requirement
}

// NewStandardFramework validates the spec and builds a framework from
// it. Validation failures wrap domain.ErrInvalidConfiguration.
func NewStandardFramework(spec Spec) (*StandardFramework, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: framework name is required", domain.ErrInvalidConfiguration)
	}
	if len(spec.Requirements) == 0 {
		return nil, fmt.Errorf("%w: framework %q declares no requirements", domain.ErrInvalidConfiguration, spec.Name)
	}
	if spec.RequirementThreshold <= 0 || spec.RequirementThreshold > 100 {
		return nil, fmt.Errorf("%w: framework %q requirement threshold %.1f outside (0, 100]",
			domain.ErrInvalidConfiguration, spec.Name, spec.RequirementThreshold)
	}
	if spec.PassPercentage <= 0 || spec.PassPercentage > 100 {
		return nil, fmt.Errorf("%w: framework %q pass percentage %.1f outside (0, 100]",
			domain.ErrInvalidConfiguration, spec.Name, spec.PassPercentage)
	}

	byID := make(map[string]domain.Requirement, len(spec.Requirements))
	for _, req := range spec.Requirements {
		if req.ID == "" {
			return nil, fmt.Errorf("%w: framework %q declares a requirement without an ID",
				domain.ErrInvalidConfiguration, spec.Name)
		}
		if _, dup := byID[req.ID]; dup {
			return nil, fmt.Errorf("%w: framework %q declares requirement %q twice",
				domain.ErrInvalidConfiguration, spec.Name, req.ID)
		}
		byID[req.ID] = req
	}

	for _, mapping := range spec.Mappings {
		if mapping.Weight <= 0 {
			return nil, fmt.Errorf("%w: framework %q maps factor %q with non-positive weight %.2f",
				domain.ErrInvalidConfiguration, spec.Name, mapping.FactorID, mapping.Weight)
		}
		for _, reqID := range mapping.RequirementIDs {
			if _, ok := byID[reqID]; !ok {
				return nil, fmt.Errorf("%w: framework %q maps factor %q to unknown requirement %q",
					domain.ErrInvalidConfiguration, spec.Name, mapping.FactorID, reqID)
			}
		}
	}

	return &StandardFramework{spec: spec, byID: byID}, nil
}

// MustFramework builds a framework from a spec and panics on invalid
// configuration. Intended for the package-level framework constructors,
// whose specs are compile-time constants in all but type.
func MustFramework(spec Spec) *StandardFramework {
	fw, err := NewStandardFramework(spec)
	if err != nil {
		panic(err)
	}
	return fw
}

// Name returns the framework identifier.
func (f *StandardFramework) Name() string { return f.spec.Name }

// Description returns the framework's self-description.
func (f *StandardFramework) Description() string { return f.spec.Description }

// Requirements returns the declared requirements in declaration order.
// The returned slice is a copy; callers may mutate it freely.
func (f *StandardFramework) Requirements() []domain.Requirement {
	return slices.Clone(f.spec.Requirements)
}

// RequirementsForFactor returns every requirement the factor is mapped
// to, in declaration order across the factor's mappings, deduplicated.
func (f *StandardFramework) RequirementsForFactor(factorID string) []domain.Requirement {
	var out []domain.Requirement
	seen := make(map[string]bool)
	for _, mapping := range f.spec.Mappings {
		if mapping.FactorID != factorID {
			continue
		}
		for _, reqID := range mapping.RequirementIDs {
			if seen[reqID] {
				continue
			}
			seen[reqID] = true
			out = append(out, f.byID[reqID])
		}
	}
	return out
}

// FactorsForRequirement returns the weighted contributions mapped to the
// requirement, taking the first matching mapping per factor. The Score
// field is zero; scores belong to an evaluation, not the declaration.
func (f *StandardFramework) FactorsForRequirement(requirementID string) []domain.FactorContribution {
	var out []domain.FactorContribution
	matched := make(map[string]bool)
	for _, mapping := range f.spec.Mappings {
		if matched[mapping.FactorID] {
			continue
		}
		if slices.Contains(mapping.RequirementIDs, requirementID) {
			matched[mapping.FactorID] = true
			out = append(out, domain.FactorContribution{
				FactorID: mapping.FactorID,
				Weight:   mapping.Weight,
			})
		}
	}
	return out
}

// EvaluateCompliance scores every declared requirement as the weighted
// mean of its mapped factors' trust scores, then aggregates the results
// into a framework-level report. A requirement with no mapped factors
// scores 0 and is non-compliant.
func (f *StandardFramework) EvaluateCompliance(trust domain.TrustReport) (domain.ComplianceReport, error) {
	results := make(map[string]domain.RequirementResult, len(f.spec.Requirements))
	var shortfalls []domain.RequirementShortfall
	compliantCount := 0

	for _, req := range f.spec.Requirements {
		contributions := f.FactorsForRequirement(req.ID)

		var weightedSum, totalWeight float64
		factors := make([]domain.FactorContribution, 0, len(contributions))
		for _, c := range contributions {
			score := trust.FactorScoreOf(c.FactorID)
			factors = append(factors, domain.FactorContribution{
				FactorID: c.FactorID,
				Score:    score,
				Weight:   c.Weight,
			})
			weightedSum += score * c.Weight
			totalWeight += c.Weight
		}

		var score float64
		if totalWeight > 0 {
			score = weightedSum / totalWeight
		}
		compliant := totalWeight > 0 && score >= f.spec.RequirementThreshold
		if compliant {
			compliantCount++
		} else {
			shortfalls = append(shortfalls, domain.RequirementShortfall{
				ID:          req.ID,
				Description: req.Description,
				Score:       score,
				Category:    req.Category,
			})
		}

		results[req.ID] = domain.RequirementResult{
			RequirementID: req.ID,
			Compliant:     compliant,
			Score:         score,
			Description:   req.Description,
			Category:      req.Category,
			Factors:       factors,
		}
	}

	// Lowest score first; declaration order already breaks ties because
	// shortfalls were appended in that order.
	sort.SliceStable(shortfalls, func(i, j int) bool {
		return shortfalls[i].Score < shortfalls[j].Score
	})

	percentage := float64(compliantCount) / float64(len(f.spec.Requirements)) * 100

	report := domain.ComplianceReport{
		Framework:            f.spec.Name,
		Description:          f.spec.Description,
		Compliant:            percentage >= f.spec.PassPercentage,
		CompliancePercentage: percentage,
		CompliantCount:       compliantCount,
		TotalCount:           len(f.spec.Requirements),
		Requirements:         results,
		NonCompliant:         shortfalls,
	}
	if len(shortfalls) > 0 {
		report.Remediation = f.remediation(shortfalls)
	}
	return report, nil
}

// remediation builds corrective guidance from the worst shortfall's
// category, attaching up to two further shortfalls as context.
func (f *StandardFramework) remediation(shortfalls []domain.RequirementShortfall) *domain.Remediation {
	priority := shortfalls[0]

	suggestion, ok := f.spec.Remediation[priority.Category]
	if !ok {
		suggestion = fallbackSuggestion
	}

	additional := shortfalls[1:min(len(shortfalls), 1+maxAdditionalShortfalls)]
	return &domain.Remediation{
		Priority:   priority,
		Suggestion: suggestion,
		Additional: slices.Clone(additional),
	}
}
