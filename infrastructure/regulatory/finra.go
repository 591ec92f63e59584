package regulatory

import "github.com/fairlens/fairlens/internal/domain"

// NewFINRA returns the FINRA framework, tuned for investor protection
// concerns with a moderate per-requirement bar.
func NewFINRA() *StandardFramework {
	return MustFramework(Spec{
		Name:        "FINRA",
		Description: "Financial Industry Regulatory Authority framework, focusing on investor protection and market integrity",
		Requirements: []domain.Requirement{
			{ID: "FINRA-01", Description: "Suitability: Recommendations must be suitable for the specific customer", Category: "Suitability"},
			{ID: "FINRA-02", Description: "Disclosure: Clear disclosure of risks, costs, and conflicts of interest", Category: "Disclosure"},
			{ID: "FINRA-03", Description: "Fair Pricing: Reasonable and fair pricing of financial products", Category: "Pricing"},
			{ID: "FINRA-04", Description: "Risk Assessment: Proper assessment of customer risk tolerance", Category: "Risk"},
			{ID: "FINRA-05", Description: "Record Keeping: Maintenance of accurate and complete records", Category: "Documentation"},
			{ID: "FINRA-06", Description: "Supervision: Adequate supervision of automated systems", Category: "Governance"},
			{ID: "FINRA-07", Description: "Data Security: Protection of customer data and financial information", Category: "Security"},
		},
		Mappings: []domain.FactorMapping{
			{FactorID: "data_quality", RequirementIDs: []string{"FINRA-05", "FINRA-04", "FINRA-07"}, Weight: 1.1},
			{FactorID: "model_confidence", RequirementIDs: []string{"FINRA-04", "FINRA-01", "FINRA-06"}, Weight: 1.2},
			{FactorID: "regulatory_alignment", RequirementIDs: []string{"FINRA-05", "FINRA-02", "FINRA-06"}, Weight: 1.4},
			{FactorID: "ethical_considerations", RequirementIDs: []string{"FINRA-01", "FINRA-02", "FINRA-03"}, Weight: 1.0},
		},
		RequirementThreshold: 70,
		PassPercentage:       80,
		Remediation: map[string]string{
			"Suitability":   "Improve customer suitability assessment by gathering more detailed financial information",
			"Disclosure":    "Enhance disclosure documentation to more clearly explain risks and costs",
			"Pricing":       "Review pricing model to ensure fair and reasonable rates for all customers",
			"Risk":          "Strengthen risk assessment methodology with more comprehensive factors",
			"Documentation": "Improve record keeping practices with more detailed transaction logs",
			"Governance":    "Enhance supervision of automated systems with additional review checkpoints",
			"Security":      "Strengthen data security measures to better protect customer information",
		},
	})
}
