package regulatory

import "github.com/fairlens/fairlens/internal/domain"

// NewEUAIAct returns the EU AI Act framework. It carries the highest
// per-requirement bar of the built-in frameworks and requires near-total
// requirement compliance to pass overall.
func NewEUAIAct() *StandardFramework {
	return MustFramework(Spec{
		Name:        "EU_AI_ACT",
		Description: "European Union Artificial Intelligence Act, focusing on transparency, fairness, and accountability in AI systems",
		Requirements: []domain.Requirement{
			{ID: "EUAI-01", Description: "Transparency: AI systems must provide clear information about their capabilities and limitations", Category: "Transparency"},
			{ID: "EUAI-02", Description: "Fairness: AI systems must avoid unfair bias and discrimination", Category: "Fairness"},
			{ID: "EUAI-03", Description: "Human Oversight: AI systems must enable effective oversight by humans", Category: "Governance"},
			{ID: "EUAI-04", Description: "Robustness: AI systems must be technically robust and accurate", Category: "Technical"},
			{ID: "EUAI-05", Description: "Data Quality: AI systems must use high-quality training and operational data", Category: "Data"},
			{ID: "EUAI-06", Description: "Documentation: AI systems must maintain comprehensive documentation of development and operation", Category: "Documentation"},
			{ID: "EUAI-07", Description: "Risk Management: AI systems must implement appropriate risk management measures", Category: "Risk"},
		},
		Mappings: []domain.FactorMapping{
			{FactorID: "data_quality", RequirementIDs: []string{"EUAI-05", "EUAI-04", "EUAI-07"}, Weight: 1.2},
			{FactorID: "model_confidence", RequirementIDs: []string{"EUAI-04", "EUAI-01", "EUAI-07"}, Weight: 1.0},
			{FactorID: "regulatory_alignment", RequirementIDs: []string{"EUAI-06", "EUAI-03", "EUAI-01"}, Weight: 1.5},
			{FactorID: "ethical_considerations", RequirementIDs: []string{"EUAI-02", "EUAI-03", "EUAI-07"}, Weight: 1.3},
		},
		RequirementThreshold: 75,
		PassPercentage:       85,
		Remediation: map[string]string{
			"Transparency":  "Improve transparency by providing clearer explanations of decision factors and model limitations",
			"Fairness":      "Address potential bias in the model by reviewing training data and decision criteria",
			"Governance":    "Enhance human oversight capabilities by implementing additional review checkpoints",
			"Technical":     "Improve model robustness through additional testing and validation",
			"Data":          "Enhance data quality by implementing stricter validation and cleaning processes",
			"Documentation": "Improve documentation of model development, training, and decision processes",
			"Risk":          "Strengthen risk management by implementing additional controls and monitoring",
		},
	})
}
