package regulatory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/internal/domain"
)

// trustWith builds a trust report carrying the given factor scores. Only
// the scores matter to compliance evaluation.
func trustWith(scores map[string]float64) domain.TrustReport {
	factors := make(map[string]domain.FactorScore, len(scores))
	for id, score := range scores {
		factors[id] = domain.FactorScore{FactorID: id, Score: score, Weight: 1.0}
	}
	return domain.TrustReport{Factors: factors}
}

func twoFactorSpec() Spec {
	return Spec{
		Name:        "TEST",
		Description: "test framework",
		Requirements: []domain.Requirement{
			{ID: "T-01", Description: "first", Category: "Alpha"},
			{ID: "T-02", Description: "second", Category: "Beta"},
		},
		Mappings: []domain.FactorMapping{
			{FactorID: "data_quality", RequirementIDs: []string{"T-01"}, Weight: 1.0},
			{FactorID: "model_confidence", RequirementIDs: []string{"T-01", "T-02"}, Weight: 1.0},
		},
		RequirementThreshold: 75,
		PassPercentage:       80,
		Remediation:          map[string]string{"Alpha": "fix alpha"},
	}
}

func TestNewStandardFramework_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"empty name", func(s *Spec) { s.Name = "" }},
		{"no requirements", func(s *Spec) { s.Requirements = nil }},
		{"zero requirement threshold", func(s *Spec) { s.RequirementThreshold = 0 }},
		{"pass percentage above 100", func(s *Spec) { s.PassPercentage = 120 }},
		{"duplicate requirement id", func(s *Spec) {
			s.Requirements = append(s.Requirements, domain.Requirement{ID: "T-01", Description: "dup", Category: "Alpha"})
		}},
		{"mapping to unknown requirement", func(s *Spec) {
			s.Mappings[0].RequirementIDs = []string{"T-99"}
		}},
		{"non-positive mapping weight", func(s *Spec) { s.Mappings[0].Weight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := twoFactorSpec()
			tt.mutate(&spec)
			_, err := NewStandardFramework(spec)
			assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
		})
	}
}

func TestEvaluateCompliance_WeightedRequirementScore(t *testing.T) {
	fw, err := NewStandardFramework(twoFactorSpec())
	require.NoError(t, err)

	report, err := fw.EvaluateCompliance(trustWith(map[string]float64{
		"data_quality":     90,
		"model_confidence": 70,
	}))
	require.NoError(t, err)

	// T-01 averages both factors at equal weight: (90+70)/2 = 80, which
	// clears the 75 threshold. T-02 sees only model_confidence at 70 and
	// falls short.
	assert.InDelta(t, 80.0, report.Requirements["T-01"].Score, 1e-9)
	assert.True(t, report.Requirements["T-01"].Compliant)
	assert.InDelta(t, 70.0, report.Requirements["T-02"].Score, 1e-9)
	assert.False(t, report.Requirements["T-02"].Compliant)

	assert.Equal(t, 1, report.CompliantCount)
	assert.Equal(t, 2, report.TotalCount)
	assert.InDelta(t, 50.0, report.CompliancePercentage, 1e-9)
	assert.False(t, report.Compliant)
}

func TestEvaluateCompliance_UnmappedRequirementScoresZero(t *testing.T) {
	spec := twoFactorSpec()
	spec.Requirements = append(spec.Requirements, domain.Requirement{
		ID: "T-03", Description: "orphan", Category: "Gamma",
	})

	fw, err := NewStandardFramework(spec)
	require.NoError(t, err)

	report, err := fw.EvaluateCompliance(trustWith(map[string]float64{
		"data_quality":     100,
		"model_confidence": 100,
	}))
	require.NoError(t, err)

	orphan := report.Requirements["T-03"]
	assert.False(t, orphan.Compliant)
	assert.Zero(t, orphan.Score)
	assert.Empty(t, orphan.Factors)
}

func TestEvaluateCompliance_MissingFactorScoresAsZero(t *testing.T) {
	fw, err := NewStandardFramework(twoFactorSpec())
	require.NoError(t, err)

	report, err := fw.EvaluateCompliance(trustWith(map[string]float64{
		"data_quality": 90,
	}))
	require.NoError(t, err)

	// model_confidence is absent from the trust report, so T-01 blends
	// 90 with 0 at equal weight.
	assert.InDelta(t, 45.0, report.Requirements["T-01"].Score, 1e-9)
}

func TestEvaluateCompliance_PassPercentageBar(t *testing.T) {
	// Ten single-factor requirements so the compliant fraction is easy
	// to control per test case.
	spec := Spec{
		Name:                 "BAR",
		Description:          "pass bar framework",
		RequirementThreshold: 75,
		PassPercentage:       85,
		Remediation:          map[string]string{},
	}
	for i := 0; i < 10; i++ {
		id := string(rune('A' + i))
		spec.Requirements = append(spec.Requirements, domain.Requirement{
			ID: "BAR-" + id, Description: "req " + id, Category: "General",
		})
		spec.Mappings = append(spec.Mappings, domain.FactorMapping{
			FactorID: "factor_" + id, RequirementIDs: []string{"BAR-" + id}, Weight: 1.0,
		})
	}

	fw, err := NewStandardFramework(spec)
	require.NoError(t, err)

	// Eight factors pass their requirement, two fail.
	scores := make(map[string]float64, 10)
	for i := 0; i < 10; i++ {
		score := 90.0
		if i >= 8 {
			score = 60.0
		}
		scores["factor_"+string(rune('A'+i))] = score
	}

	report, err := fw.EvaluateCompliance(trustWith(scores))
	require.NoError(t, err)

	assert.Equal(t, 8, report.CompliantCount)
	assert.InDelta(t, 80.0, report.CompliancePercentage, 1e-9)
	assert.False(t, report.Compliant, "80%% of requirements must not clear an 85%% bar")
}

func TestEvaluateCompliance_RemediationFromWorstShortfall(t *testing.T) {
	spec := twoFactorSpec()
	spec.Requirements = append(spec.Requirements, domain.Requirement{
		ID: "T-03", Description: "third", Category: "Gamma",
	})
	spec.Mappings = append(spec.Mappings, domain.FactorMapping{
		FactorID: "ethical_considerations", RequirementIDs: []string{"T-03"}, Weight: 1.0,
	})

	fw, err := NewStandardFramework(spec)
	require.NoError(t, err)

	report, err := fw.EvaluateCompliance(trustWith(map[string]float64{
		"data_quality":           40, // T-01 blends to 45
		"model_confidence":       50, // T-02 scores 50
		"ethical_considerations": 60, // T-03 scores 60
	}))
	require.NoError(t, err)

	require.Len(t, report.NonCompliant, 3)
	assert.Equal(t, "T-01", report.NonCompliant[0].ID)
	assert.Equal(t, "T-02", report.NonCompliant[1].ID)
	assert.Equal(t, "T-03", report.NonCompliant[2].ID)

	require.NotNil(t, report.Remediation)
	assert.Equal(t, "T-01", report.Remediation.Priority.ID)
	assert.Equal(t, "fix alpha", report.Remediation.Suggestion)
	require.Len(t, report.Remediation.Additional, 2)
	assert.Equal(t, "T-02", report.Remediation.Additional[0].ID)
	assert.Equal(t, "T-03", report.Remediation.Additional[1].ID)
}

func TestEvaluateCompliance_RemediationFallbackSuggestion(t *testing.T) {
	spec := twoFactorSpec()
	spec.Remediation = nil

	fw, err := NewStandardFramework(spec)
	require.NoError(t, err)

	report, err := fw.EvaluateCompliance(trustWith(map[string]float64{}))
	require.NoError(t, err)

	require.NotNil(t, report.Remediation)
	assert.Equal(t, fallbackSuggestion, report.Remediation.Suggestion)
}

func TestEvaluateCompliance_FullyCompliantOmitsRemediation(t *testing.T) {
	fw, err := NewStandardFramework(twoFactorSpec())
	require.NoError(t, err)

	report, err := fw.EvaluateCompliance(trustWith(map[string]float64{
		"data_quality":     95,
		"model_confidence": 95,
	}))
	require.NoError(t, err)

	assert.True(t, report.Compliant)
	assert.Empty(t, report.NonCompliant)
	assert.Nil(t, report.Remediation)
}

func TestRequirementsForFactor(t *testing.T) {
	fw, err := NewStandardFramework(twoFactorSpec())
	require.NoError(t, err)

	reqs := fw.RequirementsForFactor("model_confidence")
	require.Len(t, reqs, 2)
	assert.Equal(t, "T-01", reqs[0].ID)
	assert.Equal(t, "T-02", reqs[1].ID)

	assert.Empty(t, fw.RequirementsForFactor("no_such_factor"))
}

func TestFactorsForRequirement_FirstMatchingMappingPerFactor(t *testing.T) {
	spec := twoFactorSpec()
	// A second data_quality mapping also naming T-01 must not double the
	// factor's contribution.
	spec.Mappings = append(spec.Mappings, domain.FactorMapping{
		FactorID: "data_quality", RequirementIDs: []string{"T-01"}, Weight: 9.0,
	})

	fw, err := NewStandardFramework(spec)
	require.NoError(t, err)

	contributions := fw.FactorsForRequirement("T-01")
	require.Len(t, contributions, 2)
	assert.Equal(t, "data_quality", contributions[0].FactorID)
	assert.InDelta(t, 1.0, contributions[0].Weight, 1e-9)
	assert.Equal(t, "model_confidence", contributions[1].FactorID)
}
