package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/infrastructure/regulatory"
	"github.com/fairlens/fairlens/internal/domain"
)

func builtinRegistry(t *testing.T) *FrameworkRegistry {
	t.Helper()
	registry := NewFrameworkRegistry()
	require.NoError(t, registry.Register(regulatory.NewEUAIAct()))
	require.NoError(t, registry.Register(regulatory.NewFINRA()))
	return registry
}

func TestFrameworkRegistry_Register(t *testing.T) {
	registry := builtinRegistry(t)

	err := registry.Register(regulatory.NewEUAIAct())
	assert.ErrorIs(t, err, domain.ErrDuplicateFramework)

	assert.Equal(t, []string{"EU_AI_ACT", "FINRA"}, registry.Names())
}

func TestFrameworkRegistry_Framework(t *testing.T) {
	registry := builtinRegistry(t)

	fw, err := registry.Framework("FINRA")
	require.NoError(t, err)
	assert.Equal(t, "FINRA", fw.Name())

	_, err = registry.Framework("SOX")
	assert.ErrorIs(t, err, domain.ErrUnknownFramework)
}

func TestFrameworkRegistry_EvaluateCompliance(t *testing.T) {
	registry := builtinRegistry(t)

	trust := domain.TrustReport{
		Framework: "FINRA",
		Factors: map[string]domain.FactorScore{
			"data_quality":           {FactorID: "data_quality", Score: 90},
			"model_confidence":       {FactorID: "model_confidence", Score: 90},
			"regulatory_alignment":   {FactorID: "regulatory_alignment", Score: 90},
			"ethical_considerations": {FactorID: "ethical_considerations", Score: 90},
		},
	}

	report, err := registry.EvaluateCompliance("FINRA", trust)
	require.NoError(t, err)
	assert.Equal(t, "FINRA", report.Framework)
	assert.True(t, report.Compliant)

	// An empty name falls back to the framework on the trust report.
	report, err = registry.EvaluateCompliance("", trust)
	require.NoError(t, err)
	assert.Equal(t, "FINRA", report.Framework)

	_, err = registry.EvaluateCompliance("SOX", trust)
	assert.ErrorIs(t, err, domain.ErrUnknownFramework)
}

func TestFrameworkRegistry_CrossFrameworkLookups(t *testing.T) {
	registry := builtinRegistry(t)

	byFramework := registry.RequirementsForFactor("data_quality")
	require.Len(t, byFramework, 2)
	assert.Len(t, byFramework["EU_AI_ACT"], 3)
	assert.Len(t, byFramework["FINRA"], 3)

	assert.Empty(t, registry.RequirementsForFactor("no_such_factor"))

	contributions, err := registry.FactorsForRequirement("EU_AI_ACT", "EUAI-07")
	require.NoError(t, err)
	assert.Len(t, contributions, 3)

	_, err = registry.FactorsForRequirement("SOX", "EUAI-07")
	assert.ErrorIs(t, err, domain.ErrUnknownFramework)
}
