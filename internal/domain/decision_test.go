package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDecision(t *testing.T) Decision {
	t.Helper()
	d := Decision{
		ID:            "decision-1",
		ApplicationID: "LC_1001",
		Framework:     "EU_AI_ACT",
		CreatedAt:     time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC),
		Trust: TrustReport{
			OverallScore: 81.5,
			Framework:    "EU_AI_ACT",
			Factors: map[string]FactorScore{
				"data_quality": {FactorID: "data_quality", Name: "Data Quality", Score: 90, Weight: 1.0},
			},
			Compliant: true,
		},
		Application: map[string]any{"id": "LC_1001"},
	}
	sum, err := d.ComputeChecksum()
	require.NoError(t, err)
	d.Checksum = sum
	return d
}

func TestDecision_VerifyRoundTrip(t *testing.T) {
	d := sampleDecision(t)

	ok, err := d.Verify()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDecision_VerifyDetectsTampering(t *testing.T) {
	d := sampleDecision(t)
	d.Trust.OverallScore = 99.9

	ok, err := d.Verify()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecision_ChecksumIsDeterministic(t *testing.T) {
	d := sampleDecision(t)

	first, err := d.ComputeChecksum()
	require.NoError(t, err)
	second, err := d.ComputeChecksum()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTrustReport_FactorScoreOf(t *testing.T) {
	report := TrustReport{
		Factors: map[string]FactorScore{
			"ethical_considerations": {FactorID: "ethical_considerations", Score: 72.5},
		},
	}

	assert.Equal(t, 72.5, report.FactorScoreOf("ethical_considerations"))
	assert.Zero(t, report.FactorScoreOf("missing_factor"))
}
