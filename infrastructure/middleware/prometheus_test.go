package middleware

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(registry)

	pm.RecordCounter("decisions_processed", 1, map[string]string{
		"framework": "EU_AI_ACT",
		"compliant": "true",
	})
	pm.RecordCounter("decisions_processed", 1, map[string]string{
		"framework": "EU_AI_ACT",
		"compliant": "true",
	})

	counter, err := pm.operationCounter.GetMetricWithLabelValues("decisions_processed", "EU_AI_ACT", "true")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, testutil.ToFloat64(counter), 1e-9)
}

func TestPrometheusMetrics_RecordCounterDefaultsLabels(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(registry)

	pm.RecordCounter("decisions_verified", 1, nil)

	counter, err := pm.operationCounter.GetMetricWithLabelValues("decisions_verified", "unknown", "unknown")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, testutil.ToFloat64(counter), 1e-9)
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(registry)

	pm.RecordGauge("trust_score", 82.5, map[string]string{"framework": "FINRA"})
	pm.RecordGauge("trust_score", 61.0, map[string]string{"framework": "FINRA"})

	gauge, err := pm.stateGauges.GetMetricWithLabelValues("trust_score", "FINRA")
	require.NoError(t, err)
	assert.InDelta(t, 61.0, testutil.ToFloat64(gauge), 1e-9)
}

func TestPrometheusMetrics_RecordLatency(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWith(registry)

	pm.RecordLatency("process_decision", 150*time.Millisecond, map[string]string{"framework": "FINRA"})

	count := testutil.CollectAndCount(pm.processingLatency)
	assert.Equal(t, 1, count)
}
