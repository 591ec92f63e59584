// Package middleware provides cross-cutting concerns for the decision
// engine: Prometheus metrics collection and OpenTelemetry tracing of
// decision processing.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fairlens/fairlens/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides real-time monitoring of decision throughput,
// processing latency, and trust score levels.
type PrometheusMetrics struct {
	processingLatency *prometheus.HistogramVec
	operationCounter  *prometheus.CounterVec
	stateGauges       *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance registered
// in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return NewPrometheusMetricsWith(prometheus.DefaultRegisterer)
}

// NewPrometheusMetricsWith creates a PrometheusMetrics instance
// registered in the given registry. Tests use this with a private
// registry to avoid duplicate registration panics.
func NewPrometheusMetricsWith(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)
	return &PrometheusMetrics{
		processingLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "compliance_processing_duration_seconds",
				Help:    "Execution time of decision engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "framework"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "compliance_operations_total",
				Help: "Total number of operations performed by the decision engine.",
			},
			[]string{"metric", "framework", "compliant"},
		),
		stateGauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "compliance_engine_state",
				Help: "Current state values of the decision engine, such as the last trust score.",
			},
			[]string{"metric", "framework"},
		),
	}
}

// label reads a label value with a fallback for absent keys.
func label(labels map[string]string, key, fallback string) string {
	if labels == nil {
		return fallback
	}
	if value, ok := labels[key]; ok {
		return value
	}
	return fallback
}

// RecordLatency implements the MetricsCollector interface by recording
// operation latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	framework := label(labels, "framework", "unknown")
	pm.processingLatency.WithLabelValues(operation, framework).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by
// incrementing the operation counter.
func (pm *PrometheusMetrics) RecordCounter(metric string, value float64, labels map[string]string) {
	framework := label(labels, "framework", "unknown")
	compliant := label(labels, "compliant", "unknown")
	pm.operationCounter.WithLabelValues(metric, framework, compliant).Add(value)
}

// RecordGauge implements the MetricsCollector interface by setting a
// state gauge.
func (pm *PrometheusMetrics) RecordGauge(metric string, value float64, labels map[string]string) {
	framework := label(labels, "framework", "unknown")
	pm.stateGauges.WithLabelValues(metric, framework).Set(value)
}
