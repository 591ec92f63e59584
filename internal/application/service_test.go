package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairlens/fairlens/infrastructure/journal"
	"github.com/fairlens/fairlens/internal/domain"
)

// captureMetrics records metric calls for assertions.
type captureMetrics struct {
	mu        sync.Mutex
	latencies []string
	counters  []string
	gauges    []string
}

func (m *captureMetrics) RecordLatency(operation string, _ time.Duration, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latencies = append(m.latencies, operation)
}

func (m *captureMetrics) RecordCounter(metric string, _ float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = append(m.counters, metric)
}

func (m *captureMetrics) RecordGauge(metric string, _ float64, _ map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gauges = append(m.gauges, metric)
}

func sampleApplication() domain.Record {
	return domain.RecordFromMap(map[string]any{
		"id":                "LC_1001",
		"loan_amount":       10000.0,
		"interest_rate":     5.32,
		"grade":             "A",
		"employment_length": 10.0,
		"home_ownership":    "RENT",
		"annual_income":     60000.0,
		"purpose":           "debt_consolidation",
		"dti":               15.2,
		"delinq_2yrs":       0.0,
	})
}

func newTestService(t *testing.T, opts ...ServiceOption) (*DecisionService, *MemoryDecisionStore) {
	t.Helper()

	evaluator, err := NewTrustEvaluator(DefaultFactorConfigs())
	require.NoError(t, err)

	store := NewMemoryDecisionStore()
	service, err := NewDecisionService(evaluator, builtinRegistry(t), store, opts...)
	require.NoError(t, err)
	return service, store
}

func TestDecisionService_Process(t *testing.T) {
	log := journal.NewLog()
	timeline := journal.NewTimeline()
	metrics := &captureMetrics{}
	service, store := newTestService(t,
		WithJournal(log), WithTimeline(timeline), WithMetrics(metrics))

	decision, err := service.Process(context.Background(), sampleApplication(), "EU_AI_ACT")
	require.NoError(t, err)

	assert.NotEmpty(t, decision.ID)
	assert.Equal(t, "LC_1001", decision.ApplicationID)
	assert.Equal(t, "EU_AI_ACT", decision.Framework)
	assert.False(t, decision.CreatedAt.IsZero())
	assert.Equal(t, "EU_AI_ACT", decision.Trust.Framework)
	assert.Equal(t, "EU_AI_ACT", decision.Compliance.Framework)
	assert.Len(t, decision.Trust.Factors, 4)
	assert.Equal(t, "LC_1001", decision.Application["id"])

	verified, err := decision.Verify()
	require.NoError(t, err)
	assert.True(t, verified)

	stored, err := store.Get(decision.ID)
	require.NoError(t, err)
	assert.Equal(t, decision, stored)

	steps := log.Entries(journal.Query{ApplicationID: "LC_1001"})
	require.Len(t, steps, 7, "four factor steps plus trust, compliance, and decision entries")
	assert.Equal(t, journal.StepDecisionAssembled, steps[0].Step, "newest first")

	factorSteps := log.Entries(journal.Query{ApplicationID: "LC_1001", Step: journal.StepDataQuality})
	require.Len(t, factorSteps, 1)
	assert.Contains(t, factorSteps[0].Details, "components")

	events := timeline.ComplianceHistory("LC_1001")
	require.Len(t, events, 1)
	assert.Equal(t, decision.ID, events[0].Data["decision_id"])

	assert.Contains(t, metrics.latencies, "process_decision")
	assert.Contains(t, metrics.counters, "decisions_processed")
	assert.Contains(t, metrics.gauges, "trust_score")
}

func TestDecisionService_ProcessDefaultsFramework(t *testing.T) {
	service, _ := newTestService(t)

	decision, err := service.Process(context.Background(), sampleApplication(), "")
	require.NoError(t, err)
	assert.Equal(t, "EU_AI_ACT", decision.Framework)
}

func TestDecisionService_ProcessConfiguredDefaultFramework(t *testing.T) {
	service, _ := newTestService(t, WithDefaultFramework("FINRA"))

	decision, err := service.Process(context.Background(), sampleApplication(), "")
	require.NoError(t, err)
	assert.Equal(t, "FINRA", decision.Framework)
}

func TestDecisionService_ProcessRequiresApplicationID(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Process(context.Background(), domain.NewRecord(), "EU_AI_ACT")
	assert.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestDecisionService_ProcessUnknownFramework(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Process(context.Background(), sampleApplication(), "SOX")
	assert.ErrorIs(t, err, domain.ErrUnknownFramework)

	var fwErr *domain.FrameworkError
	require.ErrorAs(t, err, &fwErr)
	assert.Equal(t, "SOX", fwErr.Framework)
}

func TestDecisionService_ProcessHonorsContext(t *testing.T) {
	service, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Process(ctx, sampleApplication(), "EU_AI_ACT")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecisionService_Verify(t *testing.T) {
	timeline := journal.NewTimeline()
	service, store := newTestService(t, WithTimeline(timeline))

	decision, err := service.Process(context.Background(), sampleApplication(), "FINRA")
	require.NoError(t, err)

	verified, err := service.Verify(decision.ID)
	require.NoError(t, err)
	assert.True(t, verified)

	// Tampering with the stored decision breaks verification.
	tampered := decision
	tampered.Trust.OverallScore += 5
	store.Put(tampered)

	verified, err = service.Verify(decision.ID)
	require.NoError(t, err)
	assert.False(t, verified)

	_, err = service.Verify("no-such-decision")
	assert.ErrorIs(t, err, domain.ErrUnknownDecision)

	events := timeline.Events("LC_1001")
	verifications := 0
	for _, event := range events {
		if event.Type == journal.EventVerification {
			verifications++
		}
	}
	assert.Equal(t, 2, verifications)
}

func TestDecisionService_DecisionsInProcessingOrder(t *testing.T) {
	service, _ := newTestService(t)

	first, err := service.Process(context.Background(), sampleApplication(), "EU_AI_ACT")
	require.NoError(t, err)

	second := domain.With(sampleApplication(), domain.KeyApplicationID, "LC_1002")
	secondDecision, err := service.Process(context.Background(), second, "FINRA")
	require.NoError(t, err)

	decisions := service.Decisions()
	require.Len(t, decisions, 2)
	assert.Equal(t, first.ID, decisions[0].ID)
	assert.Equal(t, secondDecision.ID, decisions[1].ID)

	got, err := service.Decision(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ApplicationID, got.ApplicationID)
}

func TestMemoryDecisionStore_OverwriteKeepsOrder(t *testing.T) {
	store := NewMemoryDecisionStore()
	store.Put(domain.Decision{ID: "d1", ApplicationID: "LC_1001"})
	store.Put(domain.Decision{ID: "d2", ApplicationID: "LC_1002"})
	store.Put(domain.Decision{ID: "d1", ApplicationID: "LC_1001", Framework: "FINRA"})

	decisions := store.List()
	require.Len(t, decisions, 2)
	assert.Equal(t, "d1", decisions[0].ID)
	assert.Equal(t, "FINRA", decisions[0].Framework)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrUnknownDecision)
}
