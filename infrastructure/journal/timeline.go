package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Event types recorded on application timelines.
const (
	EventEvaluation   = "evaluation"
	EventRemediation  = "remediation"
	EventVerification = "verification"
)

// Event is one entry on an application's compliance timeline.
type Event struct {
	// ID is unique within the application's timeline.
	ID string `json:"id"`

	// Timestamp records when the event happened.
	Timestamp time.Time `json:"timestamp"`

	// Type classifies the event: evaluation, remediation, or
	// verification.
	Type string `json:"type"`

	// Data carries event-specific payload such as compliance scores.
	Data map[string]any `json:"data"`
}

// Trend is a time series of compliance scores extracted from an
// application's evaluation events.
type Trend struct {
	Timestamps []time.Time `json:"timestamps"`
	Scores     []float64   `json:"scores"`
}

// FactorTrends holds per-factor score series aligned with a shared
// timestamp axis.
type FactorTrends struct {
	Timestamps []time.Time          `json:"timestamps"`
	Factors    map[string][]float64 `json:"factors"`
}

// Timeline tracks the compliance history of applications over time.
// Events accumulate in memory; when a storage path is configured the
// full state is additionally persisted to a JSON file on every write.
type Timeline struct {
	mu          sync.Mutex
	storagePath string
	timelines   map[string][]Event
}

// NewTimeline creates a timeline with no persistence.
func NewTimeline() *Timeline {
	return &Timeline{timelines: make(map[string][]Event)}
}

// NewPersistentTimeline creates a timeline backed by a JSON file. An
// existing file is loaded; a missing or unreadable file starts empty.
func NewPersistentTimeline(storagePath string) *Timeline {
	t := &Timeline{
		storagePath: storagePath,
		timelines:   make(map[string][]Event),
	}
	if data, err := os.ReadFile(storagePath); err == nil {
		var loaded map[string][]Event
		if err := json.Unmarshal(data, &loaded); err == nil && loaded != nil {
			t.timelines = loaded
		}
	}
	return t
}

// AddEvent appends an event to the application's timeline and returns
// it with its assigned ID and timestamp.
func (t *Timeline) AddEvent(applicationID, eventType string, data map[string]any) (Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	event := Event{
		ID:        fmt.Sprintf("%s_%d", applicationID, len(t.timelines[applicationID])),
		Timestamp: time.Now().UTC(),
		Type:      eventType,
		Data:      data,
	}
	t.timelines[applicationID] = append(t.timelines[applicationID], event)

	if t.storagePath != "" {
		if err := t.persistLocked(); err != nil {
			return event, fmt.Errorf("persisting timeline: %w", err)
		}
	}
	return event, nil
}

// persistLocked writes the full timeline state to the storage path.
// Callers must hold mu.
func (t *Timeline) persistLocked() error {
	data, err := json.MarshalIndent(t.timelines, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.storagePath, data, 0o644)
}

// Events returns the application's timeline in chronological order. An
// unknown application yields an empty slice.
func (t *Timeline) Events(applicationID string) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	events := t.timelines[applicationID]
	out := make([]Event, len(events))
	copy(out, events)
	return out
}

// LatestEvent returns the most recent event for the application,
// optionally filtered by type. The second return is false when no
// matching event exists.
func (t *Timeline) LatestEvent(applicationID, eventType string) (Event, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	events := t.timelines[applicationID]
	for i := len(events) - 1; i >= 0; i-- {
		if eventType == "" || events[i].Type == eventType {
			return events[i], true
		}
	}
	return Event{}, false
}

// eventsOfType returns the application's events of one type in
// chronological order.
func (t *Timeline) eventsOfType(applicationID, eventType string) []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []Event
	for _, event := range t.timelines[applicationID] {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

// ComplianceHistory returns the application's evaluation events in
// chronological order.
func (t *Timeline) ComplianceHistory(applicationID string) []Event {
	return t.eventsOfType(applicationID, EventEvaluation)
}

// RemediationHistory returns the application's remediation events in
// chronological order.
func (t *Timeline) RemediationHistory(applicationID string) []Event {
	return t.eventsOfType(applicationID, EventRemediation)
}

// ComplianceTrend extracts the compliance score series from the
// application's evaluation events. Events without a compliance_score
// contribute a zero.
func (t *Timeline) ComplianceTrend(applicationID string) Trend {
	trend := Trend{}
	for _, event := range t.ComplianceHistory(applicationID) {
		trend.Timestamps = append(trend.Timestamps, event.Timestamp)
		score, _ := event.Data["compliance_score"].(float64)
		trend.Scores = append(trend.Scores, score)
	}
	return trend
}

// TrustFactorTrends extracts per-factor score series from the
// application's evaluation events. Factor scores are read from the
// "factor_scores" payload entry, a map of factor ID to score.
func (t *Timeline) TrustFactorTrends(applicationID string) FactorTrends {
	trends := FactorTrends{Factors: make(map[string][]float64)}
	for _, event := range t.ComplianceHistory(applicationID) {
		trends.Timestamps = append(trends.Timestamps, event.Timestamp)

		// Scores arrive as map[string]float64 in process, but come back
		// as map[string]any after a JSON reload.
		switch scores := event.Data["factor_scores"].(type) {
		case map[string]float64:
			for factorID, score := range scores {
				trends.Factors[factorID] = append(trends.Factors[factorID], score)
			}
		case map[string]any:
			for factorID, v := range scores {
				if score, ok := v.(float64); ok {
					trends.Factors[factorID] = append(trends.Factors[factorID], score)
				}
			}
		}
	}
	return trends
}
