// Package journal records the intermediate steps of decision processing
// so callers can inspect what the engine did and when. It keeps a
// bounded in-memory log of analysis steps and a per-application timeline
// of compliance events.
package journal

import (
	"sort"
	"sync"
	"time"
)

// Step types recorded during decision processing. The per-factor steps
// share their names with the trust factor identifiers.
const (
	StepTrustEvaluation    = "trust_evaluation"
	StepDataQuality        = "data_quality"
	StepModelConfidence    = "model_confidence"
	StepRegulatoryAlign    = "regulatory_alignment"
	StepEthics             = "ethical_considerations"
	StepComplianceCheck    = "compliance_check"
	StepDecisionAssembled  = "compliance_decision"
	StepExplanationRequest = "explanation_request"
)

// maxEntries bounds the in-memory log; the oldest entry is evicted when
// the bound is exceeded.
const maxEntries = 100

// DefaultQueryLimit is the number of entries returned when a query does
// not specify its own limit.
const DefaultQueryLimit = 50

// Entry is one recorded analysis step.
type Entry struct {
	// Timestamp records when the step happened.
	Timestamp time.Time `json:"timestamp"`

	// Step identifies the kind of analysis step, such as
	// "trust_evaluation".
	Step string `json:"step_type"`

	// ApplicationID identifies the application the step belongs to, or
	// "system" for steps outside any application's processing.
	ApplicationID string `json:"application_id"`

	// Framework is the regulatory framework in effect, or "general".
	Framework string `json:"framework"`

	// Message is a human-readable description of the step.
	Message string `json:"message"`

	// Details carries step-specific values such as scores.
	Details map[string]any `json:"details,omitempty"`
}

// Query filters a log read. Zero values mean no filtering; a zero Limit
// means DefaultQueryLimit.
type Query struct {
	ApplicationID string
	Step          string
	Limit         int
}

// Log is a bounded, thread-safe, in-memory record of analysis steps.
// When full it drops the oldest entry first.
type Log struct {
	mu      sync.Mutex
	entries []Entry
}

// NewLog creates an empty analysis log.
func NewLog() *Log {
	return &Log{}
}

// Record appends an entry, evicting the oldest one when the log is full.
// Empty attribution fields are normalized so queries always have
// something to match on.
func (l *Log) Record(entry Entry) Entry {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.ApplicationID == "" {
		entry.ApplicationID = "system"
	}
	if entry.Framework == "" {
		entry.Framework = "general"
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > maxEntries {
		l.entries = l.entries[1:]
	}
	return entry
}

// Entries returns entries matching the query, newest first.
func (l *Log) Entries(q Query) []Entry {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}

	l.mu.Lock()
	matched := make([]Entry, 0, len(l.entries))
	for _, entry := range l.entries {
		if q.ApplicationID != "" && entry.ApplicationID != q.ApplicationID {
			continue
		}
		if q.Step != "" && entry.Step != q.Step {
			continue
		}
		matched = append(matched, entry)
	}
	l.mu.Unlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

// Len returns the number of entries currently held.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
