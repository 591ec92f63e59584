// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"github.com/fairlens/fairlens/internal/domain"
)

// Factor represents one composite trust scorer in the evaluation pipeline
// (e.g. Data Quality). A Factor blends its sub-evaluator scores into a
// single 0-100 score and records a structured explanation of the blend.
//
// Factor instances carry per-evaluation state (the recorded explanation),
// so callers obtain a fresh instance per evaluation via a FactorFactory
// rather than sharing one across calls.
type Factor interface {
	// ID returns the stable identifier used in framework mappings,
	// such as "data_quality".
	ID() string

	// Name returns the human-readable factor name, such as "Data Quality".
	Name() string

	// Weight returns the factor's weight in the overall trust score.
	Weight() float64

	// Evaluate scores the record and returns a value in [0, 100].
	// Missing or nil fields never cause an error; they contribute
	// neutrally by policy.
	Evaluate(rec domain.Record) (float64, error)

	// Explanation returns the structured explanation recorded by the most
	// recent Evaluate call. Calling it before Evaluate fails with
	// domain.ErrNotEvaluated.
	Explanation() (domain.Explanation, error)
}

// FactorFactory constructs a fresh Factor instance with the given overall
// weight. The trust evaluator invokes factories once per evaluation so
// explanation state never leaks between calls.
type FactorFactory func(weight float64) Factor
