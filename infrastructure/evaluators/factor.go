package evaluators

import (
	"github.com/fairlens/fairlens/internal/domain"
)

// baseFactor carries the identity and per-evaluation state shared by all
// trust factors. Concrete factors embed it and call record after blending
// their sub-scores.
type baseFactor struct {
	id     string
	name   string
	weight float64

	evaluated   bool
	explanation domain.Explanation
}

// ID returns the stable identifier used in framework mappings.
func (f *baseFactor) ID() string { return f.id }

// Name returns the human-readable factor name.
func (f *baseFactor) Name() string { return f.name }

// Weight returns the factor's weight in the overall trust score.
func (f *baseFactor) Weight() float64 { return f.weight }

// Explanation returns the explanation recorded by the most recent
// Evaluate call. It fails with domain.ErrNotEvaluated when the factor has
// not been evaluated yet.
func (f *baseFactor) Explanation() (domain.Explanation, error) {
	if !f.evaluated {
		return domain.Explanation{}, domain.ErrNotEvaluated
	}
	return f.explanation, nil
}

// record stores the blended score and its explanation. Re-evaluation
// overwrites the previous explanation; callers needing isolation use a
// fresh factor instance per evaluation.
func (f *baseFactor) record(score float64, components map[string]float64, summary string) {
	f.explanation = domain.Explanation{
		Factor:     f.name,
		Score:      score,
		Components: components,
		Summary:    summary,
	}
	f.evaluated = true
}
