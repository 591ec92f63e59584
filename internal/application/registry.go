package application

import (
	"fmt"
	"sync"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// FrameworkRegistry manages the regulatory frameworks available for
// compliance evaluation. Frameworks register under their own names and
// can be queried individually or across the whole registry.
type FrameworkRegistry struct {
	// mu protects concurrent access to the frameworks map.
	mu sync.RWMutex
	// frameworks maps framework names to their implementations.
	frameworks map[string]ports.Framework
	// order preserves registration order for listing.
	order []string
}

// NewFrameworkRegistry creates an empty framework registry. Callers
// register the frameworks they need; nothing is pre-registered.
func NewFrameworkRegistry() *FrameworkRegistry {
	return &FrameworkRegistry{frameworks: make(map[string]ports.Framework)}
}

// Register adds a framework under its own name. Registering a name twice
// fails with domain.ErrDuplicateFramework.
func (r *FrameworkRegistry) Register(fw ports.Framework) error {
	name := fw.Name()
	if name == "" {
		return fmt.Errorf("%w: framework has no name", domain.ErrInvalidConfiguration)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.frameworks[name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateFramework, name)
	}
	r.frameworks[name] = fw
	r.order = append(r.order, name)
	return nil
}

// Framework returns the framework registered under the given name, or
// domain.ErrUnknownFramework when no such framework exists.
func (r *FrameworkRegistry) Framework(name string) (ports.Framework, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fw, ok := r.frameworks[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFramework, name)
	}
	return fw, nil
}

// Names returns the registered framework names in registration order.
func (r *FrameworkRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// EvaluateCompliance checks the trust report against the named
// framework. An empty name falls back to the framework recorded in the
// trust report itself.
func (r *FrameworkRegistry) EvaluateCompliance(name string, trust domain.TrustReport) (domain.ComplianceReport, error) {
	if name == "" {
		name = trust.Framework
	}

	fw, err := r.Framework(name)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	return fw.EvaluateCompliance(trust)
}

// RequirementsForFactor returns the requirements mapped to the factor
// in every registered framework that maps it, keyed by framework name.
// Frameworks with no mapping for the factor are omitted.
func (r *FrameworkRegistry) RequirementsForFactor(factorID string) map[string][]domain.Requirement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]domain.Requirement)
	for name, fw := range r.frameworks {
		if reqs := fw.RequirementsForFactor(factorID); len(reqs) > 0 {
			out[name] = reqs
		}
	}
	return out
}

// FactorsForRequirement returns the factor contributions mapped to the
// requirement within the named framework.
func (r *FrameworkRegistry) FactorsForRequirement(name, requirementID string) ([]domain.FactorContribution, error) {
	fw, err := r.Framework(name)
	if err != nil {
		return nil, err
	}
	return fw.FactorsForRequirement(requirementID), nil
}
