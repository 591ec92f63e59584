package application

import (
	"fmt"
	"sync"

	"github.com/fairlens/fairlens/internal/domain"
	"github.com/fairlens/fairlens/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.DecisionStore = (*MemoryDecisionStore)(nil)

// MemoryDecisionStore keeps decisions in memory. It is the only store
// the demo ships; durability is explicitly out of scope.
type MemoryDecisionStore struct {
	// mu protects concurrent access to decisions and order.
	mu sync.RWMutex
	// decisions maps decision IDs to their content.
	decisions map[string]domain.Decision
	// order preserves insertion order for listing.
	order []string
}

// NewMemoryDecisionStore creates an empty in-memory decision store.
func NewMemoryDecisionStore() *MemoryDecisionStore {
	return &MemoryDecisionStore{decisions: make(map[string]domain.Decision)}
}

// Put stores a decision, overwriting any previous decision with the
// same ID without disturbing its position in the listing order.
func (s *MemoryDecisionStore) Put(decision domain.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.decisions[decision.ID]; !exists {
		s.order = append(s.order, decision.ID)
	}
	s.decisions[decision.ID] = decision
}

// Get returns the decision with the given ID, or
// domain.ErrUnknownDecision when absent.
func (s *MemoryDecisionStore) Get(id string) (domain.Decision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	decision, ok := s.decisions[id]
	if !ok {
		return domain.Decision{}, fmt.Errorf("%w: %s", domain.ErrUnknownDecision, id)
	}
	return decision, nil
}

// List returns all stored decisions in insertion order.
func (s *MemoryDecisionStore) List() []domain.Decision {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Decision, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.decisions[id])
	}
	return out
}
