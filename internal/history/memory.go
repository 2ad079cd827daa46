package history

import (
	"sync"

	"github.com/DVDHSN/RecipeAI/internal/domain"
)

// Compile-time interface check.
var _ domain.HistoryStore = (*MemoryStore)(nil)

// MemoryStore keeps the cookbook in memory. Used by tests and when
// persistence is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	entries []domain.CookedRecipe
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the stored entries.
func (s *MemoryStore) Load() ([]domain.CookedRecipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CookedRecipe, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save replaces the stored entries.
func (s *MemoryStore) Save(entries []domain.CookedRecipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]domain.CookedRecipe, len(entries))
	copy(s.entries, entries)
	return nil
}
