package catalog

import (
	"sync"

	"pokehub/pkg/models"
)

// Store holds the bulk-loaded collection. It is written wholesale when a
// load completes and is otherwise read-only; the mutex only covers the
// replace-on-reload case. Snapshots hand out the underlying slice, which
// callers must treat as immutable.
type Store struct {
	mu    sync.RWMutex
	items []models.PokemonSummary
	ready bool
}

func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a freshly loaded collection and marks the store ready.
func (s *Store) Replace(items []models.PokemonSummary) {
	s.mu.Lock()
	s.items = items
	s.ready = true
	s.mu.Unlock()
}

// Snapshot returns the current collection and whether a load has completed.
func (s *Store) Snapshot() ([]models.PokemonSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, s.ready
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
