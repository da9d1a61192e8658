package loader

import (
	"sync"

	"taipamap/pkg/model"
)

// Store holds the current published snapshot. Writes come from load
// completion only; reads come from the HTTP handlers.
type Store struct {
	mu   sync.RWMutex
	snap *model.Snapshot
}

// NewStore creates a store holding an empty, not-ready snapshot so that
// readers always see one entry per source, even before the first load
// completes.
func NewStore(order []string) *Store {
	return &Store{snap: model.NewSnapshot(order)}
}

// Snapshot returns the currently published snapshot.
func (s *Store) Snapshot() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Publish replaces the snapshot wholesale.
func (s *Store) Publish(snap *model.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
}

// Ready reports whether a completed load has been published.
func (s *Store) Ready() bool {
	return s.Snapshot().Ready
}
