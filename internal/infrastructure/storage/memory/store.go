// Package memory provides in-memory implementations of the persistence
// ports. Used in tests and local tooling; not safe for durable storage.
package memory

import (
	"context"
	"sync"
	"time"

	"basekit/internal/core/entity"
	"basekit/internal/core/id"
	"basekit/internal/domain/lifecycle"
)

// Compile-time check that Store implements lifecycle.Store.
var _ lifecycle.Store = (*Store)(nil)

// Store keeps the last saved state of every entity in a map.
type Store struct {
	mu      sync.RWMutex
	saved   map[id.ID]entity.SoftDeletable
	removed map[id.ID]bool
	saves   []id.ID
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		saved:   make(map[id.ID]entity.SoftDeletable),
		removed: make(map[id.ID]bool),
	}
}

// Save stamps the lifecycle timestamps and records the entity.
func (s *Store) Save(_ context.Context, obj entity.SoftDeletable) error {
	obj.Envelope().StampSave(time.Now().UTC())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[obj.GetID()] = obj
	s.saves = append(s.saves, obj.GetID())
	delete(s.removed, obj.GetID())
	return nil
}

// Remove physically deletes the entity.
func (s *Store) Remove(_ context.Context, obj entity.SoftDeletable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, obj.GetID())
	s.removed[obj.GetID()] = true
	return nil
}

// Get returns the last saved state of an entity, or nil.
func (s *Store) Get(entityID id.ID) entity.SoftDeletable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved[entityID]
}

// Removed reports whether the entity was physically deleted.
func (s *Store) Removed(entityID id.ID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.removed[entityID]
}

// SaveOrder returns the IDs in the order they were saved.
func (s *Store) SaveOrder() []id.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]id.ID, len(s.saves))
	copy(out, s.saves)
	return out
}
