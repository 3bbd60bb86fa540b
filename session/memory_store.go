package session

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of the Store interface. It is
// intended for tests and for processes that do not need the session to
// survive a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	current Session
}

// NewMemoryStore creates a new in-memory store holding an empty session
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(ctx context.Context) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

func (s *MemoryStore) Set(ctx context.Context, next Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = next
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Session{}
	return nil
}
