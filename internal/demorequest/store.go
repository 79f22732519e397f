package demorequest

import (
	"context"
	"sync"
)

// Store is the append-only record of accepted demo requests.
type Store interface {
	Append(ctx context.Context, rec StoredRequest) error
	List(ctx context.Context) ([]StoredRequest, error)
}

// MemoryStore keeps records for the lifetime of the process. Create one per
// server or test; there is no package-level instance.
type MemoryStore struct {
	mu      sync.RWMutex
	records []StoredRequest
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append records an accepted request.
func (s *MemoryStore) Append(ctx context.Context, rec StoredRequest) error {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return nil
}

// List returns a snapshot copy in submission order.
func (s *MemoryStore) List(ctx context.Context) ([]StoredRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]StoredRequest, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Len reports the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
