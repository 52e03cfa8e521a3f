package keycache

import (
	"context"
	"sync"
)

// memoryStore keeps blobs in process memory
type memoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates a Store that forgets everything on restart.
//
//nolint:ireturn
func NewMemoryStore() Store {
	return &memoryStore{blobs: make(map[string][]byte)}
}

func (s *memoryStore) Load(_ context.Context, owner string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	blob, ok := s.blobs[owner]
	if !ok {
		return nil, ErrRecordNotFound
	}

	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *memoryStore) Save(_ context.Context, owner string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[owner] = stored
	return nil
}

func (s *memoryStore) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, owner)
	return nil
}
