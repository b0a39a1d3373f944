package session

import (
	"context"
	"sync"
)

// MemoryStore is the default draft store: a process-local map guarded by a
// mutex. Drafts do not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	drafts map[int64]Draft
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		drafts: make(map[int64]Draft),
	}
}

func (s *MemoryStore) Get(ctx context.Context, chatID int64) (Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[chatID]
	if !ok {
		return Draft{}, ErrNotFound
	}
	return draft, nil
}

func (s *MemoryStore) Save(ctx context.Context, chatID int64, draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[chatID] = draft
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, chatID)
	return nil
}
