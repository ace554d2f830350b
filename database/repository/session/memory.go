package sessionRepo

import (
	"context"
	"encoding/json"
	"sync"

	"advisorly/models"
)

// MemoryStore is the in-process session store used for single-node deployments
// and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*models.Session)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

func (s *MemoryStore) Save(ctx context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = cloneSession(session)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// cloneSession deep-copies via JSON so callers never share slices with the store.
func cloneSession(s *models.Session) *models.Session {
	data, err := json.Marshal(s)
	if err != nil {
		cp := *s
		return &cp
	}
	var out models.Session
	if err := json.Unmarshal(data, &out); err != nil {
		cp := *s
		return &cp
	}
	return &out
}
