package session

import (
	"context"
	"sync"

	"stock_agent/internal/feature/analysis/domain/entity"
	"stock_agent/internal/feature/analysis/usecase"
)

// SessionMemory is an in-process SessionStore used when Redis is unavailable.
// State is lost on restart, which is acceptable for a single-user deployment.
type SessionMemory struct {
	mu     sync.RWMutex
	states map[string]entity.SessionState
}

var _ usecase.SessionStore = (*SessionMemory)(nil)

// NewSessionMemory creates an empty in-memory session store.
func NewSessionMemory() *SessionMemory {
	return &SessionMemory{states: make(map[string]entity.SessionState)}
}

// Save stores a copy of the state for the given session ID.
func (s *SessionMemory) Save(ctx context.Context, sessionID string, state *entity.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[sessionID] = *state
	return nil
}

// Find returns the stored state, or ErrSessionNotFound when absent.
func (s *SessionMemory) Find(ctx context.Context, sessionID string) (*entity.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[sessionID]
	if !ok {
		return nil, usecase.ErrSessionNotFound
	}
	return &state, nil
}
