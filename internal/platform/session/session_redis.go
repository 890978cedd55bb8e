// Package session provides Redis-backed persistence for per-session dashboard state.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_agent/internal/feature/analysis/domain/entity"
	"stock_agent/internal/feature/analysis/usecase"
)

// DefaultTTL is how long a session's dashboard state is retained after its last update.
const DefaultTTL = 24 * time.Hour

// SessionRedis implements usecase.SessionStore using Redis.
type SessionRedis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Compile-time check that SessionRedis satisfies the store interface.
var _ usecase.SessionStore = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
// If ttl is 0, DefaultTTL is used. If prefix is empty, it uses "session".
func NewSessionRedis(client *redis.Client, prefix string, ttl time.Duration) *SessionRedis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if prefix == "" {
		prefix = "session"
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// sessionKey returns the Redis key for a session's state.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Save persists the session state, refreshing its TTL.
func (r *SessionRedis) Save(ctx context.Context, sessionID string, state *entity.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(sessionID), data, r.ttl).Err()
}

// Find retrieves the state stored for a session.
// It returns usecase.ErrSessionNotFound when no state exists.
func (r *SessionRedis) Find(ctx context.Context, sessionID string) (*entity.SessionState, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var state entity.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	return &state, nil
}
