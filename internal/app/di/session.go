package di

import (
	"github.com/redis/go-redis/v9"

	"stock_agent/internal/feature/analysis/usecase"
	"stock_agent/internal/platform/session"
)

// NewSessionStore creates a SessionStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process store.
func NewSessionStore(rdb *redis.Client) usecase.SessionStore {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session", session.DefaultTTL)
	}
	return session.NewSessionMemory()
}
