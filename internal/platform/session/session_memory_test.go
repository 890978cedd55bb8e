package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock_agent/internal/feature/analysis/usecase"
)

func TestSessionMemory_SaveAndFind(t *testing.T) {
	t.Parallel()

	store := NewSessionMemory()
	state := testState()

	require.NoError(t, store.Save(context.Background(), "sess-1", state))

	got, err := store.Find(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", got.Symbol)
	assert.Equal(t, "Signal: BUY", got.Analysis)
}

func TestSessionMemory_Find_NotFound(t *testing.T) {
	t.Parallel()

	store := NewSessionMemory()

	_, err := store.Find(context.Background(), "missing")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionMemory_SaveCopiesState(t *testing.T) {
	t.Parallel()

	store := NewSessionMemory()
	state := testState()
	require.NoError(t, store.Save(context.Background(), "sess-1", state))

	// Mutating the original after Save must not affect the stored copy.
	state.Analysis = "Signal: SELL"

	got, err := store.Find(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Signal: BUY", got.Analysis)
}
