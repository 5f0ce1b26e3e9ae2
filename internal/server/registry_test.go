package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finko/finko/internal/progression"
)

func TestRegistry_Expire(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRegistry()
	reg.now = func() time.Time { return now }

	reg.Put(&progression.Session{ID: "old"})
	now = now.Add(20 * time.Minute)
	reg.Put(&progression.Session{ID: "fresh"})
	now = now.Add(15 * time.Minute)

	expired := reg.Expire(30 * time.Minute)
	require.Len(t, expired, 1)
	assert.Equal(t, "old", expired[0].ID)

	_, ok := reg.Get("old")
	assert.False(t, ok)
	_, ok = reg.Get("fresh")
	assert.True(t, ok)
}

func TestRegistry_GetRefreshes(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg := NewRegistry()
	reg.now = func() time.Time { return now }

	reg.Put(&progression.Session{ID: "s"})
	now = now.Add(25 * time.Minute)
	_, ok := reg.Get("s")
	require.True(t, ok)
	now = now.Add(25 * time.Minute)

	assert.Empty(t, reg.Expire(30*time.Minute))
	assert.Equal(t, 1, reg.Len())
}
