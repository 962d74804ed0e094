package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roozegaar/calendar/internal/domain/entities"
)

func payload(total int) *entities.EventsPayload {
	return &entities.EventsPayload{Success: true, TotalEvents: total}
}

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory(24 * time.Hour)

	_, ok := m.Get("monthly-persian-1403/07-fa")
	assert.False(t, ok)

	m.Set("monthly-persian-1403/07-fa", payload(3))

	got, ok := m.Get("monthly-persian-1403/07-fa")
	require.True(t, ok)
	assert.Equal(t, 3, got.TotalEvents)
	assert.Equal(t, uint64(1), m.Hits())
	assert.Equal(t, uint64(1), m.Misses())
}

func TestMemory_Expiry(t *testing.T) {
	now := time.Date(2024, 9, 22, 12, 0, 0, 0, time.UTC)
	m := NewMemory(24*time.Hour, WithClock(func() time.Time { return now }))

	m.Set("k", payload(1))

	now = now.Add(23 * time.Hour)
	_, ok := m.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	_, ok = m.Get("k")
	assert.False(t, ok, "entry older than the freshness window is a miss")

	// Stale entries are not proactively evicted.
	assert.Equal(t, 1, m.Len())

	// A fresh Set overwrites the stale entry.
	m.Set("k", payload(2))
	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, got.TotalEvents)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_Clear(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Set("a", payload(1))
	m.Set("b", payload(2))
	require.Equal(t, 2, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get("a")
	assert.False(t, ok)
}

func TestMemory_KeysDoNotAlias(t *testing.T) {
	m := NewMemory(time.Hour)
	m.Set("daily-persian-1403/07/01-fa", payload(1))
	m.Set("daily-persian-1403/07/01-en", payload(2))

	fa, ok := m.Get("daily-persian-1403/07/01-fa")
	require.True(t, ok)
	en, ok := m.Get("daily-persian-1403/07/01-en")
	require.True(t, ok)
	assert.NotEqual(t, fa.TotalEvents, en.TotalEvents)
}
