// Package cache provides the in-memory, time-boxed store for remote event
// responses.
package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/roozegaar/calendar/internal/domain/entities"
)

type entry struct {
	payload   *entities.EventsPayload
	timestamp time.Time
}

// Memory is a TTL cache keyed by query string. Staleness is checked lazily at
// lookup time; stale entries stay in the map until overwritten or cleared.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Option configures a Memory cache.
type Option func(*Memory)

// WithClock injects a clock, enabling deterministic expiry tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates a cache whose entries are fresh for ttl.
func NewMemory(ttl time.Duration, opts ...Option) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the cached payload for key if it is still fresh. A stale entry
// counts as a miss.
func (m *Memory) Get(key string) (*entities.EventsPayload, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().Sub(e.timestamp) >= m.ttl {
		m.misses.Add(1)
		return nil, false
	}
	m.hits.Add(1)
	return e.payload, true
}

// Set stores payload under key, replacing any previous entry wholesale.
func (m *Memory) Set(key string, payload *entities.EventsPayload) {
	m.mu.Lock()
	m.entries[key] = entry{payload: payload, timestamp: m.now()}
	m.mu.Unlock()
}

// Clear discards all entries unconditionally.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
}

// Len returns the number of entries currently held, fresh or stale.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Hits returns the number of fresh lookups served since construction.
func (m *Memory) Hits() uint64 { return m.hits.Load() }

// Misses returns the number of lookups that required a fetch.
func (m *Memory) Misses() uint64 { return m.misses.Load() }
