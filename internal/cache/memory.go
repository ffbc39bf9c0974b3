// Package cache provides coordinate caches for commune lookups. Commune
// coordinates are immutable reference data, so neither backend evicts:
// entries live for the process (memory) or until flushed out of band (redis).
// Absence is cached too, so a misspelled commune is only looked up once.
package cache

import (
	"context"
	"sync"

	"github.com/elsouk/elsouk/internal/geo"
)

// Memory is an in-process coordinate cache keyed by normalized commune name.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*geo.Coordinates
}

// NewMemory creates an empty in-process coordinate cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*geo.Coordinates)}
}

// Get returns the cached coordinates for a key. found distinguishes
// "cached as absent" (nil, true) from "never looked up" (nil, false).
func (m *Memory) Get(_ context.Context, key string) (*geo.Coordinates, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	coords, found := m.entries[key]
	return coords, found
}

// Set stores coordinates for a key. A nil value records a failed lookup.
func (m *Memory) Set(_ context.Context, key string, coords *geo.Coordinates) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = coords
}

// Len returns the number of cached entries, negative entries included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
