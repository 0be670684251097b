package repo

import (
	"context"
	"fmt"
	"sync"

	"github.com/dynotrip/backend/internal/domain"
)

// MemorySessionKV is the in-memory SessionKV used when no database is
// configured (or local storage is unavailable). State does not survive a
// restart; the trip state container reseeds missing entries on load, so the
// degradation is graceful rather than fatal.
type MemorySessionKV struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

var _ SessionKV = (*MemorySessionKV)(nil)

// NewMemorySessionKV returns an empty in-memory store.
func NewMemorySessionKV() *MemorySessionKV {
	return &MemorySessionKV{sessions: make(map[string]map[string]string)}
}

// Get returns the stored value or domain.ErrNotFound.
func (m *MemorySessionKV) Get(_ context.Context, sessionID, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.sessions[sessionID][key]
	if !ok {
		return "", fmt.Errorf("repo.MemorySessionKV.Get: %w", domain.ErrNotFound)
	}
	return value, nil
}

// Set stores value, creating the session bucket on first write.
func (m *MemorySessionKV) Set(_ context.Context, sessionID, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket, ok := m.sessions[sessionID]
	if !ok {
		bucket = make(map[string]string)
		m.sessions[sessionID] = bucket
	}
	bucket[key] = value
	return nil
}

// Delete removes the entry; absent entries are a no-op.
func (m *MemorySessionKV) Delete(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions[sessionID], key)
	return nil
}
