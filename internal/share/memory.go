package share

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dynotrip/backend/internal/domain"
)

// MemoryStore is the process-local Store. Concurrent publishes never corrupt
// the map (last writer for a token wins) and deletes are idempotent, so the
// background sweep and lazy expiry on Resolve may race harmlessly.
type MemoryStore struct {
	ttl time.Duration

	mu      sync.RWMutex
	entries map[string]domain.ShareEntry
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store whose entries live for ttl.
// Pass ttl <= 0 to use DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]domain.ShareEntry),
	}
}

// Publish stores a deep copy of plan under a fresh token.
func (s *MemoryStore) Publish(_ context.Context, plan domain.Plan) (domain.ShareEntry, error) {
	token, err := NewToken(TokenLength)
	if err != nil {
		return domain.ShareEntry{}, fmt.Errorf("share.MemoryStore.Publish: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.ShareEntry{
		Token:     token,
		Plan:      plan.Clone(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.entries[token] = entry
	s.mu.Unlock()
	return entry, nil
}

// Resolve returns the snapshot for token. Every resolve also sweeps the
// whole store opportunistically, so expired entries are reclaimed even
// between runs of the periodic sweeper.
func (s *MemoryStore) Resolve(_ context.Context, token string) (domain.Plan, error) {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Snapshot the entry before the sweep so an expired token still reports
	// ErrShareExpired on its first read instead of ErrNotFound.
	entry, ok := s.entries[token]
	s.sweepLocked(now)

	if !ok {
		return domain.Plan{}, fmt.Errorf("share.MemoryStore.Resolve: %w", domain.ErrNotFound)
	}
	if entry.Expired(now) {
		return domain.Plan{}, fmt.Errorf("share.MemoryStore.Resolve: %w", domain.ErrShareExpired)
	}
	return entry.Plan.Clone(), nil
}

// Sweep drops every expired entry.
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(time.Now().UTC()), nil
}

// sweepLocked removes expired entries; the caller holds mu.
func (s *MemoryStore) sweepLocked(now time.Time) int {
	n := 0
	for token, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, token)
			n++
		}
	}
	return n
}

// Len reports the number of live and expired entries still held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
