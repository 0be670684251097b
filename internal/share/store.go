// Package share implements the shared-plan token store: opaque tokens
// mapping to immutable, time-limited snapshots of a plan.
//
// The store is an injected interface so deployments can choose a backend:
// the in-memory store is process-local and does not survive restarts or
// horizontal scaling — a known limitation inherited from the source design —
// while the Redis store keeps tokens in an external TTL-capable service.
package share

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/dynotrip/backend/internal/domain"
)

// DefaultTTL is how long a published snapshot stays resolvable.
const DefaultTTL = 7 * 24 * time.Hour

// TokenLength is the number of alphanumeric characters in a share token.
const TokenLength = 22

// Store publishes and resolves read-only plan snapshots.
type Store interface {
	// Publish snapshots the plan (deep copy, never a live reference) and
	// returns the new entry. Only an object-level check is applied — empty
	// or placeholder plans are accepted. A token collision overwrites the
	// older entry; at this token length collisions are not expected.
	Publish(ctx context.Context, plan domain.Plan) (domain.ShareEntry, error)

	// Resolve returns the snapshot for token. It returns domain.ErrNotFound
	// for an unknown token and domain.ErrShareExpired for one whose TTL has
	// elapsed; an expired entry is deleted as a side effect.
	Resolve(ctx context.Context, token string) (domain.Plan, error)

	// Sweep removes expired entries and returns how many were dropped.
	// Backends whose storage expires keys natively may make this a no-op.
	Sweep(ctx context.Context) (int, error)
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewToken returns n alphanumeric characters from crypto/rand. Bytes outside
// the largest multiple of the alphabet size are rejected so every character
// is uniformly distributed.
func NewToken(n int) (string, error) {
	// Largest multiple of the alphabet size that fits in a byte; 248..255
	// are rejected so the modulo below cannot favor the low indices.
	const max = byte(256 - 256%len(tokenAlphabet))
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
