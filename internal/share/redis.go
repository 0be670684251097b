package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dynotrip/backend/internal/domain"
)

const redisKeyPrefix = "share:"

// RedisStore keeps share entries in Redis with a native TTL, so snapshots
// survive process restarts and are visible to every instance.
//
// Once Redis has evicted an expired key the store can no longer distinguish
// Expired from NotFound; both were going to render as "this link is no
// longer available" anyway. Entries read in the window between logical and
// physical expiry still report domain.ErrShareExpired.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an existing client. Pass ttl <= 0 to use DefaultTTL.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Publish stores the snapshot JSON under a fresh token with the TTL applied
// by Redis itself.
func (s *RedisStore) Publish(ctx context.Context, plan domain.Plan) (domain.ShareEntry, error) {
	token, err := NewToken(TokenLength)
	if err != nil {
		return domain.ShareEntry{}, fmt.Errorf("share.RedisStore.Publish: %w", err)
	}

	now := time.Now().UTC()
	entry := domain.ShareEntry{
		Token:     token,
		Plan:      plan.Clone(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return domain.ShareEntry{}, fmt.Errorf("share.RedisStore.Publish: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return domain.ShareEntry{}, fmt.Errorf("share.RedisStore.Publish: %w", err)
	}
	return entry, nil
}

// Resolve fetches and decodes the snapshot for token.
func (s *RedisStore) Resolve(ctx context.Context, token string) (domain.Plan, error) {
	payload, err := s.rdb.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Plan{}, fmt.Errorf("share.RedisStore.Resolve: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("share.RedisStore.Resolve: %w", err)
	}

	var entry domain.ShareEntry
	if err := json.Unmarshal(payload, &entry); err != nil {
		return domain.Plan{}, fmt.Errorf("share.RedisStore.Resolve: unmarshal: %w", err)
	}
	if entry.Expired(time.Now().UTC()) {
		// Redis will evict the key on its own; delete eagerly anyway so the
		// expired window closes as soon as it is observed.
		s.rdb.Del(ctx, redisKeyPrefix+token)
		return domain.Plan{}, fmt.Errorf("share.RedisStore.Resolve: %w", domain.ErrShareExpired)
	}
	return entry.Plan, nil
}

// Sweep is a no-op: Redis expires keys natively.
func (s *RedisStore) Sweep(context.Context) (int, error) {
	return 0, nil
}
