package share_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/share"
	"github.com/dynotrip/backend/testutil"
)

// TestRedisStore_publishResolve is an integration test against a live Redis.
// Set TEST_REDIS_URL to run it.
func TestRedisStore_publishResolve(t *testing.T) {
	rdb := testutil.NewRedisClient(t)
	s := share.NewRedisStore(rdb, time.Minute)

	entry, err := s.Publish(context.Background(), samplePlan())
	require.NoError(t, err)
	require.Len(t, entry.Token, share.TokenLength)

	got, err := s.Resolve(context.Background(), entry.Token)
	require.NoError(t, err)
	assert.Equal(t, "Pondicherry", got.Meta.Destination)
	require.Len(t, got.Days, 1)
	assert.Equal(t, "Beach", got.Days[0].Items[0].Title)

	// Redis applies the TTL natively.
	ttl := rdb.TTL(context.Background(), "share:"+entry.Token).Val()
	assert.Greater(t, ttl, 50*time.Second)
}

// TestRedisStore_unknownToken verifies a missing key maps to ErrNotFound.
func TestRedisStore_unknownToken(t *testing.T) {
	rdb := testutil.NewRedisClient(t)
	s := share.NewRedisStore(rdb, time.Minute)

	_, err := s.Resolve(context.Background(), "no-such-token")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRedisStore_logicallyExpired verifies an entry whose logical expiry has
// passed but whose key Redis has not yet evicted reports ErrShareExpired and
// is deleted eagerly. The entry is planted directly so the two expiry clocks
// can be controlled independently.
func TestRedisStore_logicallyExpired(t *testing.T) {
	rdb := testutil.NewRedisClient(t)
	s := share.NewRedisStore(rdb, time.Minute)

	now := time.Now().UTC()
	payload, err := json.Marshal(domain.ShareEntry{
		Token:     "stale-token",
		Plan:      samplePlan(),
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, rdb.Set(context.Background(), "share:stale-token", payload, time.Minute).Err())

	_, err = s.Resolve(context.Background(), "stale-token")
	require.ErrorIs(t, err, domain.ErrShareExpired)

	_, err = s.Resolve(context.Background(), "stale-token")
	require.ErrorIs(t, err, domain.ErrNotFound, "eager delete closes the window")
}
