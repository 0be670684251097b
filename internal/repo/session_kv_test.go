package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/repo"
	"github.com/dynotrip/backend/testutil"
)

// newTestKV opens a transaction against the test database and returns a
// SessionKV backed by that transaction. The transaction is automatically
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestKV(t *testing.T) repo.SessionKV {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.NewSessionKV(tx)
}

func TestSessionKV_SetGet(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s1", "plan", `{"days":[]}`))

	got, err := kv.Get(ctx, "s1", "plan")
	require.NoError(t, err)
	assert.Equal(t, `{"days":[]}`, got)
}

func TestSessionKV_Get_missing(t *testing.T) {
	kv := newTestKV(t)

	_, err := kv.Get(context.Background(), "s1", "plan")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionKV_Set_overwrites(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s1", "plan", `{"v":1}`))
	require.NoError(t, kv.Set(ctx, "s1", "plan", `{"v":2}`))

	got, err := kv.Get(ctx, "s1", "plan")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, got, "upsert: last write wins")
}

func TestSessionKV_isolation(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s1", "plan", `{"who":"s1"}`))
	require.NoError(t, kv.Set(ctx, "s2", "plan", `{"who":"s2"}`))
	require.NoError(t, kv.Set(ctx, "s1", "preferences", `{"departure":"Chennai"}`))

	got, err := kv.Get(ctx, "s1", "plan")
	require.NoError(t, err)
	assert.Equal(t, `{"who":"s1"}`, got)

	got, err = kv.Get(ctx, "s2", "plan")
	require.NoError(t, err)
	assert.Equal(t, `{"who":"s2"}`, got)
}

func TestSessionKV_Delete(t *testing.T) {
	kv := newTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "s1", "selections", `{}`))
	require.NoError(t, kv.Delete(ctx, "s1", "selections"))

	_, err := kv.Get(ctx, "s1", "selections")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting an absent entry is a no-op, not an error.
	require.NoError(t, kv.Delete(ctx, "s1", "selections"))
}
