package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/planner"
)

// twoDayPlan builds the fixture most tests start from: two days with two
// items each, plus populated pools.
func twoDayPlan() domain.Plan {
	return domain.Plan{
		Meta: domain.PlanMeta{Destination: "Pondicherry"},
		Days: []domain.Day{
			{ID: "day-1", Title: "Day 1", Items: []domain.Item{
				{ID: "a1", Title: "Beach"},
				{ID: "a2", Title: "Lunch", IsMeal: true},
			}},
			{ID: "day-2", Title: "Day 2", Items: []domain.Item{
				{ID: "b1", Title: "Museum"},
				{ID: "b2", Title: "Dinner", IsMeal: true},
			}},
		},
		SuggestedPlaces: []domain.Item{
			{ID: "s1", Title: "Botanical Garden"},
			{ID: "s2", Title: "Old Lighthouse"},
			{ID: "s3", Title: "Paradise Cafe"},
		},
		HiddenGems: []domain.Item{
			{ID: "g1", Title: "Quiet Alley"},
			{ID: "g2", Title: "Rooftop View"},
		},
	}
}

func itemIDs(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

// TestNewEditor_doesNotAliasInput verifies the editor works on a deep copy:
// edits never reach the caller's plan, and later caller mutations never reach
// the draft.
func TestNewEditor_doesNotAliasInput(t *testing.T) {
	plan := twoDayPlan()
	e := planner.NewEditor(plan)

	require.NoError(t, e.DeleteFromDay(0, 0))
	assert.Len(t, plan.Days[0].Items, 2, "caller's plan must be untouched")

	plan.Days[1].Items[0].Title = "mutated"
	assert.Equal(t, "Museum", e.Draft().Days[1].Items[0].Title)
}

// TestReorderDayItems verifies reorder changes position only: same membership,
// same length, no identity changes.
func TestReorderDayItems(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.ReorderDayItems(0, 0, 1))

	got := e.Draft().Days[0].Items
	assert.Equal(t, []string{"a2", "a1"}, itemIDs(got))
}

// TestReorderDayItems_noOps verifies out-of-range positions and from == to
// leave the day untouched and return no error.
func TestReorderDayItems_noOps(t *testing.T) {
	for _, tc := range []struct {
		name     string
		from, to int
	}{
		{"from negative", -1, 0},
		{"from past end", 5, 0},
		{"to negative", 0, -1},
		{"to past end", 0, 5},
		{"same position", 1, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			e := planner.NewEditor(twoDayPlan())
			require.NoError(t, e.ReorderDayItems(0, tc.from, tc.to))
			assert.Equal(t, []string{"a1", "a2"}, itemIDs(e.Draft().Days[0].Items))
		})
	}
}

// TestReorderDayItems_badDayIndex verifies a day index that addresses no day
// is a validation error, not a silent no-op.
func TestReorderDayItems_badDayIndex(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.ErrorIs(t, e.ReorderDayItems(7, 0, 1), domain.ErrValidation)
	require.ErrorIs(t, e.ReorderDayItems(-1, 0, 1), domain.ErrValidation)
}

// TestReorderPool verifies pool reordering and unknown-pool rejection.
func TestReorderPool(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.ReorderPool(domain.PoolSuggested, 2, 0))
	assert.Equal(t, []string{"s3", "s1", "s2"}, itemIDs(e.Draft().SuggestedPlaces))

	require.ErrorIs(t, e.ReorderPool("favorites", 0, 1), domain.ErrValidation)
}

// TestCopyPoolItemToDay verifies the copy gets a fresh instance ID carrying
// the pool item's identity as origin, and that the pool keeps its item.
func TestCopyPoolItemToDay(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 1))

	draft := e.Draft()
	require.Len(t, draft.Days[0].Items, 3)

	inst := draft.Days[0].Items[1]
	assert.Equal(t, "Botanical Garden", inst.Title)
	assert.Equal(t, "s1", inst.OriginID)
	assert.NotEqual(t, "s1", inst.ID)
	assert.NotEmpty(t, inst.ID)

	assert.Equal(t, []string{"s1", "s2", "s3"}, itemIDs(draft.SuggestedPlaces), "pool is unchanged by a copy")
}

// TestCopyPoolItemToDay_duplicateOrigin verifies a day holds at most one
// instance per origin and that the failed copy leaves the day unchanged.
func TestCopyPoolItemToDay_duplicateOrigin(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 0))
	before := e.Draft()

	err := e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 2)

	require.ErrorIs(t, err, domain.ErrDuplicateItem)
	assert.Equal(t, before, e.Draft())
}

// TestCopyPoolItemToDay_sameOriginDifferentDays verifies independent copies of
// one origin may live on different days at the same time.
func TestCopyPoolItemToDay_sameOriginDifferentDays(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.CopyPoolItemToDay(domain.PoolHiddenGems, 0, 0, 0))
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolHiddenGems, 0, 1, 0))

	draft := e.Draft()
	first, second := draft.Days[0].Items[0], draft.Days[1].Items[0]
	assert.Equal(t, "g1", first.OriginID)
	assert.Equal(t, "g1", second.OriginID)
	assert.NotEqual(t, first.ID, second.ID, "each copy is an independent instance")
}

// TestCopyPoolItemToDay_atIndexClamped verifies the insert position is
// clamped to the day's bounds rather than rejected.
func TestCopyPoolItemToDay_atIndexClamped(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 1, 0, 99))
	assert.Equal(t, "s2", e.Draft().Days[0].Items[2].OriginID, "past-the-end lands last")

	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 2, 0, -5))
	assert.Equal(t, "s3", e.Draft().Days[0].Items[0].OriginID, "negative lands first")
}

// TestCopyPoolItemToDay_badIndices verifies pool index and day index errors.
func TestCopyPoolItemToDay_badIndices(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.ErrorIs(t, e.CopyPoolItemToDay(domain.PoolSuggested, 9, 0, 0), domain.ErrValidation)
	require.ErrorIs(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 9, 0), domain.ErrValidation)
}

// TestMoveDayItemToPool verifies the pool identity reconstruction: the ID
// becomes the origin key and the origin tag is cleared.
func TestMoveDayItemToPool(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 0))

	require.NoError(t, e.MoveDayItemToPool(0, 0, domain.PoolSuggested))

	draft := e.Draft()
	assert.Len(t, draft.Days[0].Items, 2, "instance removed from the day")

	returned := draft.SuggestedPlaces[len(draft.SuggestedPlaces)-1]
	assert.Equal(t, "s1", returned.ID, "pool identity restored from the origin")
	assert.Empty(t, returned.OriginID)
}

// TestMoveDayItemToPool_nativeItem verifies a day item that never came from a
// pool keeps its own ID when moved out.
func TestMoveDayItemToPool_nativeItem(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.MoveDayItemToPool(0, 0, domain.PoolHiddenGems))

	draft := e.Draft()
	returned := draft.HiddenGems[len(draft.HiddenGems)-1]
	assert.Equal(t, "a1", returned.ID)
	assert.Empty(t, returned.OriginID)
}

// TestMoveDayItemToPool_missingIndex verifies a stale item index is a silent
// no-op.
func TestMoveDayItemToPool_missingIndex(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	before := e.Draft()

	require.NoError(t, e.MoveDayItemToPool(0, 9, domain.PoolSuggested))
	assert.Equal(t, before, e.Draft())
}

// TestMoveItemBetweenDays verifies a successful cross-day move keeps the
// item's identity and origin tag.
func TestMoveItemBetweenDays(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 0))

	require.NoError(t, e.MoveItemBetweenDays(0, 0, 1, 1))

	draft := e.Draft()
	assert.Equal(t, []string{"a1", "a2"}, itemIDs(draft.Days[0].Items))
	require.Len(t, draft.Days[1].Items, 3)
	moved := draft.Days[1].Items[1]
	assert.Equal(t, "s1", moved.OriginID, "origin tag survives the move")
}

// TestMoveItemBetweenDays_duplicateRollsBack verifies the duplicate case: the
// item is reinserted at its exact source position and the destination is
// untouched.
func TestMoveItemBetweenDays_duplicateRollsBack(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	// The same origin on both days, as independent copies.
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 1))
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 1, 0))
	before := e.Draft()

	err := e.MoveItemBetweenDays(0, 1, 1, 0)

	require.ErrorIs(t, err, domain.ErrDuplicateItem)
	assert.Equal(t, before, e.Draft(), "both days exactly as they were")
}

// TestMoveItemBetweenDays_missingFromIndex verifies a stale source index is a
// silent no-op.
func TestMoveItemBetweenDays_missingFromIndex(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	before := e.Draft()

	require.NoError(t, e.MoveItemBetweenDays(0, 9, 1, 0))
	assert.Equal(t, before, e.Draft())
}

// TestDeleteFromDay verifies unconditional removal and the silent no-op on a
// missing index.
func TestDeleteFromDay(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.DeleteFromDay(1, 0))
	assert.Equal(t, []string{"b2"}, itemIDs(e.Draft().Days[1].Items))

	require.NoError(t, e.DeleteFromDay(1, 9))
	assert.Equal(t, []string{"b2"}, itemIDs(e.Draft().Days[1].Items))
}

// TestDeleteFromDay_doesNotTouchPools verifies deleting a pool-derived
// instance never removes the pool's own item.
func TestDeleteFromDay_doesNotTouchPools(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	require.NoError(t, e.CopyPoolItemToDay(domain.PoolSuggested, 0, 0, 0))

	require.NoError(t, e.DeleteFromDay(0, 0))

	assert.Equal(t, []string{"s1", "s2", "s3"}, itemIDs(e.Draft().SuggestedPlaces))
}

// TestMoveWithinDay verifies the neighbour swap and the boundary no-ops.
func TestMoveWithinDay(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.MoveWithinDay(0, 0, +1))
	assert.Equal(t, []string{"a2", "a1"}, itemIDs(e.Draft().Days[0].Items))

	require.NoError(t, e.MoveWithinDay(0, 0, -1))
	assert.Equal(t, []string{"a2", "a1"}, itemIDs(e.Draft().Days[0].Items), "first item up is a no-op")

	require.NoError(t, e.MoveWithinDay(0, 1, +1))
	assert.Equal(t, []string{"a2", "a1"}, itemIDs(e.Draft().Days[0].Items), "last item down is a no-op")
}

// TestApply_dispatch verifies Apply routes ops by name and rejects unknown
// names with a validation error.
func TestApply_dispatch(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.Apply(domain.EditOp{
		Op: domain.EditCopyPoolToDay, Pool: domain.PoolSuggested,
		ItemIndex: 0, DayIndex: 0, AtIndex: 0,
	}))
	assert.Equal(t, "s1", e.Draft().Days[0].Items[0].OriginID)

	err := e.Apply(domain.EditOp{Op: "teleport"})
	require.ErrorIs(t, err, domain.ErrValidation)
}

// TestCommit_returnsIndependentCopy verifies the committed plan does not
// alias the editor's draft.
func TestCommit_returnsIndependentCopy(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())
	committed := e.Commit()

	require.NoError(t, e.DeleteFromDay(0, 0))

	assert.Len(t, committed.Days[0].Items, 2)
	assert.Len(t, e.Draft().Days[0].Items, 1)
}

// TestEditor_roundTrip walks the full drag-and-drop story: copy out of a
// pool, shuffle, move across days, return to the pool, and confirm the pool
// identity comes back intact.
func TestEditor_roundTrip(t *testing.T) {
	e := planner.NewEditor(twoDayPlan())

	require.NoError(t, e.CopyPoolItemToDay(domain.PoolHiddenGems, 1, 0, 0))
	require.NoError(t, e.MoveWithinDay(0, 0, +1))
	require.NoError(t, e.MoveItemBetweenDays(0, 1, 1, 0))
	require.NoError(t, e.MoveDayItemToPool(1, 0, domain.PoolHiddenGems))

	draft := e.Draft()
	assert.Equal(t, []string{"a1", "a2"}, itemIDs(draft.Days[0].Items))
	assert.Equal(t, []string{"b1", "b2"}, itemIDs(draft.Days[1].Items))
	assert.Equal(t, []string{"g1", "g2", "g2"}, itemIDs(draft.HiddenGems), "returned copy restores its pool identity")
}
