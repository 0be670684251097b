package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynotrip/backend/internal/domain"
)

// TestItem_OriginKey verifies that duplicate-detection identity prefers the
// origin back-reference and falls back to the item's own ID.
func TestItem_OriginKey(t *testing.T) {
	assert.Equal(t, "pool-1", domain.Item{ID: "inst-9", OriginID: "pool-1"}.OriginKey())
	assert.Equal(t, "inst-9", domain.Item{ID: "inst-9"}.OriginKey())
}

// TestPlan_Clone_isIndependent verifies that mutating a clone never leaks
// into the original, down to nested slices.
func TestPlan_Clone_isIndependent(t *testing.T) {
	original := domain.Plan{
		Meta: domain.PlanMeta{Destination: "Pondicherry"},
		Days: []domain.Day{
			{ID: "day-1", Title: "Day 1", Items: []domain.Item{
				{ID: "a", Title: "Beach", Photos: []string{"p1"}},
			}},
		},
		SuggestedPlaces: []domain.Item{{ID: "s1", Title: "Cafe"}},
		HiddenGems:      []domain.Item{{ID: "g1", Title: "Alley"}},
	}

	clone := original.Clone()
	clone.Meta.Destination = "Chennai"
	clone.Days[0].Items[0].Title = "Museum"
	clone.Days[0].Items[0].Photos[0] = "changed"
	clone.SuggestedPlaces[0].Title = "Bar"
	clone.HiddenGems = append(clone.HiddenGems, domain.Item{ID: "g2"})

	assert.Equal(t, "Pondicherry", original.Meta.Destination)
	assert.Equal(t, "Beach", original.Days[0].Items[0].Title)
	assert.Equal(t, "p1", original.Days[0].Items[0].Photos[0])
	assert.Equal(t, "Cafe", original.SuggestedPlaces[0].Title)
	assert.Len(t, original.HiddenGems, 1)
}

// TestPlan_IsEmpty verifies the empty test covers both days and metadata.
func TestPlan_IsEmpty(t *testing.T) {
	assert.True(t, domain.Plan{}.IsEmpty())
	assert.True(t, domain.SeedPlan().IsEmpty())
	assert.False(t, domain.Plan{Meta: domain.PlanMeta{Destination: "Goa"}}.IsEmpty())
	assert.False(t, domain.Plan{Days: []domain.Day{{ID: "day-1"}}}.IsEmpty())
}

// TestPlan_Pool verifies pool lookup by name and rejection of unknown names.
func TestPlan_Pool(t *testing.T) {
	p := domain.Plan{
		SuggestedPlaces: []domain.Item{{ID: "s1"}},
		HiddenGems:      []domain.Item{{ID: "g1"}},
	}

	suggested, err := p.Pool(domain.PoolSuggested)
	require.NoError(t, err)
	require.Equal(t, "s1", (*suggested)[0].ID)

	gems, err := p.Pool(domain.PoolHiddenGems)
	require.NoError(t, err)
	require.Equal(t, "g1", (*gems)[0].ID)

	_, err = p.Pool("wishlist")
	require.ErrorIs(t, err, domain.ErrValidation)
}

// TestSynthesizeDays_range verifies one day per date, inclusive of both ends,
// with sequential IDs and titles.
func TestSynthesizeDays_range(t *testing.T) {
	days := domain.SynthesizeDays("2026-01-09", "2026-01-11")

	require.Len(t, days, 3)
	assert.Equal(t, "day-1", days[0].ID)
	assert.Equal(t, "Day 1", days[0].Title)
	assert.Equal(t, "2026-01-09", days[0].Date)
	assert.Equal(t, "day-3", days[2].ID)
	assert.Equal(t, "2026-01-11", days[2].Date)
	for _, d := range days {
		assert.NotNil(t, d.Items)
		assert.Empty(t, d.Items)
	}
}

// TestSynthesizeDays_singleDay verifies a same-day trip yields one day.
func TestSynthesizeDays_singleDay(t *testing.T) {
	days := domain.SynthesizeDays("2026-03-01", "2026-03-01")
	require.Len(t, days, 1)
	assert.Equal(t, "2026-03-01", days[0].Date)
}

// TestSynthesizeDays_badInput verifies malformed or inverted ranges yield no
// days rather than an error.
func TestSynthesizeDays_badInput(t *testing.T) {
	assert.Nil(t, domain.SynthesizeDays("not-a-date", "2026-01-11"))
	assert.Nil(t, domain.SynthesizeDays("2026-01-09", "nope"))
	assert.Nil(t, domain.SynthesizeDays("2026-01-11", "2026-01-09"))
	assert.Nil(t, domain.SynthesizeDays("", ""))
}

// TestShareEntry_Expired verifies expiry is a strict after-comparison: the
// expiry instant itself still resolves.
func TestShareEntry_Expired(t *testing.T) {
	at := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	entry := domain.ShareEntry{ExpiresAt: at}

	assert.False(t, entry.Expired(at.Add(-time.Second)))
	assert.False(t, entry.Expired(at))
	assert.True(t, entry.Expired(at.Add(time.Second)))
}
