package ai_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynotrip/backend/internal/ai"
	"github.com/dynotrip/backend/internal/domain"
)

// TestMockGenerator_TravelStay verifies both legs and the hotel list are
// populated and deterministic.
func TestMockGenerator_TravelStay(t *testing.T) {
	g := ai.NewMockGenerator()
	prefs := domain.Preferences{Departure: "Chennai", Destination: "Pondicherry"}

	resp, err := g.TravelStay(context.Background(), prefs)
	require.NoError(t, err)

	require.NotNil(t, resp.TravelOptions)
	assert.Len(t, resp.TravelOptions.Outbound, 2)
	assert.Len(t, resp.TravelOptions.Return, 2)

	require.NotNil(t, resp.LodgingOptions)
	require.Len(t, resp.LodgingOptions.Hotels, 3)
	assert.Contains(t, resp.LodgingOptions.Hotels[0].Name, "Pondicherry")

	assert.Nil(t, resp.Plan, "travel-stay carries no plan")

	again, err := g.TravelStay(context.Background(), prefs)
	require.NoError(t, err)
	assert.Equal(t, resp, again, "same input, same output")
}

// TestMockGenerator_ItineraryFromSelections verifies one day per preference
// date, the day item shape, and the pool limits.
func TestMockGenerator_ItineraryFromSelections(t *testing.T) {
	g := ai.NewMockGenerator()
	prefs := domain.Preferences{
		Departure: "Chennai", Destination: "Pondicherry",
		StartDate: "2026-01-09", EndDate: "2026-01-11",
	}

	resp, err := g.ItineraryFromSelections(context.Background(), prefs, domain.Selections{})
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)

	plan := *resp.Plan
	assert.Equal(t, "Chennai", plan.Meta.Departure)
	assert.Equal(t, "Pondicherry", plan.Meta.Destination)

	require.Len(t, plan.Days, 3)
	for _, day := range plan.Days {
		require.Len(t, day.Items, 3)
		assert.True(t, day.Items[1].IsMeal, "the middle item is the meal")
	}

	assert.LessOrEqual(t, len(plan.SuggestedPlaces), 3)
	assert.LessOrEqual(t, len(plan.HiddenGems), 2)
	assert.NotEmpty(t, plan.SuggestedPlaces)
	assert.NotEmpty(t, plan.HiddenGems)
}

// TestMockGenerator_ItineraryFromSelections_badDates verifies an unusable
// date range still yields a two-day plan instead of an error.
func TestMockGenerator_ItineraryFromSelections_badDates(t *testing.T) {
	g := ai.NewMockGenerator()

	resp, err := g.ItineraryFromSelections(context.Background(), domain.Preferences{}, domain.Selections{})
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)
	assert.Len(t, resp.Plan.Days, 2)
	assert.Equal(t, "Pondicherry", resp.Plan.Meta.Destination, "default destination")
}

// TestMockGenerator_Regenerate verifies days survive, empty pools are
// refilled, instructions are blanked, and the input plan is not mutated.
func TestMockGenerator_Regenerate(t *testing.T) {
	g := ai.NewMockGenerator()
	in := domain.Plan{
		Meta: domain.PlanMeta{
			Destination:         "Madurai",
			SpecialInstructions: "more temples please",
		},
		Days: []domain.Day{{ID: "day-1", Title: "Day 1", Items: []domain.Item{{ID: "a", Title: "Temple"}}}},
	}

	resp, err := g.Regenerate(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, resp.Plan)

	out := *resp.Plan
	assert.Empty(t, out.Meta.SpecialInstructions)
	require.Len(t, out.Days, 1)
	assert.Equal(t, "Temple", out.Days[0].Items[0].Title)
	assert.NotEmpty(t, out.SuggestedPlaces, "empty pool refilled")
	assert.NotEmpty(t, out.HiddenGems)

	assert.Equal(t, "more temples please", in.Meta.SpecialInstructions, "input not mutated")
}

// TestMockGenerator_Regenerate_keepsPopulatedPools verifies existing pool
// content is preserved as-is.
func TestMockGenerator_Regenerate_keepsPopulatedPools(t *testing.T) {
	g := ai.NewMockGenerator()
	in := domain.Plan{
		Days:            []domain.Day{{ID: "day-1"}},
		SuggestedPlaces: []domain.Item{{ID: "keep-1", Title: "My Pick"}},
		HiddenGems:      []domain.Item{{ID: "keep-2", Title: "My Gem"}},
	}

	resp, err := g.Regenerate(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "My Pick", resp.Plan.SuggestedPlaces[0].Title)
	assert.Equal(t, "My Gem", resp.Plan.HiddenGems[0].Title)
}
