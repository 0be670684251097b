package ai

import (
	"context"
	"fmt"

	"github.com/dynotrip/backend/internal/domain"
)

// MockGenerator produces a deterministic local plan without any network
// call. It backs local development and the manual fallback path — generation
// failures must never block the user, so this generator never fails.
type MockGenerator struct{}

var _ Generator = (*MockGenerator)(nil)

// NewMockGenerator returns the deterministic generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// TravelStay returns two transport options per leg and three hotels, all
// named after the destination.
func (m *MockGenerator) TravelStay(_ context.Context, prefs domain.Preferences) (domain.GeneratedResponse, error) {
	dest := destinationOr(prefs.Destination)

	travel := domain.TravelOptions{
		Outbound: []domain.TravelOption{
			{ID: "out-bus-1", Mode: "bus", Operator: "State Express", DepartureTime: "06:30", ArrivalTime: "10:15", Duration: "3h 45m", Price: "450"},
			{ID: "out-train-1", Mode: "train", Operator: "Coastal Rail", DepartureTime: "07:50", ArrivalTime: "11:05", Duration: "3h 15m", Price: "380"},
		},
		Return: []domain.TravelOption{
			{ID: "ret-bus-1", Mode: "bus", Operator: "State Express", DepartureTime: "17:00", ArrivalTime: "20:45", Duration: "3h 45m", Price: "450"},
			{ID: "ret-train-1", Mode: "train", Operator: "Coastal Rail", DepartureTime: "18:20", ArrivalTime: "21:35", Duration: "3h 15m", Price: "380"},
		},
	}
	lodging := domain.LodgingOptions{
		Hotels: []domain.LodgingOption{
			{ID: "hotel-1", Name: "Seaside Residency " + dest, Area: "Promenade", Rating: "4.4", PricePerNight: "3200"},
			{ID: "hotel-2", Name: "Heritage Courtyard", Area: "Old Town", Rating: "4.2", PricePerNight: "2600"},
			{ID: "hotel-3", Name: "Garden View Inn", Area: "City Centre", Rating: "3.9", PricePerNight: "1800"},
		},
	}
	return domain.GeneratedResponse{TravelOptions: &travel, LodgingOptions: &lodging}, nil
}

// ItineraryFromSelections builds one itinerary day per preference date (two
// days when the range is unusable), each with two places and a meal, plus
// the candidate pools: at most three suggested places and two hidden gems,
// matching the limits the real agent is prompted with.
func (m *MockGenerator) ItineraryFromSelections(_ context.Context, prefs domain.Preferences, _ domain.Selections) (domain.GeneratedResponse, error) {
	dest := destinationOr(prefs.Destination)

	days := domain.SynthesizeDays(prefs.StartDate, prefs.EndDate)
	if len(days) == 0 {
		days = domain.SynthesizeDays("2026-01-09", "2026-01-10")
	}
	for i := range days {
		n := i + 1
		days[i].Items = []domain.Item{
			{
				ID:          fmt.Sprintf("d%d-i1", n),
				Title:       fmt.Sprintf("%s Landmark Walk %d", dest, n),
				Description: "A relaxed morning walk through the best-known sights.",
				Photos:      []string{"https://photos.example/landmark.jpg"},
				Reviews:     []string{"Lovely at sunrise.", "Easy to cover on foot."},
				Rating:      "4.5",
			},
			{
				ID:     fmt.Sprintf("d%d-i2", n),
				Title:  fmt.Sprintf("Lunch at Cafe Quarter %d", n),
				IsMeal: true,
			},
			{
				ID:          fmt.Sprintf("d%d-i3", n),
				Title:       fmt.Sprintf("%s Waterfront Evening %d", dest, n),
				Description: "Street food stalls and the evening promenade crowd.",
				Photos:      []string{"https://photos.example/waterfront.jpg"},
				Reviews:     []string{"Great for people-watching."},
				Rating:      "4.3",
			},
		}
	}

	plan := domain.Plan{
		Meta: domain.PlanMeta{
			Departure:   prefs.Departure,
			Destination: dest,
			StartDate:   prefs.StartDate,
			EndDate:     prefs.EndDate,
		},
		Days:            days,
		SuggestedPlaces: suggestedPool(dest),
		HiddenGems:      hiddenGemsPool(dest),
	}
	return domain.GeneratedResponse{Plan: &plan}, nil
}

// Regenerate keeps the plan's days and metadata, refills empty pools, and
// blanks the special instructions in the output.
func (m *MockGenerator) Regenerate(_ context.Context, plan domain.Plan) (domain.GeneratedResponse, error) {
	out := plan.Clone()
	dest := destinationOr(out.Meta.Destination)
	if len(out.SuggestedPlaces) == 0 {
		out.SuggestedPlaces = suggestedPool(dest)
	}
	if len(out.HiddenGems) == 0 {
		out.HiddenGems = hiddenGemsPool(dest)
	}
	out.Meta.SpecialInstructions = ""
	return domain.GeneratedResponse{Plan: &out}, nil
}

func suggestedPool(dest string) []domain.Item {
	return []domain.Item{
		{ID: "sug-1", Title: dest + " Botanical Garden", Description: "Shaded walkways and a toy train.", Photos: []string{"https://photos.example/garden.jpg"}, Reviews: []string{"Calm mid-week."}, Rating: "4.1"},
		{ID: "sug-2", Title: "Old Lighthouse", Description: "Short climb, wide harbour views.", Photos: []string{"https://photos.example/lighthouse.jpg"}, Reviews: []string{"Go before noon."}, Rating: "4.0"},
		{ID: "sug-3", Title: "Sunday Flea Market", Description: "Antiques, fabric, and snacks.", Photos: []string{"https://photos.example/market.jpg"}, Reviews: []string{"Bargain hard."}, Rating: "3.8"},
	}
}

func hiddenGemsPool(dest string) []domain.Item {
	return []domain.Item{
		{ID: "gem-1", Title: "Backstreet Pottery Studio", Description: "Watch the wheel, buy seconds cheap.", Photos: []string{"https://photos.example/pottery.jpg"}, Reviews: []string{"The owner gives demos."}, Rating: "4.7"},
		{ID: "gem-2", Title: dest + " Rooftop Reading Room", Description: "Quiet colonial-era library terrace.", Photos: []string{"https://photos.example/library.jpg"}, Reviews: []string{"Best at golden hour."}, Rating: "4.6"},
	}
}

func destinationOr(dest string) string {
	if dest == "" {
		return "Pondicherry"
	}
	return dest
}
