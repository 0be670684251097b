package domain

// Seed values are the built-in defaults every session falls back to when a
// stored sub-object is missing or corrupt. They describe the demo trip the
// frontend ships with (Chennai → Pondicherry weekend).

// SeedPreferences returns the default trip inputs.
func SeedPreferences() Preferences {
	return Preferences{
		Departure:   "Chennai",
		Destination: "Pondicherry",
		StartDate:   "2026-01-09",
		EndDate:     "2026-01-11",
		Members:     Members{Adults: 2},
		Activities:  []string{"sightseeing", "food"},
		TripTheme:   "relaxed",
		Budget:      "mid-range",
	}
}

// SeedTravelOptions returns an empty set of transport choices with both legs
// present, so consumers can render the two-leg picker without nil checks.
func SeedTravelOptions() TravelOptions {
	return TravelOptions{
		Outbound: []TravelOption{},
		Return:   []TravelOption{},
	}
}

// SeedLodgingOptions returns an empty, non-nil hotel list.
func SeedLodgingOptions() LodgingOptions {
	return LodgingOptions{Hotels: []LodgingOption{}}
}

// SeedPlan returns the empty plan. Days are synthesized from the preference
// date range until a real plan is generated.
func SeedPlan() Plan {
	return Plan{Days: []Day{}}
}

// SeedSelections returns the default selections object: no choices made, but
// the transport map is initialized so downstream consumers always see a
// defined object.
func SeedSelections() Selections {
	return Selections{Transport: map[string]TransportLeg{}}
}

// EmptySelections is the explicit cleared state, distinct from the seed only
// in intent — clearSelections uses it so the distinction shows up in code.
func EmptySelections() Selections {
	return Selections{Transport: map[string]TransportLeg{}}
}
