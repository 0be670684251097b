package domain

// Members is the travelling party size.
type Members struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Preferences holds the trip inputs collected from the user before any
// generation happens. All date fields use DateLayout.
type Preferences struct {
	Departure           string   `json:"departure,omitempty"`
	Destination         string   `json:"destination,omitempty"`
	StartDate           string   `json:"startDate,omitempty"`
	EndDate             string   `json:"endDate,omitempty"`
	Members             Members  `json:"members"`
	Activities          []string `json:"activities,omitempty"`
	TripTheme           string   `json:"tripTheme,omitempty"`
	Budget              string   `json:"budget,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// Clone returns a structural deep copy of the preferences.
func (p Preferences) Clone() Preferences {
	out := p
	out.Activities = cloneStrings(p.Activities)
	return out
}
