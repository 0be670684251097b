package domain

// GeneratedResponse is the partial result of one generation call. Only the
// fields the generator produced are set; the trip state container merges the
// non-nil fields and leaves everything else untouched.
type GeneratedResponse struct {
	Plan           *Plan           `json:"generatedPlan,omitempty"`
	TravelOptions  *TravelOptions  `json:"travelOptions,omitempty"`
	LodgingOptions *LodgingOptions `json:"lodgingOptions,omitempty"`
}
