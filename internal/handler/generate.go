package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dynotrip/backend/internal/domain"
)

// PostTravelStay handles POST /travel-stay: preferences in, transport and
// lodging options out. The body may be {"inputJson": {...}},
// {"userPref": {...}}, or flat preference fields.
func (s *Server) PostTravelStay(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decodeJSON(w, r, &body) {
		return
	}
	payload, ok := extractPreferencePayload(body)
	if !ok {
		writeRequestError(w, "body must contain inputJson, userPref, or flat preference fields")
		return
	}
	prefs := normalizePreferences(payload)

	resp, err := s.trips.GenerateTravelStay(r.Context(), sessionID(r.Header.Get("X-Session-ID")), prefs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostItineraryFromSelections handles POST /itinerary-from-selections.
// Accepts {"inputJson": {...prefs, "selections": {...}}} or
// {"userPref": {...}, "selections": {...}}.
func (s *Server) PostItineraryFromSelections(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decodeJSON(w, r, &body) {
		return
	}

	var (
		prefsPayload map[string]any
		selPayload   map[string]any
	)
	if inner, ok := body["inputJson"].(map[string]any); ok {
		prefsPayload = inner
		selPayload, _ = inner["selections"].(map[string]any)
	} else {
		userPref, okPref := body["userPref"].(map[string]any)
		selections, okSel := body["selections"].(map[string]any)
		if okPref && okSel {
			prefsPayload, selPayload = userPref, selections
		}
	}
	if prefsPayload == nil {
		writeRequestError(w, "body must contain inputJson, or userPref plus selections")
		return
	}

	prefs := normalizePreferences(prefsPayload)
	sel := domain.Selections{}
	if selPayload != nil {
		var err error
		if sel, err = normalizeSelections(selPayload); err != nil {
			writeRequestError(w, "selections body is malformed")
			return
		}
	}

	resp, err := s.trips.GenerateItinerary(r.Context(), sessionID(r.Header.Get("X-Session-ID")), prefs, sel)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostItinerary handles POST /itinerary: regenerate from an existing plan,
// accepted as {"generatedPlan": {...}} or nested under inputJson. An absent
// plan falls back to the session's committed one.
func (s *Server) PostItinerary(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if !decodeJSON(w, r, &body) {
		return
	}

	planPayload, _ := body["generatedPlan"].(map[string]any)
	if planPayload == nil {
		if inner, ok := body["inputJson"].(map[string]any); ok {
			planPayload, _ = inner["generatedPlan"].(map[string]any)
		}
	}

	var plan domain.Plan
	if planPayload != nil {
		raw, err := json.Marshal(planPayload)
		if err == nil {
			err = json.Unmarshal(raw, &plan)
		}
		if err != nil {
			writeRequestError(w, "generatedPlan is malformed")
			return
		}
	}

	resp, err := s.trips.RegeneratePlan(r.Context(), sessionID(r.Header.Get("X-Session-ID")), plan)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostItineraryMock handles POST /itinerary/mock: the deterministic local
// plan, built from the session's stored preferences and selections. This is
// the manual fallback when generation fails — it never blocks the user.
func (s *Server) PostItineraryMock(w http.ResponseWriter, r *http.Request) {
	resp, err := s.trips.MockPlan(r.Context(), sessionID(r.Header.Get("X-Session-ID")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
