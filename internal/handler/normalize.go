package handler

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dynotrip/backend/internal/domain"
)

// The form frontends have shipped several generations of field names. The
// handlers accept all of them and map onto the canonical preference keys, so
// older clients keep working without a migration.

// preferenceKeys are the canonical keys that mark a flat request body as a
// preferences payload.
var preferenceKeys = []string{
	"departure", "destination", "startDate", "endDate",
	"members", "activities", "tripTheme", "budget", "specialInstructions",
}

// extractPreferencePayload finds the preference object in a request body
// that may wrap it as {"inputJson": {...}}, {"userPref": {...}}, or carry
// the fields flat. Returns false when none of the shapes match.
func extractPreferencePayload(body map[string]any) (map[string]any, bool) {
	if inner, ok := body["inputJson"].(map[string]any); ok {
		return inner, true
	}
	if inner, ok := body["userPref"].(map[string]any); ok {
		return inner, true
	}
	for _, k := range preferenceKeys {
		if _, ok := body[k]; ok {
			return body, true
		}
	}
	return nil, false
}

// normalizePreferences maps alias keys onto the canonical preference fields
// and coerces loose types (string members counts, single-string activities).
func normalizePreferences(raw map[string]any) domain.Preferences {
	p := domain.Preferences{
		Departure:           firstString(raw, "departure", "from", "fromCity", "source", "origin"),
		Destination:         firstString(raw, "destination", "to", "toCity", "city", "destinationCity"),
		StartDate:           firstString(raw, "startDate", "start_date", "fromDate", "start"),
		EndDate:             firstString(raw, "endDate", "end_date", "toDate", "end"),
		TripTheme:           firstString(raw, "tripTheme", "theme", "trip_type"),
		Budget:              firstString(raw, "budget"),
		SpecialInstructions: firstString(raw, "specialInstructions", "notes", "instructions", "specialNotes"),
	}

	switch acts := firstValue(raw, "activities", "interests", "activity").(type) {
	case string:
		if acts != "" {
			p.Activities = []string{acts}
		}
	case []any:
		for _, a := range acts {
			if s, ok := a.(string); ok {
				p.Activities = append(p.Activities, s)
			}
		}
	}

	if members, ok := raw["members"].(map[string]any); ok {
		p.Members.Adults = firstInt(members, "adults", "adultCount")
		p.Members.Children = firstInt(members, "children", "childCount")
	} else {
		p.Members.Adults = firstInt(raw, "adults", "adultCount")
		p.Members.Children = firstInt(raw, "children", "childCount")
	}

	return p
}

// normalizeSelections coerces the loose spots in a selections payload — most
// importantly hotelsSelection.useSameHotel arriving as a string or number —
// and decodes the result into the typed form.
func normalizeSelections(raw map[string]any) (domain.Selections, error) {
	if hs, ok := raw["hotelsSelection"].(map[string]any); ok {
		if v, present := hs["useSameHotel"]; present {
			hs["useSameHotel"] = asBool(v)
		}
	}

	// Re-encoding through JSON is decode tolerance, not a clone: unknown
	// fields are dropped and known ones land in the typed struct.
	payload, err := json.Marshal(raw)
	if err != nil {
		return domain.Selections{}, err
	}
	var sel domain.Selections
	if err := json.Unmarshal(payload, &sel); err != nil {
		return domain.Selections{}, err
	}
	return sel, nil
}

// firstValue returns the first present, non-nil value among keys.
func firstValue(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstString returns the first present, non-empty string among keys.
func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstInt returns the first key that coerces to a positive count.
// JSON numbers decode as float64; counts also arrive as strings.
func firstInt(raw map[string]any, keys ...string) int {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			if v > 0 {
				return int(v)
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				return n
			}
		}
	}
	return 0
}

// asBool coerces the truthy spellings clients send for boolean flags.
func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "1", "true", "yes", "y":
			return true
		}
		return false
	case float64:
		return t != 0
	default:
		return false
	}
}
