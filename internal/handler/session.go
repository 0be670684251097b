package handler

import (
	"net/http"

	"github.com/dynotrip/backend/internal/domain"
)

// GetSession handles GET /session: the full session state, with days
// synthesized from the preference date range when no plan exists yet.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	st := s.trips.State(r.Context(), sessionID(r.Header.Get("X-Session-ID")))
	writeJSON(w, http.StatusOK, st)
}

// PutPreferences handles PUT /session/preferences. The body may use any of
// the alias key spellings the form frontends send; see normalize.go.
func (s *Server) PutPreferences(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !decodeJSON(w, r, &raw) {
		return
	}
	prefs := normalizePreferences(raw)

	if err := s.trips.UpdatePreferences(r.Context(), sessionID(r.Header.Get("X-Session-ID")), prefs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// PutSelections handles PUT /session/selections.
func (s *Server) PutSelections(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if !decodeJSON(w, r, &raw) {
		return
	}
	sel, err := normalizeSelections(raw)
	if err != nil {
		writeRequestError(w, "selections body is malformed")
		return
	}

	if err := s.trips.UpdateSelections(r.Context(), sessionID(r.Header.Get("X-Session-ID")), sel); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

// DeleteSelections handles DELETE /session/selections: clears only the
// selections sub-object, leaving plan and preferences intact.
func (s *Server) DeleteSelections(w http.ResponseWriter, r *http.Request) {
	s.trips.ClearSelections(r.Context(), sessionID(r.Header.Get("X-Session-ID")))
	w.WriteHeader(http.StatusNoContent)
}

// PutPlan handles PUT /session/plan: a wholesale plan commit, validated
// against the per-day duplicate invariant.
func (s *Server) PutPlan(w http.ResponseWriter, r *http.Request) {
	var plan domain.Plan
	if !decodeJSON(w, r, &plan) {
		return
	}

	if err := s.trips.UpdatePlan(r.Context(), sessionID(r.Header.Get("X-Session-ID")), plan); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// PostReset handles POST /session/reset: every sub-object back to its seed.
func (s *Server) PostReset(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r.Header.Get("X-Session-ID"))
	s.trips.Reset(r.Context(), sid)
	writeJSON(w, http.StatusOK, s.trips.State(r.Context(), sid))
}

// PostPlanEdit handles POST /session/plan/edits: one structural edit applied
// to the session's plan and committed on success. A duplicate violation
// returns 409 with the committed plan untouched.
func (s *Server) PostPlanEdit(w http.ResponseWriter, r *http.Request) {
	var op domain.EditOp
	if !decodeJSON(w, r, &op) {
		return
	}

	plan, err := s.trips.ApplyEdit(r.Context(), sessionID(r.Header.Get("X-Session-ID")), op)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
