// Package service contains the business logic for the DynoTrip backend.
// Services validate inputs, enforce business rules, and orchestrate the trip
// state container, the edit engine, and the generators. No storage or HTTP
// details live here.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dynotrip/backend/internal/ai"
	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/planner"
	"github.com/dynotrip/backend/internal/session"
)

// TripService owns the session-facing operations: state access, updates,
// generation, and structural plan edits.
type TripService struct {
	sessions *session.Container
	gen      ai.Generator
	mock     ai.Generator
}

// NewTripService constructs a TripService. gen is the primary generator
// (HTTP or mock, per config); mock always backs the explicit fallback path.
func NewTripService(sessions *session.Container, gen, mock ai.Generator) *TripService {
	return &TripService{sessions: sessions, gen: gen, mock: mock}
}

// State returns the session's full state. When no plan has been generated
// but the preferences imply a date range, the returned plan carries
// synthesized empty days so the itinerary view has something to render.
// The stored plan is not modified.
func (s *TripService) State(ctx context.Context, sessionID string) session.State {
	st := s.sessions.Load(ctx, sessionID)
	if st.Plan.IsEmpty() {
		if days := domain.SynthesizeDays(st.Preferences.StartDate, st.Preferences.EndDate); days != nil {
			st.Plan.Days = days
		}
	}
	return st
}

// UpdatePreferences validates and persists new trip preferences.
func (s *TripService) UpdatePreferences(ctx context.Context, sessionID string, p domain.Preferences) error {
	if err := validatePreferences(p); err != nil {
		return err
	}
	s.sessions.SetPreferences(ctx, sessionID, p)
	return nil
}

// UpdateSelections persists the user's transport and lodging choices.
func (s *TripService) UpdateSelections(ctx context.Context, sessionID string, sel domain.Selections) error {
	s.sessions.SetSelections(ctx, sessionID, sel)
	return nil
}

// UpdatePlan validates and commits a whole plan, enforcing the
// no-duplicate-per-day invariant on the way in.
func (s *TripService) UpdatePlan(ctx context.Context, sessionID string, p domain.Plan) error {
	if err := validatePlan(p); err != nil {
		return err
	}
	s.sessions.SetPlan(ctx, sessionID, p)
	return nil
}

// Reset restores the session to its seed state.
func (s *TripService) Reset(ctx context.Context, sessionID string) {
	s.sessions.ResetToSeed(ctx, sessionID)
}

// ClearSelections empties only the selections sub-object.
func (s *TripService) ClearSelections(ctx context.Context, sessionID string) {
	s.sessions.ClearSelections(ctx, sessionID)
}

// GenerateTravelStay persists the preferences, then asks the generator for
// transport and lodging options and applies the result. One generation per
// session at a time: a concurrent call gets domain.ErrGenerationInFlight.
func (s *TripService) GenerateTravelStay(ctx context.Context, sessionID string, prefs domain.Preferences) (domain.GeneratedResponse, error) {
	if err := validatePreferences(prefs); err != nil {
		return domain.GeneratedResponse{}, err
	}
	if prefs.Departure == "" || prefs.Destination == "" {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.GenerateTravelStay: %w: departure and destination are required", domain.ErrValidation)
	}
	s.sessions.SetPreferences(ctx, sessionID, prefs)

	gen, err := s.sessions.StartGeneration(sessionID)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.GenerateTravelStay: %w", err)
	}
	defer s.sessions.EndGeneration(sessionID)

	resp, err := s.gen.TravelStay(ctx, prefs)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.GenerateTravelStay: %w", err)
	}
	s.sessions.ApplyGenerated(ctx, sessionID, gen, resp)
	return resp, nil
}

// GenerateItinerary persists preferences and selections, then generates the
// day-by-day plan from them.
func (s *TripService) GenerateItinerary(ctx context.Context, sessionID string, prefs domain.Preferences, sel domain.Selections) (domain.GeneratedResponse, error) {
	if err := validatePreferences(prefs); err != nil {
		return domain.GeneratedResponse{}, err
	}
	s.sessions.SetPreferences(ctx, sessionID, prefs)
	s.sessions.SetSelections(ctx, sessionID, sel)

	gen, err := s.sessions.StartGeneration(sessionID)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.GenerateItinerary: %w", err)
	}
	defer s.sessions.EndGeneration(sessionID)

	resp, err := s.gen.ItineraryFromSelections(ctx, prefs, sel)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.GenerateItinerary: %w", err)
	}
	s.sessions.ApplyGenerated(ctx, sessionID, gen, resp)
	return resp, nil
}

// RegeneratePlan refines an existing plan. When the request carries no plan
// the session's committed plan is used; a session with nothing to regenerate
// is a validation error.
func (s *TripService) RegeneratePlan(ctx context.Context, sessionID string, plan domain.Plan) (domain.GeneratedResponse, error) {
	if plan.IsEmpty() {
		plan = s.sessions.Load(ctx, sessionID).Plan
	}
	if plan.IsEmpty() {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.RegeneratePlan: %w: no plan to regenerate", domain.ErrValidation)
	}

	gen, err := s.sessions.StartGeneration(sessionID)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.RegeneratePlan: %w", err)
	}
	defer s.sessions.EndGeneration(sessionID)

	resp, err := s.gen.Regenerate(ctx, plan)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.RegeneratePlan: %w", err)
	}
	s.sessions.ApplyGenerated(ctx, sessionID, gen, resp)
	return resp, nil
}

// MockPlan produces the deterministic local plan from the session's stored
// preferences and selections and commits it. It bypasses the single-flight
// gate — it is the fallback users reach for while a real call is stuck — and
// supersedes the generation counter so a late upstream response is dropped
// instead of overwriting the chosen fallback.
func (s *TripService) MockPlan(ctx context.Context, sessionID string) (domain.GeneratedResponse, error) {
	st := s.sessions.Load(ctx, sessionID)

	resp, err := s.mock.ItineraryFromSelections(ctx, st.Preferences, st.Selections)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("service.TripService.MockPlan: %w", err)
	}
	gen := s.sessions.SupersedeGeneration(sessionID)
	s.sessions.ApplyGenerated(ctx, sessionID, gen, resp)
	return resp, nil
}

// ApplyEdit runs one structural edit against the session's plan and commits
// the result when the edit succeeds. Edits against a session whose plan is
// still synthetic (date-range days only) operate on the synthesized days.
// A duplicate violation leaves the committed plan unchanged and propagates
// domain.ErrDuplicateItem for the caller to surface as a warning.
func (s *TripService) ApplyEdit(ctx context.Context, sessionID string, op domain.EditOp) (domain.Plan, error) {
	plan := s.State(ctx, sessionID).Plan

	editor := planner.NewEditor(plan)
	if err := editor.Apply(op); err != nil {
		return domain.Plan{}, fmt.Errorf("service.TripService.ApplyEdit: %w", err)
	}

	committed := editor.Commit()
	s.sessions.SetPlan(ctx, sessionID, committed)
	return committed, nil
}

// validatePreferences enforces the rules common to every preference write:
// dates, when present, must parse and must not be inverted.
func validatePreferences(p domain.Preferences) error {
	start, err := parseOptionalDate(p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate must be %s", domain.ErrValidation, domain.DateLayout)
	}
	end, err := parseOptionalDate(p.EndDate)
	if err != nil {
		return fmt.Errorf("%w: endDate must be %s", domain.ErrValidation, domain.DateLayout)
	}
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: endDate must not be before startDate", domain.ErrValidation)
	}
	return nil
}

// validatePlan rejects a wholesale plan write that already violates the
// per-day duplicate invariant the edit engine maintains.
func validatePlan(p domain.Plan) error {
	for di, day := range p.Days {
		seen := make(map[string]bool, len(day.Items))
		for _, it := range day.Items {
			key := it.OriginKey()
			if key == "" {
				continue
			}
			if seen[key] {
				return fmt.Errorf("%w: day %d holds origin %q twice", domain.ErrValidation, di, key)
			}
			seen[key] = true
		}
	}
	return nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
