// Package ai adapts the external itinerary-generation service behind a small
// interface, with a deterministic local mock for development and as the
// user-facing fallback when the real service is down.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dynotrip/backend/internal/domain"
)

// Generator produces trip content from user input. Implementations must
// treat any non-success upstream response as a generation failure wrapping
// domain.ErrGenerationFailed — callers surface a recoverable warning and
// offer the mock plan, they never crash.
type Generator interface {
	// TravelStay generates transport and lodging options from preferences.
	TravelStay(ctx context.Context, prefs domain.Preferences) (domain.GeneratedResponse, error)

	// ItineraryFromSelections generates a day-by-day plan from preferences
	// plus the user's chosen transport and lodging.
	ItineraryFromSelections(ctx context.Context, prefs domain.Preferences, sel domain.Selections) (domain.GeneratedResponse, error)

	// Regenerate refines an existing plan, guided by its special
	// instructions. The instructions are blanked in the returned plan.
	Regenerate(ctx context.Context, plan domain.Plan) (domain.GeneratedResponse, error)
}

// HTTPGenerator calls the agent service over HTTP POST with JSON bodies.
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
}

var _ Generator = (*HTTPGenerator)(nil)

// NewHTTPGenerator points at the agent service base URL, e.g.
// "http://localhost:8000". A nil client gets a 120s-timeout default —
// generation calls are slow by nature.
func NewHTTPGenerator(baseURL string, client *http.Client) *HTTPGenerator {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	return &HTTPGenerator{baseURL: baseURL, client: client}
}

// TravelStay POSTs /travel-stay with the preferences under "userPref".
func (g *HTTPGenerator) TravelStay(ctx context.Context, prefs domain.Preferences) (domain.GeneratedResponse, error) {
	body := map[string]any{"userPref": prefs}
	resp, err := g.post(ctx, "/travel-stay", body)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("ai.HTTPGenerator.TravelStay: %w", err)
	}
	return resp, nil
}

// ItineraryFromSelections POSTs /itinerary-from-selections with preferences
// and selections side by side.
func (g *HTTPGenerator) ItineraryFromSelections(ctx context.Context, prefs domain.Preferences, sel domain.Selections) (domain.GeneratedResponse, error) {
	body := map[string]any{"userPref": prefs, "selections": sel}
	resp, err := g.post(ctx, "/itinerary-from-selections", body)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("ai.HTTPGenerator.ItineraryFromSelections: %w", err)
	}
	return resp, nil
}

// Regenerate POSTs /itinerary with the previous plan under "generatedPlan".
func (g *HTTPGenerator) Regenerate(ctx context.Context, plan domain.Plan) (domain.GeneratedResponse, error) {
	body := map[string]any{"generatedPlan": plan}
	resp, err := g.post(ctx, "/itinerary", body)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("ai.HTTPGenerator.Regenerate: %w", err)
	}
	if resp.Plan != nil {
		// The instructions guided the regeneration; they never survive into
		// the output.
		resp.Plan.Meta.SpecialInstructions = ""
	}
	return resp, nil
}

// post sends one JSON request and decodes the generated response. Transport
// errors and non-2xx statuses both wrap domain.ErrGenerationFailed.
func (g *HTTPGenerator) post(ctx context.Context, path string, body any) (domain.GeneratedResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	httpResp, err := g.client.Do(req)
	if err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		// Drain a little of the body for the log line; the details stay out
		// of the user-facing error.
		snippet, _ := io.ReadAll(io.LimitReader(httpResp.Body, 256))
		return domain.GeneratedResponse{}, fmt.Errorf("%w: upstream status %d: %s", domain.ErrGenerationFailed, httpResp.StatusCode, snippet)
	}

	var out domain.GeneratedResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&out); err != nil {
		return domain.GeneratedResponse{}, fmt.Errorf("%w: decode response: %v", domain.ErrGenerationFailed, err)
	}
	if out.Plan == nil && out.TravelOptions == nil && out.LodgingOptions == nil {
		return domain.GeneratedResponse{}, fmt.Errorf("%w: upstream returned no usable content", domain.ErrGenerationFailed)
	}
	return out, nil
}
