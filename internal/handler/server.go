// Package handler implements the HTTP handlers for the DynoTrip API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (session.go, generate.go, share.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/dynotrip/backend/internal/domain"
	"github.com/dynotrip/backend/internal/session"
)

// TripServicer defines the business operations the session and generation
// handlers depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types". It
// lets handler tests inject a double without touching storage or generators.
type TripServicer interface {
	State(ctx context.Context, sessionID string) session.State
	UpdatePreferences(ctx context.Context, sessionID string, p domain.Preferences) error
	UpdateSelections(ctx context.Context, sessionID string, sel domain.Selections) error
	UpdatePlan(ctx context.Context, sessionID string, p domain.Plan) error
	Reset(ctx context.Context, sessionID string)
	ClearSelections(ctx context.Context, sessionID string)
	GenerateTravelStay(ctx context.Context, sessionID string, prefs domain.Preferences) (domain.GeneratedResponse, error)
	GenerateItinerary(ctx context.Context, sessionID string, prefs domain.Preferences, sel domain.Selections) (domain.GeneratedResponse, error)
	RegeneratePlan(ctx context.Context, sessionID string, plan domain.Plan) (domain.GeneratedResponse, error)
	MockPlan(ctx context.Context, sessionID string) (domain.GeneratedResponse, error)
	ApplyEdit(ctx context.Context, sessionID string, op domain.EditOp) (domain.Plan, error)
}

// ShareServicer defines the share-link operations the handlers depend on.
type ShareServicer interface {
	PublishSession(ctx context.Context, sessionID string) (domain.ShareEntry, error)
	Resolve(ctx context.Context, token string) (domain.Plan, error)
}

// ExportServicer defines the export assembly the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, sessionID string) ([]domain.ExportRow, session.State, error)
}

// Server implements all API endpoints. Wire it in main.go via Routes.
type Server struct {
	trips  TripServicer
	shares ShareServicer
	export ExportServicer

	// publicBaseURL is the externally visible base URL used to build share
	// links (and the QR code in PDF exports).
	publicBaseURL string
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, shares ShareServicer, export ExportServicer, publicBaseURL string) *Server {
	return &Server{trips: trips, shares: shares, export: export, publicBaseURL: publicBaseURL}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/session", func(r chi.Router) {
		r.Get("/", s.GetSession)
		r.Put("/preferences", s.PutPreferences)
		r.Put("/selections", s.PutSelections)
		r.Delete("/selections", s.DeleteSelections)
		r.Put("/plan", s.PutPlan)
		r.Post("/plan/edits", s.PostPlanEdit)
		r.Post("/reset", s.PostReset)
		r.Get("/export", s.GetExport)
	})

	r.Post("/travel-stay", s.PostTravelStay)
	r.Post("/itinerary-from-selections", s.PostItineraryFromSelections)
	r.Post("/itinerary", s.PostItinerary)
	r.Post("/itinerary/mock", s.PostItineraryMock)

	r.Post("/share", s.PostShare)
	r.Get("/share/{token}", s.GetShare)
}

// sessionID extracts the caller's session from the X-Session-ID header.
// Sessions are an anonymous partitioning key, not authentication — a missing
// header maps every caller onto the shared "default" session, which is what
// the single-user demo deployment wants.
func sessionID(headerValue string) string {
	if headerValue == "" {
		return "default"
	}
	return headerValue
}
