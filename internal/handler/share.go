package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// shareResponse is the body returned by a successful publish.
type shareResponse struct {
	Token     string    `json:"token"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PostShare handles POST /share: publishes a read-only snapshot of the
// session's committed plan and returns the share link.
func (s *Server) PostShare(w http.ResponseWriter, r *http.Request) {
	entry, err := s.shares.PublishSession(r.Context(), sessionID(r.Header.Get("X-Session-ID")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, shareResponse{
		Token:     entry.Token,
		URL:       s.publicBaseURL + "/share/" + entry.Token,
		ExpiresAt: entry.ExpiresAt,
	})
}

// GetShare handles GET /share/{token}: the public read-only plan view. The
// snapshot may be partial — viewers must treat every field as optional — so
// the handler returns whatever shape was published. Unknown and expired
// tokens both render as "this link is no longer available" (404 vs 410).
func (s *Server) GetShare(w http.ResponseWriter, r *http.Request) {
	plan, err := s.shares.Resolve(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}
