package handler

import (
	"net/http"

	"github.com/dynotrip/backend/spec"
)

// GetOpenAPI serves the embedded OpenAPI document at /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
