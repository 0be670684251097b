package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dynotrip/backend/internal/domain"
)

// errorDetail is the machine-readable part of an error response.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to its HTTP status and error code.
// Every failure mode in the core has a defined non-throwing outcome; an
// error that matches none of the sentinels is a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateItem):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorDetail{
			Code:    "duplicate_item",
			Message: "that place is already on this day",
		}})
	case errors.Is(err, domain.ErrGenerationInFlight):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorDetail{
			Code:    "generation_in_flight",
			Message: "a generation request is already running for this session",
		}})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
			Code:    "validation_error",
			Message: validationMessage(err),
		}})
	case errors.Is(err, domain.ErrShareExpired):
		// Same viewer-facing message as not_found; the code and the server
		// logs keep the cases distinct.
		writeJSON(w, http.StatusGone, errorResponse{Error: errorDetail{
			Code:    "share_expired",
			Message: "this link is no longer available",
		}})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorDetail{
			Code:    "not_found",
			Message: "this link is no longer available",
		}})
	case errors.Is(err, domain.ErrGenerationFailed):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: errorDetail{
			Code:    "generation_failed",
			Message: "the itinerary service is unavailable; try the local plan instead",
		}})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorDetail{
			Code:    "internal_error",
			Message: "internal server error",
		}})
	}
}

// writeRequestError rejects a bad request before it reaches the service
// layer (e.g. missing or malformed body).
func writeRequestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorDetail{
		Code:    "validation_error",
		Message: message,
	}})
}

// decodeJSON decodes the request body into dst, treating any failure as a
// request error handled here. Returns false when the caller should stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeRequestError(w, "request body must be valid JSON")
		return false
	}
	return true
}

// validationMessage extracts the human-readable part from a wrapped
// validation error, e.g.
// "service.TripService.UpdatePreferences: validation error: endDate must not
// be before startDate" → "endDate must not be before startDate".
func validationMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return msg
}
