package domain

import "errors"

// ErrNotFound is returned when a requested resource (session entry, share
// token) does not exist. Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails business rule validation
// (e.g. missing destination, day index out of range).
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicateItem is returned by edit operations that would place a second
// instance of the same origin into one day. The operation is rolled back and
// state is unchanged; handlers map this to HTTP 409.
var ErrDuplicateItem = errors.New("duplicate item in day")

// ErrShareExpired is returned when a share token exists but its TTL has
// elapsed. Distinct from ErrNotFound so logs can tell the cases apart; both
// surface to viewers as "this link is no longer available".
// Handlers map this to HTTP 410.
var ErrShareExpired = errors.New("share link expired")

// ErrGenerationFailed is returned when the external itinerary service call
// failed or returned no usable plan. Recoverable — callers surface a warning
// and offer the local mock plan. Handlers map this to HTTP 502.
var ErrGenerationFailed = errors.New("generation failed")

// ErrGenerationInFlight is returned when a generate request arrives for a
// session that already has one outstanding. Handlers map this to HTTP 409.
var ErrGenerationInFlight = errors.New("generation already in progress")
