package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown energy level).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrGenerationFailed is returned when the external itinerary generator
// errors out or returns content that cannot be parsed as the expected JSON
// shape. Callers may retry; the core never does.
// Handlers should map this to HTTP 502 Bad Gateway.
//
// Geocoding has no sentinel of its own: a failed lookup leaves coordinates
// unresolved and is never surfaced as an error.
var ErrGenerationFailed = errors.New("generation failed")
