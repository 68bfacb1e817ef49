// Package clients provides the resilient outbound HTTP client used to call
// the devotional API.
package clients

import "errors"

// Transport-level failures. Callers translate them into domain errors.
var (
	// ErrCircuitOpen is returned without contacting the downstream while the
	// breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last transport error once every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
