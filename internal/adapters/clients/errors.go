// Package clients provides the instrumented outbound HTTP client used by
// the remote quote source and the share webhook.
package clients

import "errors"

// Client errors are infrastructure failures. Callers translate them into
// domain errors: a *domain.LoadError for the quote source, a logged share
// failure for the webhook.
var (
	// ErrCircuitOpen is returned when the circuit breaker blocks the request.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after all attempts failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
