// Package providers wraps the external REST collaborators. Transport errors
// are translated here, at the boundary, so the rest of the core only ever
// sees the sentinels below.
package providers

import "errors"

var (
	// ErrProviderUnavailable covers any provider failure: network, bad
	// status, malformed response.
	ErrProviderUnavailable = errors.New("providers: service unavailable")
	// ErrProviderTimeout marks a provider failure caused by a timeout.
	// Timeout errors wrap both sentinels, so callers matching the broad
	// class still catch them; matching this one specifically lets the UI
	// say the backend is likely waking up from a cold start.
	ErrProviderTimeout = errors.New("providers: request timed out")
	// ErrPreconditionViolated reports a refused operation: required inputs
	// were missing or invalid, so no request was made.
	ErrPreconditionViolated = errors.New("providers: precondition violated")
)
