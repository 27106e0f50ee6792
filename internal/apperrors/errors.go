// Package apperrors defines the error taxonomy shared by the market-data
// adapter, the services, and the HTTP handlers. Handlers translate these
// errors into structured JSON responses; nothing is thrown past the API
// boundary silently.
package apperrors

import (
	"errors"
	"fmt"
)

// Validation errors indicate a missing or invalid request parameter.
// These map to HTTP 400.
var (
	// ErrSymbolRequired indicates that the required symbol parameter is absent or blank.
	ErrSymbolRequired = errors.New("symbol parameter is required")

	// ErrQueryRequired indicates that the required search query parameter is absent or blank.
	ErrQueryRequired = errors.New(`query parameter "q" is required`)
)

// Configuration errors indicate a deployment problem, not a user error.
// These map to HTTP 500.
var (
	// ErrAPIKeyNotConfigured indicates that the Marketstack credential is not set.
	// Requests cannot be served until MARKETSTACK_API_KEY is configured.
	ErrAPIKeyNotConfigured = errors.New("marketstack API key not configured")
)

// UpstreamError indicates that the provider itself reported a failure.
//
// Two shapes exist:
//   - a non-success transport response: Status and StatusText are taken from
//     the provider response and Details carries its body verbatim;
//   - a success response whose payload carries a provider-level error field:
//     Status is zero, Details is empty, and Message carries the payload error.
//
// Handlers forward the first shape with the provider's own status code and
// map the second to HTTP 500.
type UpstreamError struct {
	Status     int
	StatusText string
	Message    string
	Details    string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("marketstack returned %d %s", e.Status, e.StatusText)
	}
	return fmt.Sprintf("marketstack error: %s", e.Message)
}

// FromPayload reports whether the error came from a provider error field
// inside an otherwise successful response.
func (e *UpstreamError) FromPayload() bool {
	return e.Status == 0
}

// TransportError indicates that the provider could not be reached or its
// response could not be decoded. The underlying cause is preserved for
// diagnostics. These map to HTTP 500.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
