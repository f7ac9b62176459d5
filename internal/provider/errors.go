// Package provider defines the error taxonomy shared by the generation and
// posting clients. Adapters never retry; they classify the failure and return
// it to the caller, which maps it onto an HTTP status.
package provider

import (
	"errors"
	"fmt"
)

// ErrMissingCredential is returned when a client was constructed without an
// API key. Fatal for the request, never retried.
var ErrMissingCredential = errors.New("provider credential not configured")

// ErrEmptyResponse is returned when the provider answered with a blank body.
var ErrEmptyResponse = errors.New("provider returned empty response")

// ErrUnsupportedCapability is returned when the provider acknowledged the
// request but the response carried no media of the requested type.
var ErrUnsupportedCapability = errors.New("provider did not return requested media type")

// TransportError wraps a network-level failure reaching the provider.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MalformedResponseError is returned when the body could not be parsed as
// the expected structure.
type MalformedResponseError struct {
	Provider string
	Detail   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Detail)
}

// ProviderError carries a business-logic failure reported by the provider
// itself: a non-success HTTP status or an error code in the envelope.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s: provider error %d: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: provider error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}
