package api

import (
	"errors"
	"fmt"
)

var (
	ErrNoResponse        = errors.New("no response from server")
	ErrMalformedResponse = errors.New("malformed response")
	ErrResponseTooLarge  = errors.New("response too large")
)

// TransportError reports a request that did not produce a usable envelope.
type TransportError struct {
	// Status is the HTTP status code, or 0 when the server never answered.
	Status int
	// Message is the envelope message from the error body, if there was one.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("transport: %v", e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("transport: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("transport: status %d: %v", e.Status, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HasResponse reports whether the server answered at all.
func (e *TransportError) HasResponse() bool { return e.Status != 0 }
