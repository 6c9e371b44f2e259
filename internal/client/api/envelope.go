package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the shape every backend response conforms to.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Results json.RawMessage `json:"results,omitempty"`
}

// Decode unmarshals the envelope results into T. Missing or null results
// decode to the zero value of T, and so does anything that fails to decode:
// a partly filled value is never returned.
func Decode[T any](env *Envelope) (T, error) {
	var out T
	if env == nil || len(env.Results) == 0 || bytes.Equal(bytes.TrimSpace(env.Results), []byte("null")) {
		return out, nil
	}
	if err := json.Unmarshal(env.Results, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out, nil
}
