package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"
)

// envelopeVersion is bumped when the envelope structure changes.
const envelopeVersion = 1

// Envelope is the uniform response wrapper. Every response carries a
// version, a success flag, and either data or an error.
type Envelope struct {
	V       int       `json:"v"`
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// EnvelopeTransformer wraps all API response bodies in the envelope.
// Wired into the huma config as a response transformer.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if v == nil {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{V: envelopeVersion, Success: false, Error: apiErr}, nil
	}

	code, err := strconv.Atoi(status)
	if err == nil && code >= 400 {
		return &Envelope{
			V:       envelopeVersion,
			Success: false,
			Error:   &APIError{status: code, Code: statusToCode(code), Message: "request failed"},
		}, nil
	}

	return &Envelope{V: envelopeVersion, Success: true, Data: v}, nil
}
