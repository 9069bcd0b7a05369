package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all provider adapters.
var (
	// ErrUnavailable covers connection failures, timeouts, and 5xx
	// responses. The aggregation layer treats it as recoverable and
	// degrades to local-only results.
	ErrUnavailable = errors.New("catalog: provider unavailable")
	// ErrNotFound is returned for 404 responses on detail fetches.
	ErrNotFound = errors.New("catalog: not found")
	// ErrRateLimited signals a 429 from the provider.
	ErrRateLimited = errors.New("catalog: rate limited by provider")
	// ErrMalformed signals a response body the adapter cannot decode at
	// all. Individual bad records inside a decodable batch are skipped
	// instead.
	ErrMalformed = errors.New("catalog: malformed provider response")
)

// Error wraps an underlying provider error with operation context.
type Error struct {
	Provider string // "openlibrary", "googlebooks", ...
	Op       string // "search", "workDetail", "topThreads"
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError creates an Error with context.
func WrapError(provider, op string, err error) error {
	return &Error{Provider: provider, Op: op, Err: err}
}
