package api

import (
	"fmt"
	"time"
)

// Kind classifies a terminal request failure.
type Kind int

const (
	// KindUnknown is any non-2xx status with no more specific classification.
	KindUnknown Kind = iota
	// KindAuthentication covers 401 and 403 responses.
	KindAuthentication
	// KindInsufficientCredits covers 402 responses and credits-shortfall
	// body markers.
	KindInsufficientCredits
	// KindRateLimit covers 429 responses.
	KindRateLimit
	// KindValidation covers malformed 2xx bodies (contract mismatch).
	KindValidation
	// KindServer covers 5xx responses.
	KindServer
)

// StatusError is a classified HTTP error from the scrape API.
type StatusError struct {
	Kind       Kind
	StatusCode int
	Message    string

	// Required is the credits shortfall for KindInsufficientCredits.
	Required int
	// RetryAfter is the server-requested delay for KindRateLimit,
	// zero when the header was absent.
	RetryAfter time.Duration
	// Exhausted marks a retryable error that used up the retry budget.
	Exhausted bool
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Exhausted {
		return fmt.Sprintf("API error %d: %s (retries exhausted)", e.StatusCode, msg)
	}
	return fmt.Sprintf("API error %d: %s", e.StatusCode, msg)
}

// Retryable reports whether another attempt may succeed.
func (e *StatusError) Retryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindServer
}

// NetworkError represents a network-level failure: connection refused,
// DNS failure, or a per-attempt timeout.
type NetworkError struct {
	Err     error
	URL     string
	Attempt int

	// Exhausted marks a failure that used up the retry budget.
	Exhausted bool
}

func (e *NetworkError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("network error: %v (retries exhausted)", e.Err)
	}
	return fmt.Sprintf("network error: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}
