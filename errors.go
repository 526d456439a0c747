package clearscrape

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/clearscrape/client-go/internal/api"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrClientClosed is returned when operations are attempted on a closed client.
	ErrClientClosed = errors.New("client has been closed")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrInsufficientCredits is returned when the account cannot cover the
	// request's credit cost.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// ClearScrapeError is implemented by all SDK errors.
type ClearScrapeError interface {
	error
	ClearScrapeError() // marker method
}

// APIError represents a non-2xx response with no more specific
// classification. It is never retried.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// ClearScrapeError implements the ClearScrapeError interface.
func (e *APIError) ClearScrapeError() {}

// AuthenticationError indicates an invalid, expired or unauthorized API key.
// It is fatal and never retried.
type AuthenticationError struct {
	StatusCode int
	Message    string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed (%d): %s", e.StatusCode, e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrUnauthorized
}

// ClearScrapeError implements the ClearScrapeError interface.
func (e *AuthenticationError) ClearScrapeError() {}

// InsufficientCreditsError indicates the account cannot cover the request's
// credit cost. Required is the shortfall reported by the server, zero when
// the server did not report one. It is fatal and never retried.
type InsufficientCreditsError struct {
	StatusCode int
	Message    string
	Required   int
}

func (e *InsufficientCreditsError) Error() string {
	if e.Required > 0 {
		return fmt.Sprintf("insufficient credits (%d required): %s", e.Required, e.Message)
	}
	return fmt.Sprintf("insufficient credits: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}

// ClearScrapeError implements the ClearScrapeError interface.
func (e *InsufficientCreditsError) ClearScrapeError() {}

// RateLimitError indicates the API rate limit was exceeded. RetryAfter is
// the server-requested delay, zero when the Retry-After header was absent.
// Rate limits are retried up to the retry budget; Exhausted marks the
// budget running out. Note that a retried attempt may be billed again if
// the server processed a prior attempt before failing to respond.
type RateLimitError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
	Exhausted  bool
}

func (e *RateLimitError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("rate limit exceeded: %s (retries exhausted)", e.Message)
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// ClearScrapeError implements the ClearScrapeError interface.
func (e *RateLimitError) ClearScrapeError() {}

// ServerError indicates a 5xx response. Server errors are retried up to
// the retry budget; Exhausted marks the budget running out. A retried
// attempt may be billed again if the server processed a prior attempt
// before failing to respond.
type ServerError struct {
	StatusCode int
	Message    string
	Exhausted  bool
}

func (e *ServerError) Error() string {
	if e.Exhausted {
		return fmt.Sprintf("server error %d: %s (retries exhausted)", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server error %d: %s", e.StatusCode, e.Message)
}

// ClearScrapeError implements the ClearScrapeError interface.
func (e *ServerError) ClearScrapeError() {}

// NetworkError represents a network-level failure: connection refused, DNS
// failure, a per-attempt timeout, or caller cancellation.
type NetworkError struct {
	Err       error
	URL       string
	Attempt   int
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

// ClearScrapeError implements the ClearScrapeError interface.
func (e *NetworkError) ClearScrapeError() {}

// ValidationError reports invalid caller input or a malformed success
// response. No retry is attempted; invalid input is rejected before any
// network call is issued.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ClearScrapeError implements the ClearScrapeError interface.
func (e *ValidationError) ClearScrapeError() {}

// wrapError converts internal API errors to public errors.
// This ensures that errors.Is() checks work with public sentinel errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var serr *api.StatusError
	if errors.As(err, &serr) {
		switch serr.Kind {
		case api.KindAuthentication:
			return &AuthenticationError{StatusCode: serr.StatusCode, Message: serr.Message}
		case api.KindInsufficientCredits:
			return &InsufficientCreditsError{StatusCode: serr.StatusCode, Message: serr.Message, Required: serr.Required}
		case api.KindRateLimit:
			return &RateLimitError{StatusCode: serr.StatusCode, Message: serr.Message, RetryAfter: serr.RetryAfter, Exhausted: serr.Exhausted}
		case api.KindServer:
			return &ServerError{StatusCode: serr.StatusCode, Message: serr.Message, Exhausted: serr.Exhausted}
		case api.KindValidation:
			return &ValidationError{Errors: []string{serr.Message}}
		default:
			return &APIError{StatusCode: serr.StatusCode, Message: serr.Message}
		}
	}

	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return &NetworkError{
			Err:       netErr.Err,
			URL:       netErr.URL,
			Attempt:   netErr.Attempt,
			Exhausted: netErr.Exhausted,
		}
	}

	return err
}
