package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

// defaultCreditsMarkers are the body keys checked for a credits-shortfall
// value. The server has shipped both spellings.
var defaultCreditsMarkers = []string{"required_credits", "required"}

// Classifier maps a completed HTTP exchange to a typed error, or nil for
// a 2xx response. It is immutable after construction and shared across
// concurrent calls.
type Classifier struct {
	// CreditsMarkers are the body keys that mark a credits-shortfall
	// response regardless of status code. Defaults to
	// ["required_credits", "required"].
	CreditsMarkers []string
}

// NewClassifier returns a classifier with default markers.
func NewClassifier() *Classifier {
	return &Classifier{CreditsMarkers: defaultCreditsMarkers}
}

// Classify maps status code, headers and body to exactly one error kind.
// A nil return means success; the body is decoded by the caller.
func (cl *Classifier) Classify(statusCode int, header http.Header, body []byte) *StatusError {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	msg, fields := parseErrorBody(body)

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return &StatusError{Kind: KindAuthentication, StatusCode: statusCode, Message: msg}
	case statusCode == http.StatusPaymentRequired:
		required, _ := cl.requiredCredits(fields)
		return &StatusError{Kind: KindInsufficientCredits, StatusCode: statusCode, Message: msg, Required: required}
	case statusCode == http.StatusTooManyRequests:
		return &StatusError{Kind: KindRateLimit, StatusCode: statusCode, Message: msg, RetryAfter: parseRetryAfter(header)}
	case statusCode >= 500:
		return &StatusError{Kind: KindServer, StatusCode: statusCode, Message: msg}
	}

	// A credits-shortfall marker outranks the generic status.
	if required, ok := cl.requiredCredits(fields); ok {
		return &StatusError{Kind: KindInsufficientCredits, StatusCode: statusCode, Message: msg, Required: required}
	}

	return &StatusError{Kind: KindUnknown, StatusCode: statusCode, Message: msg}
}

// requiredCredits looks up the first credits marker present in the body.
func (cl *Classifier) requiredCredits(fields map[string]json.RawMessage) (int, bool) {
	markers := cl.CreditsMarkers
	if len(markers) == 0 {
		markers = defaultCreditsMarkers
	}
	for _, key := range markers {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return n, true
		}
	}
	return 0, false
}

// parseErrorBody extracts the error message and raw fields from a JSON
// error body. Falls back to the raw body text for non-JSON responses.
func parseErrorBody(body []byte) (string, map[string]json.RawMessage) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body), nil
	}

	for _, key := range []string{"message", "error"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s, fields
		}
	}
	return "unknown error", fields
}

// parseRetryAfter reads the Retry-After header as delay seconds or an
// HTTP date. Returns zero when absent or unparseable.
func parseRetryAfter(header http.Header) time.Duration {
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
