// Package api provides HTTP client functionality for communicating with the
// ClearScrape API. It handles authentication, request/response serialization,
// outcome classification, and automatic retry with exponential backoff for
// transient failures.
//
// # Retry Behavior
//
// The client retries failed requests with exponential backoff and jitter.
// By default, requests are retried up to 3 times on:
//
//   - network-level failures (connection refused, DNS failure, per-attempt
//     timeout)
//   - 429 Too Many Requests (honoring the Retry-After header as a floor on
//     the next delay)
//   - 5xx server errors
//
// The delay grows from [RetryConfig.BaseDelay] by [RetryConfig.Multiplier]
// per attempt, capped at [RetryConfig.MaxDelay], with random jitter of
// [RetryConfig.Jitter] applied. At most MaxRetries+1 attempts are issued;
// when the budget runs out the last observed error is returned with its
// Exhausted flag set.
//
// # Classification
//
// Every completed HTTP exchange maps to exactly one outcome: success, or a
// [StatusError] whose [Kind] drives the retry decision. 401/403 are
// authentication failures, 402 (or a credits-shortfall body marker) is an
// insufficient-credits failure, 429 is a rate limit, 5xx is a server error,
// and anything else non-2xx is unknown. All of these except rate limits and
// server errors are fatal on first occurrence. A malformed 2xx body is a
// validation failure and is never retried.
//
// # Thread Safety
//
// The [Client] type is safe for concurrent use. Configuration is immutable
// after construction and retry state is local to each call.
package api
