package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.clearscrape.io"
	DefaultTimeout = 60 * time.Second
)

// Client is the HTTP API client. It owns the retry loop and outcome
// classification; all fields are set at construction and never mutated,
// so a Client is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      *RetryConfig
	classifier *Classifier
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Option configures the API client.
type Option func(*Client)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRetryConfig replaces the retry configuration.
func WithRetryConfig(cfg *RetryConfig) Option {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithClassifier replaces the outcome classifier.
func WithClassifier(cl *Classifier) Option {
	return func(c *Client) {
		c.classifier = cl
	}
}

// WithRateLimiter gates every HTTP attempt through the given limiter.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new API client.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retry:      DefaultRetryConfig(),
		classifier: NewClassifier(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SetHTTPClient sets a custom HTTP client. Must be called before the
// client is shared across goroutines.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// CloseIdleConnections releases pooled transport connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// Do issues a JSON request through the retry loop and decodes a 2xx body
// into result. It returns the raw 2xx body alongside the decoded result.
//
// At most retry.MaxRetries+1 attempts are issued. Fatal classifications
// surface immediately; retryable ones sleep per the backoff policy and
// retry. On exhaustion the last observed error is surfaced with its
// Exhausted flag set. Cancellation during a sleep or an in-flight attempt
// terminates the loop promptly.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) ([]byte, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	url := c.baseURL + path

	for attempt := 0; ; attempt++ {
		if err := c.acquire(ctx); err != nil {
			return nil, &NetworkError{Err: err, URL: url, Attempt: attempt + 1}
		}

		statusCode, header, respBody, err := c.attempt(ctx, method, url, payload)
		if err != nil {
			// Caller cancellation is terminal; a per-attempt timeout is a
			// network failure for that attempt only.
			if ctx.Err() != nil {
				return nil, &NetworkError{Err: ctx.Err(), URL: url, Attempt: attempt + 1}
			}

			netErr := &NetworkError{Err: err, URL: url, Attempt: attempt + 1}
			if attempt >= c.retry.MaxRetries {
				netErr.Exhausted = true
				return nil, netErr
			}

			c.logger.Debug("attempt failed, retrying",
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
				zap.Error(err))

			if werr := c.retry.Wait(ctx, attempt, 0); werr != nil {
				return nil, &NetworkError{Err: werr, URL: url, Attempt: attempt + 1}
			}
			continue
		}

		serr := c.classifier.Classify(statusCode, header, respBody)
		if serr == nil {
			if result != nil {
				if derr := json.Unmarshal(respBody, result); derr != nil {
					return nil, &StatusError{
						Kind:       KindValidation,
						StatusCode: statusCode,
						Message:    fmt.Sprintf("malformed response body: %v", derr),
					}
				}
			}
			return respBody, nil
		}

		retryable := serr.Retryable() && c.retry.RetryableOn(statusCode)
		if !retryable || attempt >= c.retry.MaxRetries {
			if retryable {
				serr.Exhausted = true
			}
			return nil, serr
		}

		c.logger.Debug("retryable status, backing off",
			zap.String("url", url),
			zap.Int("status", statusCode),
			zap.Int("attempt", attempt+1),
			zap.Duration("retry_after", serr.RetryAfter))

		if werr := c.retry.Wait(ctx, attempt, serr.RetryAfter); werr != nil {
			return nil, &NetworkError{Err: werr, URL: url, Attempt: attempt + 1}
		}
	}
}

// acquire waits on the client-side rate limiter, when one is configured.
func (c *Client) acquire(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// attempt issues one HTTP exchange and reads the full response body so
// the pooled connection can be reused.
func (c *Client) attempt(ctx context.Context, method, url string, payload []byte) (int, http.Header, []byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return 0, nil, nil, err
	}

	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, err
	}

	return resp.StatusCode, resp.Header, respBody, nil
}

// IsTimeout reports whether a network error was a per-attempt timeout.
func IsTimeout(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
