package clearscrape

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/clearscrape/client-go/internal/api"
)

// Client is the main ClearScrape client. It is safe for concurrent use:
// configuration is immutable after construction and each call's retry
// state is local, so no locking is needed between in-flight calls.
type Client struct {
	apiClient *api.Client
	apiKey    string
	cfg       *clientConfig

	mu     sync.Mutex
	closed bool
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	retry := api.DefaultRetryConfig()
	retry.MaxRetries = cfg.retries
	if cfg.backoffBase > 0 {
		retry.BaseDelay = cfg.backoffBase
	}
	if cfg.backoffMax > 0 {
		retry.MaxDelay = cfg.backoffMax
	}
	if cfg.backoffMultiplier > 0 {
		retry.Multiplier = cfg.backoffMultiplier
	}
	if cfg.jitterFactor >= 0 {
		retry.Jitter = cfg.jitterFactor
	}
	if cfg.jitterSource != nil {
		retry.Rand = cfg.jitterSource
	}
	if len(cfg.retryOn) > 0 {
		codes := make(map[int]bool, len(cfg.retryOn))
		for _, code := range cfg.retryOn {
			codes[code] = true
		}
		retry.RetryableOn = func(statusCode int) bool {
			return codes[statusCode]
		}
	}

	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithTimeout(cfg.timeout),
		api.WithRetryConfig(retry),
	}
	if cfg.logger != nil {
		apiOpts = append(apiOpts, api.WithLogger(cfg.logger))
	}
	if cfg.limiter != nil {
		apiOpts = append(apiOpts, api.WithRateLimiter(cfg.limiter))
	}
	if len(cfg.creditsMarkers) > 0 {
		apiOpts = append(apiOpts, api.WithClassifier(&api.Classifier{CreditsMarkers: cfg.creditsMarkers}))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// New creates a new ClearScrape client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var violations []string
	if cfg.baseURL == "" {
		violations = append(violations, "base URL must not be empty")
	}
	if cfg.timeout <= 0 {
		violations = append(violations, "timeout must be positive")
	}
	if cfg.retries < 0 {
		violations = append(violations, "retries must not be negative")
	}
	if violations != nil {
		return nil, &ValidationError{Errors: violations}
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		apiKey:    apiKey,
		cfg:       cfg,
	}, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// Scrape fetches a URL through the scraping API and returns the result.
//
// Retried attempts re-incur the request's credit cost when the server
// processed a prior attempt before failing to respond.
func (c *Client) Scrape(ctx context.Context, url string, opts ...ScrapeOption) (*ScrapeResult, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	params, err := buildScrapeParams(url, opts)
	if err != nil {
		return nil, err
	}

	env, err := c.apiClient.Scrape(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	return newScrapeResult(env), nil
}

// GetHTML scrapes a URL and returns only the HTML content.
func (c *Client) GetHTML(ctx context.Context, url string, opts ...ScrapeOption) (string, error) {
	result, err := c.Scrape(ctx, url, opts...)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// GetText scrapes a URL and returns only the text content. When the server
// response carries HTML but no text field, the text is derived from the
// HTML locally.
func (c *Client) GetText(ctx context.Context, url string, opts ...ScrapeOption) (string, error) {
	result, err := c.Scrape(ctx, url, opts...)
	if err != nil {
		return "", err
	}
	if result.Text != "" || result.HTML == "" {
		return result.Text, nil
	}

	text, err := htmlToText(result.HTML)
	if err != nil {
		return "", &ValidationError{Errors: []string{fmt.Sprintf("derive text from html: %v", err)}}
	}
	return text, nil
}

// Screenshot captures a screenshot of a URL and returns the PNG bytes.
// JavaScript rendering is always enabled for screenshots. Use
// WithScreenshotSelector to capture a single element.
func (c *Client) Screenshot(ctx context.Context, url string, opts ...ScrapeOption) ([]byte, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	params, err := buildScrapeParams(url, opts)
	if err != nil {
		return nil, err
	}
	params.JSRender = true
	params.Screenshot = true

	env, err := c.apiClient.Scrape(ctx, params)
	if err != nil {
		return nil, wrapError(err)
	}

	if env.Data.Screenshot == "" {
		return nil, &ValidationError{Errors: []string{"screenshot not returned"}}
	}
	return decodeScreenshot(env.Data.Screenshot)
}

// Extract scrapes a URL through a domain extractor profile and returns the
// structured fields. See the Domain* constants for known profiles; unknown
// profile names are passed through for the server to judge.
func (c *Client) Extract(ctx context.Context, url, domain string, opts ...ScrapeOption) (ExtractResult, error) {
	if domain == "" {
		return nil, &ValidationError{Errors: []string{"domain is required"}}
	}

	result, err := c.Scrape(ctx, url, append(opts, WithDomain(domain))...)
	if err != nil {
		return nil, err
	}

	if result.Extracted == nil {
		return nil, &ValidationError{Errors: []string{"no extracted data returned"}}
	}
	return result.Extracted, nil
}

// Close closes the client and releases pooled transport connections.
// Calls in flight when Close is invoked run to completion.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.apiClient.CloseIdleConnections()
	return nil
}

// decodeScreenshot strips an optional data-URL prefix and decodes the
// base64 payload.
func decodeScreenshot(payload string) ([]byte, error) {
	if strings.HasPrefix(payload, "data:") {
		if _, after, ok := strings.Cut(payload, ","); ok {
			payload = after
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("decode screenshot: %v", err)}}
	}
	return data, nil
}
