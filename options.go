package clearscrape

import (
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/clearscrape/client-go/internal/api"
)

// Default configuration values.
const (
	DefaultBaseURL = api.DefaultBaseURL
	DefaultTimeout = api.DefaultTimeout
	DefaultRetries = 3

	// DefaultProxyHost and DefaultProxyPort locate the residential proxy
	// service.
	DefaultProxyHost = "proxy.clearscrape.io"
	DefaultProxyPort = 8000

	defaultBrowserURL = "wss://browser.clearscrape.io"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	retries    int
	retryOn    []int

	// Backoff configuration
	backoffBase       time.Duration
	backoffMax        time.Duration
	backoffMultiplier float64
	jitterFactor      float64
	jitterSource      *rand.Rand

	// Ambient concerns
	logger         *zap.Logger
	limiter        *rate.Limiter
	creditsMarkers []string

	// Endpoint builders
	proxyHost  string
	proxyPort  int
	browserURL string
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		baseURL:      DefaultBaseURL,
		timeout:      DefaultTimeout,
		retries:      DefaultRetries,
		jitterFactor: -1, // -1 means "not set", keep the retry default
		proxyHost:    DefaultProxyHost,
		proxyPort:    DefaultProxyPort,
		browserURL:   defaultBrowserURL,
	}
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. The configured timeout applies
// per attempt.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-attempt request timeout. Default: 60 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the retry budget for transient failures. The total
// attempt count is at most count+1. Default: 3.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn narrows the HTTP status codes that trigger a retry.
// Only rate-limit (429) and 5xx classifications are ever retried;
// this option restricts retries to a subset of those.
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithBackoff sets the backoff base delay, ceiling and growth multiplier.
// Defaults: 1s base, 30s ceiling, 2.0 multiplier.
func WithBackoff(base, max time.Duration, multiplier float64) Option {
	return func(c *clientConfig) {
		c.backoffBase = base
		c.backoffMax = max
		c.backoffMultiplier = multiplier
	}
}

// WithJitter sets the backoff jitter factor (0.0 to 1.0). Default: 0.2.
func WithJitter(factor float64) Option {
	return func(c *clientConfig) {
		c.jitterFactor = factor
	}
}

// WithJitterSource sets the random source used for backoff jitter.
// Inject a seeded source for deterministic delays in tests.
func WithJitterSource(r *rand.Rand) Option {
	return func(c *clientConfig) {
		c.jitterSource = r
	}
}

// WithLogger sets the structured logger used for request/retry diagnostics.
// Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithRateLimit gates outgoing HTTP attempts through a client-side token
// bucket, useful to stay below the account's rate limit instead of
// handling 429 responses after the fact.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *clientConfig) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCreditsMarkers sets the response body keys that mark a
// credits-shortfall response. Defaults to "required_credits" and
// "required".
func WithCreditsMarkers(keys ...string) Option {
	return func(c *clientConfig) {
		c.creditsMarkers = keys
	}
}

// WithProxyEndpoint overrides the residential proxy host and port used by
// GetProxyConfig and GetProxyURL.
func WithProxyEndpoint(host string, port int) Option {
	return func(c *clientConfig) {
		c.proxyHost = host
		c.proxyPort = port
	}
}

// WithBrowserEndpoint overrides the scraping-browser websocket endpoint
// used by GetBrowserWSURL.
func WithBrowserEndpoint(url string) Option {
	return func(c *clientConfig) {
		c.browserURL = url
	}
}

// ScrapeOption configures a single scrape request.
type ScrapeOption func(*api.ScrapeParams)

// WithMethod sets the HTTP method the server uses against the target URL.
// Default: GET.
func WithMethod(method string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		if method == http.MethodGet {
			// GET is the server default and is omitted from the payload.
			p.Method = ""
			return
		}
		p.Method = method
	}
}

// WithJSRender enables JavaScript rendering (+5 credits).
func WithJSRender() ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.JSRender = true
	}
}

// WithPremiumProxy routes the request through a residential proxy
// (+10 credits).
func WithPremiumProxy() ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.PremiumProxy = true
	}
}

// WithAntibot enables antibot bypass (+25 credits).
func WithAntibot() ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.Antibot = true
	}
}

// WithProxyCountry sets the two-letter country code for geo-targeting.
func WithProxyCountry(cc string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.ProxyCountry = cc
	}
}

// WithWaitFor waits for a CSS selector to appear before returning.
func WithWaitFor(selector string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.WaitFor = selector
	}
}

// WithWait adds a fixed wait in milliseconds before returning.
func WithWait(ms int) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.Wait = ms
	}
}

// WithAutoScroll scrolls the page to load lazy content.
func WithAutoScroll() ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.AutoScroll = true
	}
}

// WithScreenshotSelector limits a screenshot to the element matching the
// CSS selector.
func WithScreenshotSelector(selector string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.ScreenshotSelector = selector
	}
}

// WithHeaders sets custom HTTP headers forwarded to the target.
func WithHeaders(headers map[string]string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.Headers = headers
	}
}

// WithRequestBody sets the request body forwarded to the target for
// non-GET methods.
func WithRequestBody(body string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.Body = body
	}
}

// WithDomain selects a server-side domain extractor profile
// (see the Domain* constants).
func WithDomain(domain string) ScrapeOption {
	return func(p *api.ScrapeParams) {
		p.Domain = domain
	}
}

// buildScrapeParams assembles and validates the request payload. Both the
// sync and async façades go through this single routine, so identical
// inputs always produce identical requests.
func buildScrapeParams(url string, opts []ScrapeOption) (*api.ScrapeParams, error) {
	params := &api.ScrapeParams{URL: url}
	for _, opt := range opts {
		opt(params)
	}

	if msgs := params.Validate(); msgs != nil {
		return nil, &ValidationError{Errors: msgs}
	}
	return params, nil
}
