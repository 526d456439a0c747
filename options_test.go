package clearscrape

import (
	"net/http"
	"testing"
	"time"

	"github.com/clearscrape/client-go/internal/api"
)

func TestDefaultConstants(t *testing.T) {
	if DefaultBaseURL != "https://api.clearscrape.io" {
		t.Errorf("DefaultBaseURL = %s, want https://api.clearscrape.io", DefaultBaseURL)
	}
	if DefaultTimeout != 60*time.Second {
		t.Errorf("DefaultTimeout = %v, want 60s", DefaultTimeout)
	}
	if DefaultRetries != 3 {
		t.Errorf("DefaultRetries = %d, want 3", DefaultRetries)
	}
	if DefaultProxyHost != "proxy.clearscrape.io" {
		t.Errorf("DefaultProxyHost = %s, want proxy.clearscrape.io", DefaultProxyHost)
	}
	if DefaultProxyPort != 8000 {
		t.Errorf("DefaultProxyPort = %d, want 8000", DefaultProxyPort)
	}
}

func TestDefaultClientConfig(t *testing.T) {
	cfg := defaultClientConfig()

	if cfg.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %s, want %s", cfg.baseURL, DefaultBaseURL)
	}
	if cfg.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.timeout, DefaultTimeout)
	}
	if cfg.retries != DefaultRetries {
		t.Errorf("retries = %d, want %d", cfg.retries, DefaultRetries)
	}
	if cfg.jitterFactor != -1 {
		t.Errorf("jitterFactor = %v, want -1 (unset)", cfg.jitterFactor)
	}
}

func TestWithBaseURL(t *testing.T) {
	cfg := &clientConfig{}
	WithBaseURL("https://custom.example.com")(cfg)
	if cfg.baseURL != "https://custom.example.com" {
		t.Errorf("baseURL = %s, want https://custom.example.com", cfg.baseURL)
	}
}

func TestWithHTTPClient(t *testing.T) {
	cfg := &clientConfig{}
	customClient := &http.Client{Timeout: 99 * time.Second}
	WithHTTPClient(customClient)(cfg)
	if cfg.httpClient != customClient {
		t.Error("httpClient not set")
	}
}

func TestWithTimeoutAndRetries(t *testing.T) {
	cfg := &clientConfig{}
	WithTimeout(90 * time.Second)(cfg)
	WithRetries(5)(cfg)
	if cfg.timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", cfg.timeout)
	}
	if cfg.retries != 5 {
		t.Errorf("retries = %d, want 5", cfg.retries)
	}
}

func TestWithBackoffAndJitter(t *testing.T) {
	cfg := &clientConfig{}
	WithBackoff(500*time.Millisecond, 10*time.Second, 3.0)(cfg)
	WithJitter(0.5)(cfg)

	if cfg.backoffBase != 500*time.Millisecond {
		t.Errorf("backoffBase = %v, want 500ms", cfg.backoffBase)
	}
	if cfg.backoffMax != 10*time.Second {
		t.Errorf("backoffMax = %v, want 10s", cfg.backoffMax)
	}
	if cfg.backoffMultiplier != 3.0 {
		t.Errorf("backoffMultiplier = %v, want 3.0", cfg.backoffMultiplier)
	}
	if cfg.jitterFactor != 0.5 {
		t.Errorf("jitterFactor = %v, want 0.5", cfg.jitterFactor)
	}
}

func TestNew_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"empty base URL", []Option{WithBaseURL("")}},
		{"zero timeout", []Option{WithTimeout(0)}},
		{"negative retries", []Option{WithRetries(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("key", tt.opts...)
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("New() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestBuildScrapeParams(t *testing.T) {
	params, err := buildScrapeParams("https://example.com", []ScrapeOption{
		WithMethod(http.MethodPost),
		WithJSRender(),
		WithPremiumProxy(),
		WithAntibot(),
		WithProxyCountry("de"),
		WithWaitFor(".price"),
		WithWait(1500),
		WithAutoScroll(),
		WithScreenshotSelector("#hero"),
		WithHeaders(map[string]string{"Referer": "https://google.com"}),
		WithRequestBody(`{"q":"widgets"}`),
		WithDomain(DomainWalmart),
	})
	if err != nil {
		t.Fatalf("buildScrapeParams() error = %v", err)
	}

	want := &api.ScrapeParams{
		URL:                "https://example.com",
		Method:             "POST",
		JSRender:           true,
		PremiumProxy:       true,
		Antibot:            true,
		ProxyCountry:       "de",
		WaitFor:            ".price",
		Wait:               1500,
		AutoScroll:         true,
		ScreenshotSelector: "#hero",
		Body:               `{"q":"widgets"}`,
		Domain:             "walmart",
	}

	if params.URL != want.URL || params.Method != want.Method ||
		params.ProxyCountry != want.ProxyCountry || params.Wait != want.Wait ||
		params.WaitFor != want.WaitFor || params.Domain != want.Domain ||
		params.ScreenshotSelector != want.ScreenshotSelector || params.Body != want.Body {
		t.Errorf("params = %+v, want %+v", params, want)
	}
	if !params.JSRender || !params.PremiumProxy || !params.Antibot || !params.AutoScroll {
		t.Errorf("boolean flags not all set: %+v", params)
	}
	if params.Headers["Referer"] != "https://google.com" {
		t.Errorf("Headers = %v", params.Headers)
	}
}

func TestBuildScrapeParams_MethodGETOmitted(t *testing.T) {
	params, err := buildScrapeParams("https://example.com", []ScrapeOption{
		WithMethod(http.MethodGet),
	})
	if err != nil {
		t.Fatalf("buildScrapeParams() error = %v", err)
	}
	if params.Method != "" {
		t.Errorf("Method = %q, want empty for GET", params.Method)
	}
}

func TestBuildScrapeParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
		opts []ScrapeOption
	}{
		{"missing url", "", nil},
		{"relative url", "/nope", nil},
		{"bad country code", "https://example.com", []ScrapeOption{WithProxyCountry("usa")}},
		{"negative wait", "https://example.com", []ScrapeOption{WithWait(-1)}},
		{"unknown method", "https://example.com", []ScrapeOption{WithMethod("TRACE")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildScrapeParams(tt.url, tt.opts)
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("buildScrapeParams() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "https://staging.clearscrape.io")
	t.Setenv(EnvTimeout, "90s")
	t.Setenv(EnvRetries, "5")

	client, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	defer client.Close()

	if client.apiKey != "env-key" {
		t.Errorf("apiKey = %q, want env-key", client.apiKey)
	}
	if client.cfg.baseURL != "https://staging.clearscrape.io" {
		t.Errorf("baseURL = %q", client.cfg.baseURL)
	}
	if client.cfg.timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s", client.cfg.timeout)
	}
	if client.cfg.retries != 5 {
		t.Errorf("retries = %d, want 5", client.cfg.retries)
	}
}

func TestNewFromEnv_MissingKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := NewFromEnv()
	if err != ErrMissingAPIKey {
		t.Errorf("NewFromEnv() error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNewFromEnv_BadValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"bad timeout", EnvTimeout, "ninety"},
		{"bad retries", EnvRetries, "many"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, "env-key")
			t.Setenv(tt.envVar, tt.value)

			_, err := NewFromEnv()
			if _, ok := err.(*ValidationError); !ok {
				t.Errorf("NewFromEnv() error = %v, want *ValidationError", err)
			}
		})
	}
}

func TestNewFromEnv_ExplicitOptionsWin(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvBaseURL, "https://staging.clearscrape.io")

	client, err := NewFromEnv(WithBaseURL("https://override.clearscrape.io"))
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	defer client.Close()

	if client.cfg.baseURL != "https://override.clearscrape.io" {
		t.Errorf("baseURL = %q, want override", client.cfg.baseURL)
	}
}
