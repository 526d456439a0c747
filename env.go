package clearscrape

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by NewFromEnv.
const (
	EnvAPIKey  = "CLEARSCRAPE_API_KEY"
	EnvBaseURL = "CLEARSCRAPE_BASE_URL"
	EnvTimeout = "CLEARSCRAPE_TIMEOUT"
	EnvRetries = "CLEARSCRAPE_RETRIES"
)

// NewFromEnv creates a client configured from the environment. A .env file
// in the working directory is loaded first when present; real environment
// variables win over the file. CLEARSCRAPE_API_KEY is required,
// CLEARSCRAPE_BASE_URL, CLEARSCRAPE_TIMEOUT (Go duration, e.g. "90s") and
// CLEARSCRAPE_RETRIES are optional. Explicit options are applied last and
// override environment values.
func NewFromEnv(opts ...Option) (*Client, error) {
	_ = godotenv.Load()

	apiKey := os.Getenv(EnvAPIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	var envOpts []Option
	if baseURL := os.Getenv(EnvBaseURL); baseURL != "" {
		envOpts = append(envOpts, WithBaseURL(baseURL))
	}
	if raw := os.Getenv(EnvTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, &ValidationError{Errors: []string{fmt.Sprintf("parse %s: %v", EnvTimeout, err)}}
		}
		envOpts = append(envOpts, WithTimeout(timeout))
	}
	if raw := os.Getenv(EnvRetries); raw != "" {
		retries, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &ValidationError{Errors: []string{fmt.Sprintf("parse %s: %v", EnvRetries, err)}}
		}
		envOpts = append(envOpts, WithRetries(retries))
	}

	return New(apiKey, append(envOpts, opts...)...)
}
