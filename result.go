package clearscrape

import "github.com/clearscrape/client-go/internal/api"

// ScrapeResult is the decoded outcome of a successful scrape. It is a
// value returned to the caller and never mutated by the SDK afterwards.
type ScrapeResult struct {
	// HTML is the page source, empty when not returned.
	HTML string
	// Text is the page text as extracted by the server, empty when not
	// returned.
	Text string
	// Extracted holds domain-extractor fields, nil unless a domain
	// profile was requested.
	Extracted ExtractResult
	// Metadata holds server-side metadata about the scrape.
	Metadata map[string]any
	// CreditsUsed is the credit cost of the request.
	CreditsUsed int
	// URL is the final URL after redirects.
	URL string
	// StatusCode is the status code the target site returned to the
	// scraper, not the API's own status.
	StatusCode int
	// RawBody is the undecoded API response body.
	RawBody []byte

	screenshot string
}

// ExtractResult maps extracted field names to values: strings, numbers,
// nested mappings or sequences, depending on the domain profile.
type ExtractResult map[string]any

func newScrapeResult(env *api.ScrapeEnvelope) *ScrapeResult {
	return &ScrapeResult{
		HTML:        env.Data.HTML,
		Text:        env.Data.Text,
		Extracted:   env.Data.Extracted,
		Metadata:    env.Data.Metadata,
		CreditsUsed: env.CreditsUsed,
		URL:         env.Data.URL,
		StatusCode:  env.Data.StatusCode,
		RawBody:     env.Raw,
		screenshot:  env.Data.Screenshot,
	}
}
