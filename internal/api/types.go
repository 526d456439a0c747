package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is shared across calls; validator.Validate is safe for
// concurrent use.
var validate = validator.New()

// ScrapeParams is the JSON payload for the scrape endpoint. Zero values
// are omitted from the wire payload, matching the documented API surface.
type ScrapeParams struct {
	URL                string            `json:"url" validate:"required,url"`
	Method             string            `json:"method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE HEAD"`
	JSRender           bool              `json:"js_render,omitempty"`
	PremiumProxy       bool              `json:"premium_proxy,omitempty"`
	Antibot            bool              `json:"antibot,omitempty"`
	ProxyCountry       string            `json:"proxy_country,omitempty" validate:"omitempty,len=2,alpha"`
	WaitFor            string            `json:"wait_for,omitempty"`
	Wait               int               `json:"wait,omitempty" validate:"gte=0"`
	AutoScroll         bool              `json:"auto_scroll,omitempty"`
	Screenshot         bool              `json:"screenshot,omitempty"`
	ScreenshotSelector string            `json:"screenshot_selector,omitempty"`
	Headers            map[string]string `json:"headers,omitempty"`
	Body               string            `json:"body,omitempty"`
	Domain             string            `json:"domain,omitempty"`
}

// Validate checks the params before any network call is issued. It returns
// one message per violation, or nil when the params are valid.
func (p *ScrapeParams) Validate() []string {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return msgs
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be an absolute URL", fe.Field())
	case "len", "alpha":
		return fmt.Sprintf("%s must be a two-letter country code", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must not be negative", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// ScrapeData is the payload section of a successful scrape response.
type ScrapeData struct {
	HTML       string         `json:"html"`
	Text       string         `json:"text"`
	Screenshot string         `json:"screenshot"`
	Extracted  map[string]any `json:"extracted"`
	Metadata   map[string]any `json:"metadata"`
	URL        string         `json:"url"`
	StatusCode int            `json:"status_code"`
}

// ScrapeEnvelope is the response envelope returned by the scrape endpoint.
type ScrapeEnvelope struct {
	Success     bool       `json:"success"`
	CreditsUsed int        `json:"credits_used"`
	Data        ScrapeData `json:"data"`

	// Raw is the undecoded response body, populated by the transport.
	Raw []byte `json:"-"`
}
