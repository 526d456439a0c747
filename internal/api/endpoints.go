package api

import (
	"context"
	"net/http"
)

// ScrapePath is the single operation endpoint; scrape, extract and
// screenshot are all parameterizations of it.
const ScrapePath = "/api/scrape"

// Scrape issues a scrape request and returns the decoded envelope.
func (c *Client) Scrape(ctx context.Context, params *ScrapeParams) (*ScrapeEnvelope, error) {
	var result ScrapeEnvelope
	raw, err := c.Do(ctx, http.MethodPost, ScrapePath, params, &result)
	if err != nil {
		return nil, err
	}
	result.Raw = raw
	return &result, nil
}
