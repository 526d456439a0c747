package clearscrape

import (
	"context"
	"sync"
)

// AsyncClient runs operations in background goroutines and resolves them
// through futures. It drives the same parameter building and response
// parsing as Client, so identical inputs produce identical requests.
//
// An AsyncClient shares its underlying transport pool with the Client it
// was created from; in-flight calls share only immutable configuration,
// so any number of calls may run concurrently on one instance.
type AsyncClient struct {
	c  *Client
	wg sync.WaitGroup
}

// NewAsync creates a new asynchronous ClearScrape client.
func NewAsync(apiKey string, opts ...Option) (*AsyncClient, error) {
	c, err := New(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &AsyncClient{c: c}, nil
}

// Async returns an asynchronous façade over the client. Both share one
// transport pool; closing either closes both.
func (c *Client) Async() *AsyncClient {
	return &AsyncClient{c: c}
}

// Future resolves a single in-flight call.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Wait blocks until the call resolves or ctx is done, whichever comes
// first. The call itself keeps running under the context it was started
// with; cancel that context to abort the work.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-f.done:
		return f.val, f.err
	}
}

// start runs fn in a goroutine tracked by the client's wait group.
func start[T any](a *AsyncClient, fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		f.val, f.err = fn()
		close(f.done)
	}()
	return f
}

// Scrape fetches a URL through the scraping API. See Client.Scrape.
func (a *AsyncClient) Scrape(ctx context.Context, url string, opts ...ScrapeOption) *Future[*ScrapeResult] {
	return start(a, func() (*ScrapeResult, error) {
		return a.c.Scrape(ctx, url, opts...)
	})
}

// GetHTML scrapes a URL and resolves to its HTML content.
func (a *AsyncClient) GetHTML(ctx context.Context, url string, opts ...ScrapeOption) *Future[string] {
	return start(a, func() (string, error) {
		return a.c.GetHTML(ctx, url, opts...)
	})
}

// GetText scrapes a URL and resolves to its text content.
func (a *AsyncClient) GetText(ctx context.Context, url string, opts ...ScrapeOption) *Future[string] {
	return start(a, func() (string, error) {
		return a.c.GetText(ctx, url, opts...)
	})
}

// Screenshot captures a screenshot of a URL. See Client.Screenshot.
func (a *AsyncClient) Screenshot(ctx context.Context, url string, opts ...ScrapeOption) *Future[[]byte] {
	return start(a, func() ([]byte, error) {
		return a.c.Screenshot(ctx, url, opts...)
	})
}

// Extract scrapes a URL through a domain extractor profile. See
// Client.Extract.
func (a *AsyncClient) Extract(ctx context.Context, url, domain string, opts ...ScrapeOption) *Future[ExtractResult] {
	return start(a, func() (ExtractResult, error) {
		return a.c.Extract(ctx, url, domain, opts...)
	})
}

// GetProxyConfig returns the proxy configuration. Pure; resolves
// immediately without a goroutine.
func (a *AsyncClient) GetProxyConfig(country, session string) ProxyConfig {
	return a.c.GetProxyConfig(country, session)
}

// GetProxyURL returns the proxy URL string.
func (a *AsyncClient) GetProxyURL(country, session string) string {
	return a.c.GetProxyURL(country, session)
}

// GetBrowserWSURL returns the scraping-browser websocket URL.
func (a *AsyncClient) GetBrowserWSURL(proxyCountry string) string {
	return a.c.GetBrowserWSURL(proxyCountry)
}

// Close waits for in-flight calls to resolve, then releases pooled
// transport connections. It runs the same release path on every exit,
// including when pending calls were cancelled.
func (a *AsyncClient) Close() error {
	a.wg.Wait()
	return a.c.Close()
}
