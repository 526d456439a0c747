// Package clearscrape provides a Go client SDK for the ClearScrape web
// scraping API.
//
// The SDK handles authentication, retries with exponential backoff, and
// error classification, and exposes scraping, screenshot capture, domain
// extraction, and proxy/browser endpoint builders.
//
// Basic usage:
//
//	client, err := clearscrape.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Fetch a page
//	html, err := client.GetHTML(ctx, "https://example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Render JavaScript and wait for content
//	result, err := client.Scrape(ctx, "https://example.com",
//	    clearscrape.WithJSRender(),
//	    clearscrape.WithWaitFor(".content"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// Concurrent workloads can use the asynchronous façade:
//
//	async := client.Async()
//	f1 := async.GetHTML(ctx, "https://example.com/a")
//	f2 := async.GetHTML(ctx, "https://example.com/b")
//	a, err := f1.Wait(ctx)
//	b, err := f2.Wait(ctx)
package clearscrape
