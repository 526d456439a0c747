// Command clearscrape is a thin CLI over the SDK, useful for smoke tests
// and shell pipelines.
//
// Usage:
//
//	clearscrape html <url>
//	clearscrape text <url>
//	clearscrape screenshot <url> <outfile>
//	clearscrape extract <url> <domain>
//	clearscrape proxy-url [country] [session]
//	clearscrape browser-url [country]
//
// The API key is read from CLEARSCRAPE_API_KEY; CLEARSCRAPE_BASE_URL
// overrides the API endpoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	clearscrape "github.com/clearscrape/client-go"
)

// Config wires the command's input and output streams so tests can
// substitute buffers.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config bound to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func run(args []string, cfg Config) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: clearscrape <command> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := clearscrape.NewFromEnv()
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	switch args[1] {
	case "html":
		if len(args) < 3 {
			return fmt.Errorf("usage: clearscrape html <url>")
		}
		html, err := client.GetHTML(ctx, args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(cfg.Stdout, html)

	case "text":
		if len(args) < 3 {
			return fmt.Errorf("usage: clearscrape text <url>")
		}
		text, err := client.GetText(ctx, args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(cfg.Stdout, text)

	case "screenshot":
		if len(args) < 4 {
			return fmt.Errorf("usage: clearscrape screenshot <url> <outfile>")
		}
		data, err := client.Screenshot(ctx, args[2])
		if err != nil {
			return err
		}
		if err := os.WriteFile(args[3], data, 0644); err != nil {
			return fmt.Errorf("write screenshot: %w", err)
		}
		fmt.Fprintf(cfg.Stderr, "wrote %d bytes to %s\n", len(data), args[3])

	case "extract":
		if len(args) < 4 {
			return fmt.Errorf("usage: clearscrape extract <url> <domain>")
		}
		fields, err := client.Extract(ctx, args[2], args[3])
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cfg.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fields); err != nil {
			return fmt.Errorf("encode fields: %w", err)
		}

	case "proxy-url":
		country, session := optionalArgs(args[2:])
		fmt.Fprintln(cfg.Stdout, client.GetProxyURL(country, session))

	case "browser-url":
		country, _ := optionalArgs(args[2:])
		fmt.Fprintln(cfg.Stdout, client.GetBrowserWSURL(country))

	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}

	return nil
}

func optionalArgs(rest []string) (first, second string) {
	if len(rest) > 0 {
		first = rest[0]
	}
	if len(rest) > 1 {
		second = rest[1]
	}
	return first, second
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
