// Package fetch implements the Fetcher interface.
// It performs a single HTTP GET per call with a fixed identifying User-Agent.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/link2itinerary/core"
)

const (
	DefaultTimeout      = 20 * time.Second
	DefaultUserAgent    = "Mozilla/5.0 (Link2Itinerary MVP)"
	DefaultMaxBodyBytes = 5 << 20
)

// Options tunes an HTTPFetcher. Zero values fall back to the defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
}

// New creates an HTTPFetcher with the default timeout and User-Agent.
func New() *HTTPFetcher {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an HTTPFetcher from opts.
func NewWithOptions(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &HTTPFetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// Fetch retrieves the HTML content of the given URL. Non-2xx responses and
// transport errors are returned as a fetch *core.Failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.FetchFailure(0, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, core.FetchFailure(0, fmt.Errorf("fetching %s: %w", url, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, core.FetchFailure(resp.StatusCode, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, core.FetchFailure(0, fmt.Errorf("reading response body: %w", err))
	}

	return &core.FetchResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
