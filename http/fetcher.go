// Package http provides an HTTP-based implementation of docmirror.Fetcher.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/docmirror"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "docmirror/1.0 (+https://github.com/fwojciec/docmirror)"

// maxBodySize bounds the bytes read from a single response.
const maxBodySize = 32 << 20

// Ensure Fetcher implements docmirror.Fetcher at compile time.
var _ docmirror.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Redirects are followed by the underlying client; the final URL is reported.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Any status outside 2xx is an error.
// Errors carry the ETRANSPORT code.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*docmirror.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ETRANSPORT, "build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ETRANSPORT, "%v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, docmirror.Errorf(docmirror.ETRANSPORT, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, docmirror.Errorf(docmirror.ETRANSPORT, "read body of %s: %v", url, err)
	}

	return &docmirror.FetchResult{
		URL:  resp.Request.URL.String(),
		HTML: string(body),
	}, nil
}

// String returns a description of the fetcher for logs.
func (f *Fetcher) String() string {
	return fmt.Sprintf("http(timeout=%s)", f.timeout)
}
