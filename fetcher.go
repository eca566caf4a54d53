package docmirror

import "context"

// FetchResult is the outcome of a successful fetch.
type FetchResult struct {
	// URL is the final URL after redirects.
	URL string

	// HTML is the response body.
	HTML string
}

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch performs a GET of url, following redirects transparently.
	// Transport failures, timeouts and non-2xx statuses are all returned
	// as an error.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
