// Package crawl walks a documentation site breadth-first from an entry URL
// and mirrors every in-scope page as a Markdown file.
package crawl

import (
	"context"
	"net/url"

	"github.com/fwojciec/docmirror"
	"golang.org/x/sync/errgroup"
)

// Crawler coordinates fetching, extraction, conversion and writing of the
// pages of one site.
type Crawler struct {
	Fetcher     docmirror.Fetcher
	Extractor   docmirror.Extractor
	Links       docmirror.LinkExtractor
	Converter   docmirror.Converter
	Writer      docmirror.PageWriter
	RateLimiter docmirror.DomainLimiter

	// Concurrency is the number of pages processed at once. Values below 1
	// mean 1, a strictly sequential crawl.
	Concurrency int

	// MaxPages caps the number of URLs taken from the frontier. Zero means
	// no limit.
	MaxPages int

	// DryRun suppresses file writes. Everything else runs as normal.
	DryRun bool
}

// Result holds the outcome of a crawl.
type Result struct {
	Scope   docmirror.Scope
	Pages   int
	Errors  int
	Skipped int
	Bytes   int

	// Truncated is set when MaxPages stopped the crawl with URLs still queued.
	Truncated bool
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Queued    int
	Page      *docmirror.PageResult
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressPage
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl mirrors the site rooted at entryURL. Pages are processed in
// breadth-first order and reported through progress in that same order,
// whatever the concurrency. Page failures are counted in the Result; Crawl
// itself fails only when ctx is canceled.
func (c *Crawler) Crawl(ctx context.Context, entryURL string, progress ProgressFunc) (*Result, error) {
	entry, err := url.Parse(entryURL)
	if err != nil || (entry.Scheme != "http" && entry.Scheme != "https") || entry.Host == "" {
		return nil, docmirror.Errorf(docmirror.EINVALID, "entry URL must be an absolute http(s) URL: %q", entryURL)
	}
	scope := docmirror.NormalizeScope(entryURL)

	concurrency := max(c.Concurrency, 1)

	state := NewState()
	state.Enqueue(scope.IncludePrefix)

	result := &Result{Scope: scope}
	notify := func(ev ProgressEvent) {
		if progress != nil {
			progress(ev)
		}
	}
	notify(ProgressEvent{Type: ProgressStarted, Queued: state.Len()})

	taken := 0
	completed := 0
	for state.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		n := concurrency
		if c.MaxPages > 0 {
			if taken >= c.MaxPages {
				result.Truncated = true
				break
			}
			n = min(n, c.MaxPages-taken)
		}
		batch := state.DequeueN(n)
		taken += len(batch)

		pages := c.processBatch(ctx, scope, state, batch)

		for i := range pages {
			page := &pages[i]
			switch page.Status {
			case docmirror.PageSaved:
				result.Pages++
				result.Bytes += page.Bytes
			case docmirror.PageFailed:
				result.Errors++
			case docmirror.PageSkipped:
				result.Skipped++
			}
			if page.Status == docmirror.PageSaved {
				for _, link := range page.Links {
					state.Enqueue(link)
				}
			}
			completed++
			notify(ProgressEvent{
				Type:      ProgressPage,
				Completed: completed,
				Queued:    state.Len(),
				Page:      page,
			})
		}
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: completed})

	return result, nil
}

// processBatch processes urls concurrently and returns their results in
// the order of urls.
func (c *Crawler) processBatch(ctx context.Context, scope docmirror.Scope, state *State, urls []string) []docmirror.PageResult {
	results := make([]docmirror.PageResult, len(urls))
	if len(urls) == 1 {
		results[0] = c.ProcessPage(ctx, scope, state, urls[0])
		return results
	}

	var g errgroup.Group
	g.SetLimit(len(urls))
	for i, u := range urls {
		g.Go(func() error {
			results[i] = c.ProcessPage(ctx, scope, state, u)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
