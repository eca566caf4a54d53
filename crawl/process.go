package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/fwojciec/docmirror"
)

// ProcessPage fetches rawURL, converts its content region to Markdown,
// writes it under the path mapped from the final URL and returns the
// in-scope links found on the page. Page-local failures are reported in
// the returned PageResult and never abort the caller.
func (c *Crawler) ProcessPage(ctx context.Context, scope docmirror.Scope, state *State, rawURL string) (result docmirror.PageResult) {
	result.DryRun = c.DryRun

	requested, err := docmirror.Canonical(rawURL)
	if err != nil {
		result.URL = rawURL
		result.Status = docmirror.PageFailed
		result.Err = err
		return result
	}
	result.URL = requested

	if !state.MarkVisited(requested) {
		result.Status = docmirror.PageSkipped
		result.Reason = "already visited"
		return result
	}

	fetched, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		result.Status = docmirror.PageFailed
		result.Err = withCode(err, docmirror.ETRANSPORT)
		return result
	}

	final, err := url.Parse(fetched.URL)
	if err != nil {
		result.Status = docmirror.PageFailed
		result.Err = docmirror.Errorf(docmirror.ETRANSPORT, "invalid final URL %q: %v", fetched.URL, err)
		return result
	}
	result.FinalURL = docmirror.CanonicalURL(final)

	if result.FinalURL != requested && !state.MarkVisited(result.FinalURL) {
		result.Status = docmirror.PageSkipped
		result.Reason = "redirected to already visited " + result.FinalURL
		c.pace(ctx, final.Host)
		return result
	}
	if !scope.Contains(result.FinalURL) {
		result.Status = docmirror.PageSkipped
		result.Reason = "redirected out of scope to " + result.FinalURL
		c.pace(ctx, final.Host)
		return result
	}

	c.render(ctx, scope, state, final, fetched.HTML, &result)
	c.pace(ctx, final.Host)
	return result
}

// render runs the parse, convert and write steps for a fetched page.
// A panic in any step becomes a failed result for this page only.
func (c *Crawler) render(ctx context.Context, scope docmirror.Scope, state *State, final *url.URL, html string, result *docmirror.PageResult) {
	defer func() {
		if r := recover(); r != nil {
			result.Status = docmirror.PageFailed
			result.Err = docmirror.Errorf(docmirror.EINTERNAL, "panic processing %s: %v", result.FinalURL, r)
			result.Links = nil
		}
	}()

	// Links come from the full document, before chrome is stripped, but
	// are only reported once the page is saved.
	var links []string
	if c.Links != nil {
		found, err := c.Links.ExtractLinks(html, final.String())
		if err == nil {
			for _, link := range found {
				if scope.Contains(link) && !state.Visited(link) {
					links = append(links, link)
				}
			}
		}
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		result.Status = docmirror.PageFailed
		result.Err = withCode(err, docmirror.ECONVERT)
		return
	}
	result.Title = docmirror.NormalizeTitle(extracted.Title)

	markdown, err := c.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		result.Status = docmirror.PageFailed
		result.Err = withCode(err, docmirror.ECONVERT)
		return
	}
	markdown = docmirror.FormatMarkdown(result.Title, markdown)

	path, inScope := scope.MapPath(final)
	if !inScope {
		// Contains implies the base path prefix, so this only trips on a
		// hand-built Scope whose fields disagree.
		result.Status = docmirror.PageSkipped
		result.Reason = fmt.Sprintf("path %s outside base %s", final.Path, scope.BasePath)
		return
	}
	result.OutputPath = path
	result.Bytes = len(markdown)
	result.ContentHash = ComputeHash(markdown)

	if !c.DryRun {
		if err := c.Writer.WritePage(ctx, path, markdown); err != nil {
			result.Status = docmirror.PageFailed
			result.Err = withCode(err, docmirror.EFILESYSTEM)
			return
		}
	}
	result.Status = docmirror.PageSaved
	result.Links = links
}

// pace waits on the per-host limiter after a successful fetch.
func (c *Crawler) pace(ctx context.Context, host string) {
	if c.RateLimiter == nil {
		return
	}
	_ = c.RateLimiter.Wait(ctx, host)
}

// withCode keeps application errors as they are and wraps anything else
// under code.
func withCode(err error, code string) error {
	var e *docmirror.Error
	if errors.As(err, &e) {
		return err
	}
	return docmirror.Errorf(code, "%v", err)
}
