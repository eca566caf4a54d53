package docmirror

import "context"

// PageStatus is the outcome of processing one URL.
type PageStatus string

// PageStatus values.
const (
	// PageSaved means the page was converted and written (or would have
	// been, in dry-run mode).
	PageSaved PageStatus = "saved"

	// PageFailed means a transport, conversion or filesystem error occurred.
	PageFailed PageStatus = "failed"

	// PageSkipped means nothing was fetched or written: the URL was
	// already visited, or a redirect collapsed onto a visited URL or
	// left the scope.
	PageSkipped PageStatus = "skipped"
)

// PageResult reports the processing of one URL. It is produced once per
// attempt and consumed by the scheduler and the reporting layer.
type PageResult struct {
	// URL is the canonical requested URL.
	URL string

	// FinalURL is the canonical URL after redirects. Empty if the fetch failed.
	FinalURL string

	// OutputPath is the slash-separated path relative to the output root.
	OutputPath string

	Title  string
	Status PageStatus

	// Reason explains a skip.
	Reason string

	// Err is set when Status is PageFailed.
	Err error

	// Links are the in-scope, not yet visited canonical URLs found on the
	// page. Only saved pages carry links.
	Links []string

	Bytes       int
	ContentHash string
	DryRun      bool
}

// Redirected reports whether the page was served from a different URL.
func (r *PageResult) Redirected() bool {
	return r.FinalURL != "" && r.FinalURL != r.URL
}

// PageWriter persists converted pages.
type PageWriter interface {
	// WritePage writes markdown to path, a slash-separated path relative to
	// the writer's root. Parent directories are created as needed.
	WritePage(ctx context.Context, path string, markdown string) error
}
