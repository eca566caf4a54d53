package docmirror

import (
	"context"
	"time"
)

// Run is a recorded crawl of one entry URL.
type Run struct {
	ID            string    `json:"id"`
	EntryURL      string    `json:"entryUrl"`
	IncludePrefix string    `json:"includePrefix"`
	OutputDir     string    `json:"outputDir"`
	DryRun        bool      `json:"dryRun"`
	Pages         int       `json:"pages"`
	Errors        int       `json:"errors"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.EntryURL == "" {
		return Errorf(EINVALID, "run entry URL required")
	}
	return nil
}

// Finished reports whether the run completed.
func (r *Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// PageRecord is the stored outcome of one processed URL within a run.
type PageRecord struct {
	ID          string     `json:"id"`
	RunID       string     `json:"runId"`
	Position    int        `json:"position"`
	URL         string     `json:"url"`
	FinalURL    string     `json:"finalUrl"`
	OutputPath  string     `json:"outputPath"`
	Title       string     `json:"title"`
	Status      PageStatus `json:"status"`
	Error       string     `json:"error"`
	Bytes       int        `json:"bytes"`
	ContentHash string     `json:"contentHash"`
	FetchedAt   time.Time  `json:"fetchedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (p *PageRecord) Validate() error {
	if p.RunID == "" {
		return Errorf(EINVALID, "page record run ID required")
	}
	if p.URL == "" {
		return Errorf(EINVALID, "page record URL required")
	}
	return nil
}

// NewPageRecord builds a record from a processing result.
func NewPageRecord(runID string, position int, r *PageResult) *PageRecord {
	rec := &PageRecord{
		RunID:       runID,
		Position:    position,
		URL:         r.URL,
		FinalURL:    r.FinalURL,
		OutputPath:  r.OutputPath,
		Title:       r.Title,
		Status:      r.Status,
		Bytes:       r.Bytes,
		ContentHash: r.ContentHash,
	}
	switch {
	case r.Err != nil:
		rec.Error = r.Err.Error()
	case r.Reason != "":
		rec.Error = r.Reason
	}
	return rec
}

// RunService records crawl history. History is an audit log only; it is
// never consulted to skip pages on a later run.
type RunService interface {
	// CreateRun inserts a new run and assigns its ID and StartedAt.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counters of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, pages, errors int) error

	// FindRunByID retrieves a run by ID or ID prefix.
	// Returns ENOTFOUND if no run matches.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// RecordPage appends a page record to a run.
	RecordPage(ctx context.Context, page *PageRecord) error

	// FindPages returns the page records of a run in processing order.
	FindPages(ctx context.Context, runID string) ([]*PageRecord, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	EntryURL *string `json:"entryUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
