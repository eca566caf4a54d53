package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	if deps.Crawler == nil {
		return docmirror.Errorf(docmirror.EINTERNAL, "crawler not configured")
	}
	deps.Crawler.Concurrency = c.Concurrency
	deps.Crawler.MaxPages = c.MaxPages
	deps.Crawler.DryRun = c.DryRun

	fmt.Fprintf(deps.Stdout, "Starting crawl of: %s\n", c.URL)
	scope := docmirror.NormalizeScope(c.URL)
	if deps.Verbose {
		fmt.Fprintf(deps.Stdout, "Scope: %s\n", scope.IncludePrefix)
		fmt.Fprintf(deps.Stdout, "Output directory: %s\n", c.Folder)
	}

	run := c.startRun(deps, scope)

	line := &progressLine{
		out:     deps.Stdout,
		errOut:  deps.Stderr,
		verbose: deps.Verbose,
		prefix:  crawlPrefix(c.DryRun),
	}
	recordFailed := false
	progress := func(ev crawl.ProgressEvent) {
		if ev.Type != crawl.ProgressPage {
			return
		}
		page := ev.Page
		reportPage(line, page)

		if run == nil || recordFailed {
			return
		}
		if err := deps.Runs.RecordPage(deps.Ctx, docmirror.NewPageRecord(run.ID, ev.Completed-1, page)); err != nil {
			recordFailed = true
			line.fail("Warning: history not recorded: %s", docmirror.ErrorMessage(err))
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, c.URL, progress)
	line.end()
	if err != nil && result == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmirror.ErrorMessage(err))
		return err
	}

	if run != nil {
		if ferr := deps.Runs.FinishRun(deps.Ctx, run.ID, result.Pages, result.Errors); ferr != nil {
			fmt.Fprintf(deps.Stderr, "Warning: history not recorded: %s\n", docmirror.ErrorMessage(ferr))
		}
	}

	fmt.Fprintln(deps.Stdout, "\nCrawl completed:")
	if c.DryRun {
		fmt.Fprintf(deps.Stdout, "Pages that would be saved: %d\n", result.Pages)
	} else {
		fmt.Fprintf(deps.Stdout, "Pages processed: %d\n", result.Pages)
	}
	fmt.Fprintf(deps.Stdout, "Errors: %d\n", result.Errors)
	if deps.Verbose {
		fmt.Fprintf(deps.Stdout, "Skipped: %d\n", result.Skipped)
		fmt.Fprintf(deps.Stdout, "Markdown: %s\n", crawl.FormatBytes(result.Bytes))
	}
	if result.Truncated {
		fmt.Fprintf(deps.Stdout, "Stopped after %d pages (--max-pages)\n", c.MaxPages)
	}
	if run != nil {
		fmt.Fprintf(deps.Stdout, "Run ID: %s\n", run.ID)
	}

	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return nil
}

// startRun records the start of a crawl. It returns nil when history is
// disabled or cannot be written; the crawl goes ahead either way.
func (c *CrawlCmd) startRun(deps *Dependencies, scope docmirror.Scope) *docmirror.Run {
	if deps.Runs == nil {
		return nil
	}
	outputDir, err := filepath.Abs(c.Folder)
	if err != nil {
		outputDir = c.Folder
	}
	run := &docmirror.Run{
		EntryURL:      c.URL,
		IncludePrefix: scope.IncludePrefix,
		OutputDir:     outputDir,
		DryRun:        c.DryRun,
	}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: history not recorded: %s\n", docmirror.ErrorMessage(err))
		return nil
	}
	return run
}

func reportPage(line *progressLine, page *docmirror.PageResult) {
	if page.Redirected() {
		line.detail("Redirected: %s -> %s", page.URL, page.FinalURL)
	}
	switch page.Status {
	case docmirror.PageSaved:
		if page.DryRun {
			line.detail("Dry-run: Would save: %s -> %s (%s)", page.URL, page.OutputPath, page.Title)
		} else {
			line.detail("Saved: %s -> %s (%s)", page.URL, page.OutputPath, page.Title)
		}
		line.mark(savedMarker(page.DryRun))
	case docmirror.PageFailed:
		line.fail("Error processing %s: %s", page.URL, docmirror.ErrorMessage(page.Err))
	case docmirror.PageSkipped:
		line.detail("Skipped: %s (%s)", page.URL, page.Reason)
	}
}
