package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/docmirror"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	if deps.Runs == nil {
		return docmirror.Errorf(docmirror.EINTERNAL, "history not configured")
	}
	if c.ID != "" {
		return c.showRun(deps)
	}

	filter := docmirror.RunFilter{Limit: c.Limit}
	if c.URL != "" {
		filter.EntryURL = &c.URL
	}
	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmirror.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'docmirror crawl' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n", shortID(r.ID), formatTime(r.StartedAt), runStatus(r), r.EntryURL)
	}
	return nil
}

func (c *HistoryCmd) showRun(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmirror.ErrorMessage(err))
		return err
	}
	pages, err := deps.Runs.FindPages(deps.Ctx, run.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmirror.ErrorMessage(err))
		return err
	}

	w := deps.Stdout
	fmt.Fprintf(w, "Run:      %s\n", run.ID)
	fmt.Fprintf(w, "Entry:    %s\n", run.EntryURL)
	fmt.Fprintf(w, "Scope:    %s\n", run.IncludePrefix)
	fmt.Fprintf(w, "Output:   %s\n", run.OutputDir)
	fmt.Fprintf(w, "Started:  %s\n", formatTime(run.StartedAt))
	if run.Finished() {
		fmt.Fprintf(w, "Finished: %s\n", formatTime(run.FinishedAt))
	}
	fmt.Fprintf(w, "Status:   %s\n", runStatus(run))

	if len(pages) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	for _, p := range pages {
		switch p.Status {
		case docmirror.PageSaved:
			fmt.Fprintf(w, "%4d  %-7s  %s -> %s\n", p.Position, p.Status, p.URL, p.OutputPath)
		default:
			fmt.Fprintf(w, "%4d  %-7s  %s (%s)\n", p.Position, p.Status, p.URL, p.Error)
		}
	}
	return nil
}

func runStatus(r *docmirror.Run) string {
	if !r.Finished() {
		return "unfinished"
	}
	s := fmt.Sprintf("%d pages, %d errors", r.Pages, r.Errors)
	if r.DryRun {
		s += " (dry-run)"
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.DateTime)
}
