package main

import (
	"fmt"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/fs"
)

// nonHTMLListLimit caps the files listed per extension in verbose mode.
const nonHTMLListLimit = 10

// Run executes the local command.
func (c *LocalCmd) Run(deps *Dependencies) error {
	if deps.Local == nil {
		return docmirror.Errorf(docmirror.EINTERNAL, "converter not configured")
	}
	deps.Local.SkipExisting = c.SkipExisting
	deps.Local.DryRun = c.DryRun

	fmt.Fprintf(deps.Stdout, "Converting directory: %s\n", c.Dir)
	if deps.Verbose {
		fmt.Fprintf(deps.Stdout, "Output directory: %s\n", fs.OutputDir(c.Dir))
	}

	line := &progressLine{
		out:     deps.Stdout,
		errOut:  deps.Stderr,
		verbose: deps.Verbose,
		prefix:  localPrefix(c.DryRun),
	}
	progress := func(f fs.LocalFile) {
		switch f.Status {
		case docmirror.PageSaved:
			if f.DryRun {
				line.detail("Dry-run: Would convert: %s -> %s", f.Source, f.Output)
			} else {
				line.detail("Converted: %s -> %s", f.Source, f.Output)
			}
			line.mark(savedMarker(f.DryRun))
		case docmirror.PageSkipped:
			line.detail("Skipped: %s (%s)", f.Source, f.Reason)
			line.mark("s")
		case docmirror.PageFailed:
			line.fail("Error converting %s: %s", f.Source, docmirror.ErrorMessage(f.Err))
		}
	}

	result, err := deps.Local.ConvertDirectory(deps.Ctx, c.Dir, progress)
	line.end()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docmirror.ErrorMessage(err))
		return err
	}

	c.printSummary(deps, result)
	return nil
}

func (c *LocalCmd) printSummary(deps *Dependencies, r *fs.LocalResult) {
	w := deps.Stdout
	fmt.Fprintln(w, "\nConversion completed:")
	fmt.Fprintf(w, "Total files scanned: %d\n", r.Scanned)
	fmt.Fprintf(w, "HTML files found: %d\n", r.HTML)
	if c.DryRun {
		fmt.Fprintf(w, "HTML files that would be converted: %d\n", r.Converted)
	} else {
		fmt.Fprintf(w, "Files converted: %d\n", r.Converted)
	}
	if c.SkipExisting {
		fmt.Fprintf(w, "Files skipped (already exist): %d\n", r.Skipped)
	}
	fmt.Fprintf(w, "Files with errors: %d\n", r.Errors)
	fmt.Fprintf(w, "Non-HTML files skipped: %d\n", len(r.NonHTML))

	if !deps.Verbose || len(r.NonHTML) == 0 {
		return
	}
	groups, exts := r.NonHTMLByExtension()
	fmt.Fprintf(w, "\nNon-HTML files (first %d of each type):\n", nonHTMLListLimit)
	for _, ext := range exts {
		files := groups[ext]
		fmt.Fprintf(w, "%s: %d files\n", ext, len(files))
		for i, f := range files {
			if i == nonHTMLListLimit {
				fmt.Fprintf(w, "  ... and %d more\n", len(files)-nonHTMLListLimit)
				break
			}
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}
}

func localPrefix(dryRun bool) string {
	if dryRun {
		return "Dry-run: Processing files (o = would convert, s = skipped): "
	}
	return "Processing files (. = converted, s = skipped): "
}
