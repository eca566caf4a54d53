package main

import (
	"fmt"
	"io"
)

// progressLine prints one marker per processed item on a single line, or
// nothing in verbose mode where every item gets its own line instead.
// Errors always go to errOut on a line of their own.
type progressLine struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
	prefix  string
	open    bool
}

func (p *progressLine) mark(marker string) {
	if p.verbose {
		return
	}
	if !p.open {
		fmt.Fprint(p.out, p.prefix)
		p.open = true
	}
	fmt.Fprint(p.out, marker)
}

func (p *progressLine) detail(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *progressLine) fail(format string, args ...any) {
	p.end()
	fmt.Fprintf(p.errOut, format+"\n", args...)
}

// end terminates a pending marker line.
func (p *progressLine) end() {
	if p.open {
		fmt.Fprintln(p.out)
		p.open = false
	}
}

func crawlPrefix(dryRun bool) string {
	if dryRun {
		return "Dry-run: Processing pages (o = would save): "
	}
	return "Processing pages (. = saved): "
}

func savedMarker(dryRun bool) string {
	if dryRun {
		return "o"
	}
	return "."
}
