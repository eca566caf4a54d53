package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/fwojciec/docmirror/fs"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Verbose bool

	// Runs is nil when history is disabled.
	Runs    docmirror.RunService
	Crawler *crawl.Crawler
	Local   *fs.DirectoryConverter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" env:"DOCMIRROR_VERBOSE" help:"Print one line per page instead of progress dots, and debug logs on stderr"`
	DB      string `name:"db" env:"DOCMIRROR_DB" help:"History database path (default: $XDG_DATA_HOME/docmirror/history.db)"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a documentation site and save its pages as Markdown"`
	Local   LocalCmd   `cmd:"" help:"Convert a directory of HTML files to Markdown"`
	History HistoryCmd `cmd:"" help:"Show recorded crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Entry URL; only pages under its directory are crawled"`
	Folder      string        `short:"f" default:"docmirror_md" env:"DOCMIRROR_FOLDER" help:"Output directory"`
	DryRun      bool          `env:"DOCMIRROR_DRY_RUN" help:"Crawl and convert without writing files"`
	Timeout     time.Duration `default:"15s" env:"DOCMIRROR_TIMEOUT" help:"HTTP request timeout"`
	Delay       time.Duration `default:"100ms" env:"DOCMIRROR_DELAY" help:"Minimum spacing between requests to a host (0 disables)"`
	Concurrency int           `short:"c" default:"1" env:"DOCMIRROR_CONCURRENCY" help:"Pages processed at once"`
	MaxPages    int           `default:"0" env:"DOCMIRROR_MAX_PAGES" help:"Stop after this many pages (0 = no limit)"`
	Extractor   string        `default:"selector" enum:"selector,readability,trafilatura" env:"DOCMIRROR_EXTRACTOR" help:"Content extractor: selector, readability or trafilatura"`
	NoHistory   bool          `env:"DOCMIRROR_NO_HISTORY" help:"Do not record the run in the history database"`
}

// LocalCmd is the "local" subcommand.
type LocalCmd struct {
	Dir          string `arg:"" type:"existingdir" help:"Directory of HTML files; output goes to the sibling DIR_md"`
	SkipExisting bool   `help:"Skip files whose Markdown output already exists"`
	DryRun       bool   `help:"List what would be converted without writing files"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	ID    string `arg:"" optional:"" help:"Run ID or unique prefix; lists runs when omitted"`
	URL   string `help:"Only list runs of this entry URL"`
	Limit int    `short:"n" default:"20" help:"Number of runs to list"`
}
