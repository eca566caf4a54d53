package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/fwojciec/docmirror/fs"
	"github.com/fwojciec/docmirror/goquery"
	"github.com/fwojciec/docmirror/htmltomarkdown"
	dmhttp "github.com/fwojciec/docmirror/http"
	"github.com/fwojciec/docmirror/readability"
	dmslog "github.com/fwojciec/docmirror/slog"
	"github.com/fwojciec/docmirror/sqlite"
	"github.com/fwojciec/docmirror/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor DOCMIRROR_DB is set.
	DBPath string

	// SQLite database holding run history. Opened only by commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docmirror"),
		kong.Description("Mirror a documentation site or a directory of HTML files as Markdown"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docmirror --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Verbose = cli.Verbose
	deps.Logger = newLogger(stderr, cli.Verbose)

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = m.DBPath
	}

	switch strings.Fields(kongCtx.Command())[0] {
	case "crawl":
		c := &cli.Crawl
		if !c.NoHistory {
			if err := m.openDB(dbPath, stderr); err != nil {
				return err
			}
			defer m.Close()
			deps.Runs = dmslog.NewLoggingRunService(sqlite.NewRunService(m.DB), deps.Logger)
		}

		extractor, err := newExtractor(c.Extractor)
		if err != nil {
			return err
		}

		deps.Crawler = &crawl.Crawler{
			Fetcher:   dmslog.NewLoggingFetcher(dmhttp.NewFetcher(dmhttp.WithTimeout(c.Timeout)), deps.Logger),
			Extractor: extractor,
			Links:     goquery.NewLinkExtractor(),
			Converter: htmltomarkdown.NewConverter(),
			Writer:    dmslog.NewLoggingWriter(fs.NewWriter(c.Folder), deps.Logger),
		}
		if limiter := crawl.NewDelayLimiter(c.Delay); limiter != nil {
			deps.Crawler.RateLimiter = limiter
		}

	case "local":
		deps.Local = &fs.DirectoryConverter{
			Extractor: goquery.NewBodyExtractor(),
			Converter: htmltomarkdown.NewConverter(),
		}

	case "history":
		if err := m.openDB(dbPath, stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	return kongCtx.Run(deps)
}

// openDB opens the history database, creating its directory if needed.
func (m *Main) openDB(path string, stderr io.Writer) error {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCMIRROR_DB or pass --no-history to crawl without a database\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func newExtractor(name string) (docmirror.Extractor, error) {
	switch name {
	case "", "selector":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	default:
		return nil, docmirror.Errorf(docmirror.EINVALID, "unknown extractor %q", name)
	}
}

// newLogger returns a debug-level text logger on w when verbose is set and
// a logger that discards everything otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	return filepath.Join(xdg.DataHome, "docmirror", "history.db")
}
