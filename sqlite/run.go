package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/docmirror"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docmirror.RunService = (*RunService)(nil)

// RunService implements docmirror.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

const runColumns = "id, entry_url, include_prefix, output_dir, dry_run, pages, errors, started_at, finished_at"

// CreateRun inserts a new run and assigns its ID and StartedAt.
func (s *RunService) CreateRun(ctx context.Context, run *docmirror.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.EntryURL, run.IncludePrefix, run.OutputDir, run.DryRun,
		run.Pages, run.Errors, formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

// FinishRun stores the final counters of a run and stamps FinishedAt.
func (s *RunService) FinishRun(ctx context.Context, id string, pages, errors int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET pages = ?, errors = ?, finished_at = ?
		WHERE id = ?
	`, pages, errors, formatTime(time.Now()), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return docmirror.Errorf(docmirror.ENOTFOUND, "run not found")
	}

	return nil
}

// FindRunByID retrieves a run by its full ID or a unique ID prefix.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*docmirror.Run, error) {
	if id == "" {
		return nil, docmirror.Errorf(docmirror.EINVALID, "run ID required")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE substr(id, 1, ?) = ?
		ORDER BY id = ? DESC
		LIMIT 2
	`, len(id), id, id)
	if err != nil {
		return nil, err
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}

	switch {
	case len(runs) == 0:
		return nil, docmirror.Errorf(docmirror.ENOTFOUND, "run not found")
	case runs[0].ID == id || len(runs) == 1:
		return runs[0], nil
	default:
		return nil, docmirror.Errorf(docmirror.EINVALID, "run ID prefix %q is ambiguous", id)
	}
}

// FindRuns retrieves runs matching the filter, most recent first.
func (s *RunService) FindRuns(ctx context.Context, filter docmirror.RunFilter) ([]*docmirror.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.EntryURL != nil {
		query.WriteString(" AND entry_url = ?")
		args = append(args, *filter.EntryURL)
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]*docmirror.Run, error) {
	defer rows.Close()

	var runs []*docmirror.Run
	for rows.Next() {
		var run docmirror.Run
		var startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &run.EntryURL, &run.IncludePrefix, &run.OutputDir, &run.DryRun,
			&run.Pages, &run.Errors, &startedAt, &finishedAt); err != nil {
			return nil, err
		}

		var err error
		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// RecordPage appends a page record to a run. FetchedAt defaults to now.
func (s *RunService) RecordPage(ctx context.Context, page *docmirror.PageRecord) error {
	if err := page.Validate(); err != nil {
		return err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM runs WHERE id = ?)", page.RunID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return docmirror.Errorf(docmirror.ENOTFOUND, "run not found")
	}

	page.ID = uuid.New().String()
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, position, url, final_url, output_path, title, status, error, bytes, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.RunID, page.Position, page.URL, page.FinalURL, page.OutputPath, page.Title,
		string(page.Status), page.Error, page.Bytes, page.ContentHash, formatTime(page.FetchedAt))

	return err
}

// FindPages returns the page records of a run in processing order.
func (s *RunService) FindPages(ctx context.Context, runID string) ([]*docmirror.PageRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, run_id, position, url, final_url, output_path, title, status, error, bytes, content_hash, fetched_at
		FROM pages
		WHERE run_id = ?
		ORDER BY position ASC, rowid ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*docmirror.PageRecord
	for rows.Next() {
		var page docmirror.PageRecord
		var status, fetchedAt string

		if err := rows.Scan(&page.ID, &page.RunID, &page.Position, &page.URL, &page.FinalURL,
			&page.OutputPath, &page.Title, &status, &page.Error, &page.Bytes, &page.ContentHash,
			&fetchedAt); err != nil {
			return nil, err
		}
		page.Status = docmirror.PageStatus(status)

		var parseErr error
		page.FetchedAt, parseErr = parseTime(fetchedAt, "fetched_at")
		if parseErr != nil {
			return nil, parseErr
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}
