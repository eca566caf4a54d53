package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
)

// Ensure LoggingRunService implements docmirror.RunService.
var _ docmirror.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with debug logging.
// Read operations are passed through without logging.
type LoggingRunService struct {
	next   docmirror.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next docmirror.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

func (s *LoggingRunService) CreateRun(ctx context.Context, run *docmirror.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create run",
			"id", run.ID,
			"entry", run.EntryURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

func (s *LoggingRunService) FinishRun(ctx context.Context, id string, pages, errors int) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("finish run",
			"id", id,
			"pages", pages,
			"errors", errors,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FinishRun(ctx, id, pages, errors)
}

func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (*docmirror.Run, error) {
	return s.next.FindRunByID(ctx, id)
}

func (s *LoggingRunService) FindRuns(ctx context.Context, filter docmirror.RunFilter) ([]*docmirror.Run, error) {
	return s.next.FindRuns(ctx, filter)
}

func (s *LoggingRunService) RecordPage(ctx context.Context, page *docmirror.PageRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("record page",
			"run", page.RunID,
			"position", page.Position,
			"url", page.URL,
			"status", page.Status,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.RecordPage(ctx, page)
}

func (s *LoggingRunService) FindPages(ctx context.Context, runID string) ([]*docmirror.PageRecord, error) {
	return s.next.FindPages(ctx, runID)
}
