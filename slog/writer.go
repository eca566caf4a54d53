package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmirror"
)

// Ensure LoggingWriter implements docmirror.PageWriter.
var _ docmirror.PageWriter = (*LoggingWriter)(nil)

// LoggingWriter wraps a PageWriter with debug logging.
type LoggingWriter struct {
	next   docmirror.PageWriter
	logger *slog.Logger
}

// NewLoggingWriter creates a new LoggingWriter.
func NewLoggingWriter(next docmirror.PageWriter, logger *slog.Logger) *LoggingWriter {
	return &LoggingWriter{next: next, logger: logger}
}

// WritePage delegates to the wrapped writer and logs the operation.
func (w *LoggingWriter) WritePage(ctx context.Context, path string, markdown string) (err error) {
	defer func(begin time.Time) {
		w.logger.Debug("write page",
			"path", path,
			"bytes", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WritePage(ctx, path, markdown)
}
