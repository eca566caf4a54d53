package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.PageWriter = (*PageWriter)(nil)

// PageWriter is a mock implementation of docmirror.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, path string, markdown string) error
}

func (w *PageWriter) WritePage(ctx context.Context, path string, markdown string) error {
	return w.WritePageFn(ctx, path, markdown)
}
