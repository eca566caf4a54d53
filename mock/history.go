package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.RunService = (*RunService)(nil)

// RunService is a mock implementation of docmirror.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *docmirror.Run) error
	FinishRunFn   func(ctx context.Context, id string, pages, errors int) error
	FindRunByIDFn func(ctx context.Context, id string) (*docmirror.Run, error)
	FindRunsFn    func(ctx context.Context, filter docmirror.RunFilter) ([]*docmirror.Run, error)
	RecordPageFn  func(ctx context.Context, page *docmirror.PageRecord) error
	FindPagesFn   func(ctx context.Context, runID string) ([]*docmirror.PageRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *docmirror.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, pages, errors int) error {
	return s.FinishRunFn(ctx, id, pages, errors)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*docmirror.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter docmirror.RunFilter) ([]*docmirror.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) RecordPage(ctx context.Context, page *docmirror.PageRecord) error {
	return s.RecordPageFn(ctx, page)
}

func (s *RunService) FindPages(ctx context.Context, runID string) ([]*docmirror.PageRecord, error) {
	return s.FindPagesFn(ctx, runID)
}
