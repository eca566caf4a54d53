package mock

import (
	"context"

	"github.com/fwojciec/docmirror"
)

var _ docmirror.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docmirror.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*docmirror.FetchResult, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*docmirror.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

var _ docmirror.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docmirror.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
