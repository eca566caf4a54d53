package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/docmirror"
	"golang.org/x/time/rate"
)

var _ docmirror.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter keeps one token bucket of burst 1 per host. Buckets start
// empty: the crawler waits on it after every fetch, including the first,
// so consecutive fetches from one host are at least one interval apart.
type DomainLimiter struct {
	mu       sync.Mutex
	hosts    map[string]*rate.Limiter
	interval time.Duration
}

// NewDelayLimiter returns a DomainLimiter spacing requests to each host by
// delay, or nil when delay is not positive. Waiting on a nil limiter never
// blocks.
func NewDelayLimiter(delay time.Duration) *DomainLimiter {
	if delay <= 0 {
		return nil
	}
	return &DomainLimiter{
		hosts:    make(map[string]*rate.Limiter),
		interval: delay,
	}
}

// Wait blocks until host may be contacted again or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	if d == nil {
		return ctx.Err()
	}
	return d.limiter(host).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(rate.Every(d.interval), 1)
		l.Allow()
		d.hosts[host] = l
	}
	return l
}
