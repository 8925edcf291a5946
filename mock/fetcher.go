package mock

import (
	"context"

	"github.com/eolchecker/eol"
)

var _ eol.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of eol.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

var _ eol.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of eol.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
