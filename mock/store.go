package mock

import (
	"context"
	"time"

	"github.com/eolchecker/eol"
)

var _ eol.Replacer = (*Replacer)(nil)

// Replacer is a mock implementation of eol.Replacer.
type Replacer struct {
	ReplaceSoftwareFn func(ctx context.Context, records []*eol.SoftwareLifecycle) error
	ReplaceHardwareFn func(ctx context.Context, records []*eol.HardwareLifecycle) error
}

func (r *Replacer) ReplaceSoftware(ctx context.Context, records []*eol.SoftwareLifecycle) error {
	return r.ReplaceSoftwareFn(ctx, records)
}

func (r *Replacer) ReplaceHardware(ctx context.Context, records []*eol.HardwareLifecycle) error {
	return r.ReplaceHardwareFn(ctx, records)
}

var _ eol.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of eol.MetadataService.
type MetadataService struct {
	LastRefreshFn    func(ctx context.Context, c eol.Category) (time.Time, error)
	SetLastRefreshFn func(ctx context.Context, c eol.Category, t time.Time) error
	ChecksumFn       func(ctx context.Context, c eol.Category) (string, error)
	SetChecksumFn    func(ctx context.Context, c eol.Category, sum string) error
}

func (s *MetadataService) LastRefresh(ctx context.Context, c eol.Category) (time.Time, error) {
	return s.LastRefreshFn(ctx, c)
}

func (s *MetadataService) SetLastRefresh(ctx context.Context, c eol.Category, t time.Time) error {
	return s.SetLastRefreshFn(ctx, c, t)
}

func (s *MetadataService) Checksum(ctx context.Context, c eol.Category) (string, error) {
	return s.ChecksumFn(ctx, c)
}

func (s *MetadataService) SetChecksum(ctx context.Context, c eol.Category, sum string) error {
	return s.SetChecksumFn(ctx, c, sum)
}

var _ eol.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of eol.SearchService.
type SearchService struct {
	SearchFn func(ctx context.Context, query string, scope eol.Scope) (*eol.SearchResult, error)
}

func (s *SearchService) Search(ctx context.Context, query string, scope eol.Scope) (*eol.SearchResult, error) {
	return s.SearchFn(ctx, query, scope)
}
