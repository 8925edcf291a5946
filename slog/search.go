package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/eolchecker/eol"
)

// Ensure LoggingSearchService implements eol.SearchService.
var _ eol.SearchService = (*LoggingSearchService)(nil)

// LoggingSearchService wraps a SearchService with logging.
type LoggingSearchService struct {
	next   eol.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next eol.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

// Search delegates to the wrapped service and logs the operation.
func (s *LoggingSearchService) Search(ctx context.Context, query string, scope eol.Scope) (result *eol.SearchResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"query", query, "duration", time.Since(begin), "err", err}
		if result != nil {
			attrs = append(attrs,
				"software", result.Len(eol.CategorySoftware),
				"hardware", result.Len(eol.CategoryHardware),
			)
		}
		s.logger.Log(ctx, level(err), "search", attrs...)
	}(time.Now())
	return s.next.Search(ctx, query, scope)
}
