package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/eolchecker/eol"
)

// Ensure LoggingReplacer implements eol.Replacer.
var _ eol.Replacer = (*LoggingReplacer)(nil)

// LoggingReplacer wraps a Replacer with logging.
type LoggingReplacer struct {
	next   eol.Replacer
	logger *slog.Logger
}

// NewLoggingReplacer creates a new LoggingReplacer.
func NewLoggingReplacer(next eol.Replacer, logger *slog.Logger) *LoggingReplacer {
	return &LoggingReplacer{next: next, logger: logger}
}

// ReplaceSoftware delegates to the wrapped replacer and logs the operation.
func (r *LoggingReplacer) ReplaceSoftware(ctx context.Context, records []*eol.SoftwareLifecycle) (err error) {
	defer r.log(ctx, eol.CategorySoftware, len(records), time.Now(), &err)
	return r.next.ReplaceSoftware(ctx, records)
}

// ReplaceHardware delegates to the wrapped replacer and logs the operation.
func (r *LoggingReplacer) ReplaceHardware(ctx context.Context, records []*eol.HardwareLifecycle) (err error) {
	defer r.log(ctx, eol.CategoryHardware, len(records), time.Now(), &err)
	return r.next.ReplaceHardware(ctx, records)
}

func (r *LoggingReplacer) log(ctx context.Context, c eol.Category, n int, begin time.Time, err *error) {
	r.logger.Log(ctx, level(*err), "replace",
		"table", c,
		"records", n,
		"duration", time.Since(begin),
		"err", *err,
	)
}
