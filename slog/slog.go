// Package slog provides log/slog decorators for eol services.
package slog

import "log/slog"

// level logs failures as warnings and everything else at debug level.
func level(err error) slog.Level {
	if err != nil {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}
