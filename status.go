package eol

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Status is the support state derived from a stored EOL value.
type Status string

// Status constants.
const (
	StatusUnknown   Status = "unknown"
	StatusSupported Status = "supported"
	StatusEnded     Status = "ended"
)

// StatusOf derives the support state of an EOL value at now.
// Boolean flags follow endoflife.date: "true" means support has ended.
// Free text that is not a recognizable date is reported as unknown.
func StatusOf(value string, now time.Time) Status {
	value = strings.TrimSpace(value)
	if IsUnknown(value) {
		return StatusUnknown
	}

	switch strings.ToLower(value) {
	case "true":
		return StatusEnded
	case "false":
		return StatusSupported
	}

	t, err := parseDate(value)
	if err != nil {
		return StatusUnknown
	}
	if t.After(now) {
		return StatusSupported
	}
	return StatusEnded
}

// parseDate accepts day-first dotted dates used by German vendor pages
// before handing everything else to dateparse.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("02.01.2006", value); err == nil {
		return t, nil
	}
	return dateparse.ParseIn(value, time.UTC)
}
