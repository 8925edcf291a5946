package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/eolchecker/eol"
	"github.com/fatih/color"
)

var statusColors = map[eol.Status]*color.Color{
	eol.StatusSupported: color.New(color.FgGreen),
	eol.StatusEnded:     color.New(color.FgRed),
	eol.StatusUnknown:   color.New(color.FgYellow),
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	scope := eol.ScopeOf(c.Software, c.Hardware)

	if !c.NoRefresh {
		for _, category := range eol.Categories() {
			if !scope.Has(category) {
				continue
			}
			stale, err := isStale(deps, category)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", eol.ErrorMessage(err))
				return err
			}
			if !stale {
				continue
			}
			if _, err := refreshCategory(deps, category); err != nil {
				fmt.Fprintf(deps.Stderr, "warning: could not refresh %s, using cached data: %s\n",
					category, eol.ErrorMessage(err))
			}
		}
	}

	result, err := deps.Search.Search(deps.Ctx, c.Query, scope)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", eol.ErrorMessage(err))
		return err
	}

	now := deps.Now()
	first := true
	for _, category := range eol.Categories() {
		if !result.Searched(category) {
			continue
		}
		if !first {
			fmt.Fprintln(deps.Stdout)
		}
		first = false

		if result.Len(category) == 0 {
			fmt.Fprintf(deps.Stdout, "No %s results\n", category)
			continue
		}

		var err error
		switch category {
		case eol.CategorySoftware:
			err = printSoftware(deps.Stdout, result.Software, now)
		case eol.CategoryHardware:
			err = printHardware(deps.Stdout, result.Hardware, now)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// isStale reports whether the table was never refreshed or is older than
// MaxAge.
func isStale(deps *Dependencies, category eol.Category) (bool, error) {
	at, err := deps.Metadata.LastRefresh(deps.Ctx, category)
	if eol.ErrorCode(err) == eol.ENOTFOUND {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return deps.Now().Sub(at) > deps.MaxAge, nil
}

func printSoftware(out io.Writer, records []*eol.SoftwareLifecycle, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCYCLE\tEOL\tLATEST\tSTATUS")
	for _, s := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Cycle, s.EOL, s.Latest, status(s.EOL, now))
	}
	return w.Flush()
}

func printHardware(out io.Writer, records []*eol.HardwareLifecycle, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MANUFACTURER\tMODEL\tEOL\tSTATUS")
	for _, h := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", h.Manufacturer, h.Model, h.EOL, status(h.EOL, now))
	}
	return w.Flush()
}

// status is the last column so color codes do not skew alignment.
func status(value string, now time.Time) string {
	s := eol.StatusOf(value, now)
	return statusColors[s].Sprint(string(s))
}
