package main

import (
	"errors"
	"fmt"

	"github.com/eolchecker/eol"
	"github.com/eolchecker/eol/refresh"
)

// Run executes the update command.
func (c *UpdateCmd) Run(deps *Dependencies) error {
	scope := eol.ScopeOf(c.Software, c.Hardware)

	var errs []error
	for _, category := range eol.Categories() {
		if !scope.Has(category) {
			continue
		}
		if _, err := refreshCategory(deps, category); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", category, eol.ErrorMessage(err))
			errs = append(errs, fmt.Errorf("%s: %w", category, err))
		}
	}
	return errors.Join(errs...)
}

// refreshCategory rebuilds one table and reports progress on the
// command's writers.
func refreshCategory(deps *Dependencies, category eol.Category) (*refresh.Result, error) {
	progress := func(event refresh.ProgressEvent) {
		switch event.Type {
		case refresh.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Refreshing %s from %d sources\n", category, event.Total)
		case refresh.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	var (
		result *refresh.Result
		err    error
	)
	switch category {
	case eol.CategorySoftware:
		result, err = deps.Refresher.RefreshSoftware(deps.Ctx, progress)
	case eol.CategoryHardware:
		result, err = deps.Refresher.RefreshHardware(deps.Ctx, progress)
	default:
		return nil, eol.Errorf(eol.EINVALID, "unknown category %q", category)
	}
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d %s records", result.Records, category)
	if result.Failed > 0 {
		fmt.Fprintf(deps.Stdout, " (%d of %d sources failed)", result.Failed, result.Sources)
	}
	if !result.Changed {
		fmt.Fprint(deps.Stdout, ", unchanged since last refresh")
	}
	fmt.Fprintln(deps.Stdout)

	return result, nil
}
