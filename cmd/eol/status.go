package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/eolchecker/eol"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	w := tabwriter.NewWriter(deps.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tLAST REFRESH\tAGE")

	for _, category := range eol.Categories() {
		at, err := deps.Metadata.LastRefresh(deps.Ctx, category)
		switch {
		case eol.ErrorCode(err) == eol.ENOTFOUND:
			fmt.Fprintf(w, "%s\tnever\t-\n", category)
		case err != nil:
			fmt.Fprintf(deps.Stderr, "error: %s\n", eol.ErrorMessage(err))
			return err
		default:
			age := deps.Now().Sub(at).Truncate(time.Minute)
			fmt.Fprintf(w, "%s\t%s\t%s\n", category, at.UTC().Format(time.RFC3339), age)
		}
	}

	return w.Flush()
}
