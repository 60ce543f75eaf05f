package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/docdex"
)

// Run executes the builds command.
func (c *BuildsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Fingerprints.Builds(deps.Ctx, c.Limit)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No build runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tPAGES\tBUILT\tREUSED\tSKIPPED\tFAILED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			shortID(run.ID),
			run.StartedAt.Format(time.RFC3339),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
			run.Pages, run.Built, run.Reused, run.Skipped, run.Failed)
	}
	return w.Flush()
}

// shortID abbreviates a build run UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
