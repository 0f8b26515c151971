package main

import (
	"fmt"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/batch"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Runner.Run(deps.Ctx, c.Site, func(e batch.ProgressEvent) {
		if e.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", e.Completed, e.Total, e.File, recipex.ErrorMessage(e.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: %d pages, %d extracted, %d failed\n",
		result.Site, len(result.Files), result.Succeeded, result.Failed)
	for _, f := range result.Files {
		if f.Err != nil {
			continue
		}
		if missing := f.Record.MissingFields(recipex.CriticalFields); len(missing) > 0 {
			fmt.Fprintf(deps.Stdout, "  %s: missing %v\n", f.Fixture.Name, missing)
		}
	}
	return nil
}
