package main

import (
	"fmt"

	"github.com/fwojciec/recipex"
	"github.com/fwojciec/recipex/batch"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	report, err := deps.Harness.Validate(deps.Ctx, c.Site, func(e batch.ProgressEvent) {
		switch e.Type {
		case batch.ProgressCompleted:
			deps.Logger.Debug("validated", "file", e.File, "completed", e.Completed, "total", e.Total)
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", e.Completed, e.Total, e.File, recipex.ErrorMessage(e.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipex.ErrorMessage(err))
		return err
	}

	fmt.Fprint(deps.Stdout, recipex.FormatReport(report))

	if c.WriteReport && report.Error == "" {
		if err := deps.Store.WriteReport(deps.Ctx, report); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipex.ErrorMessage(err))
			return err
		}
	}
	return nil
}
