package recipex_test

import (
	"testing"

	"github.com/fwojciec/recipex"
	"github.com/stretchr/testify/assert"
)

func TestFormatReport(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for nil report", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, recipex.FormatReport(nil))
	})

	t.Run("summarizes counts and lists files that did not pass", func(t *testing.T) {
		t.Parallel()

		rep := &recipex.ValidationReport{Module: "misya_info"}
		rep.AddResult(&recipex.FileValidationResult{File: "a.html", Status: recipex.StatusPassed, IsValid: true, IsRecipe: true})
		rep.AddResult(&recipex.FileValidationResult{
			File:          "b.html",
			Status:        recipex.StatusFailed,
			MissingFields: []string{"ingredients"},
			Reason:        recipex.ReasonMissingRequired,
		})

		got := recipex.FormatReport(rep)

		assert.Equal(t, "misya_info: 2 files, 1 passed, 1 failed, 0 system errors, 0 skipped (50.00%)\n"+
			"  failed b.html: missing_required_fields; missing: ingredients\n", got)
	})

	t.Run("prints the error of a report that could not run", func(t *testing.T) {
		t.Parallel()

		rep := recipex.NewErrorReport("misya_info", recipex.ReasonDirEmpty)

		assert.Equal(t, "misya_info: test_data_directory_empty\n", recipex.FormatReport(rep))
	})
}
