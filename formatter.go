package recipex

import (
	"fmt"
	"strings"
)

// FormatReport renders a validation report as plain text: a summary line
// followed by one line per file that did not pass.
func FormatReport(rep *ValidationReport) string {
	if rep == nil {
		return ""
	}
	var b strings.Builder
	if rep.Error != "" {
		fmt.Fprintf(&b, "%s: %s\n", rep.Module, rep.Error)
		return b.String()
	}

	fmt.Fprintf(&b, "%s: %d files, %d passed, %d failed, %d system errors, %d skipped (%.2f%%)\n",
		rep.Module, rep.TotalFiles, rep.Passed, rep.Failed, rep.SystemErrors, rep.Skipped, rep.SuccessRate)

	for _, r := range rep.Details {
		if r.Status == StatusPassed {
			continue
		}
		line := "  " + string(r.Status) + " " + r.File
		var notes []string
		if r.Reason != "" {
			notes = append(notes, r.Reason)
		}
		if len(r.MissingFields) > 0 {
			notes = append(notes, "missing: "+strings.Join(r.MissingFields, ", "))
		}
		if len(r.IncorrectFields) > 0 {
			notes = append(notes, "incorrect: "+strings.Join(r.IncorrectFields, ", "))
		}
		if r.Feedback != "" {
			notes = append(notes, r.Feedback)
		}
		if len(notes) > 0 {
			line += ": " + strings.Join(notes, "; ")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
