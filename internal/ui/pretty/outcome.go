package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/cfreplace/pkg/runner"
)

// FormatStatus returns a styled status label.
func (s *Styles) FormatStatus(status runner.Status) string {
	switch status {
	case runner.StatusWritten:
		return s.Written.Render("formatted")
	case runner.StatusPending:
		return s.Pending.Render("would change")
	case runner.StatusSkipped:
		return s.Skipped.Render("skipped")
	case runner.StatusFailed:
		return s.Error.Render("error")
	default:
		return s.Unchanged.Render("unchanged")
	}
}

// FormatOutcome formats one processed job for terminal output:
//
//	src/main.cpp  formatted  (4 edits, 2 lines)
func (s *Styles) FormatOutcome(path string, outcome runner.Outcome) string {
	var builder strings.Builder

	status := outcome.Status()
	fmt.Fprintf(&builder, "  %s  %s", s.FilePath.Render(path), s.FormatStatus(status))

	switch status {
	case runner.StatusFailed:
		builder.WriteString("  " + s.Message.Render(outcome.Error.Error()))
	case runner.StatusSkipped:
		builder.WriteString("  " + s.Dim.Render(outcome.Result.SkipReason))
	case runner.StatusWritten, runner.StatusPending:
		builder.WriteString("  " + s.Dim.Render(changeCounts(outcome.Result)))
		if outcome.Result.BackupCreated {
			builder.WriteString(s.Dim.Render(", backup created"))
		}
	}
	builder.WriteString("\n")

	if outcome.Result.Incomplete() {
		builder.WriteString("    " + s.Warning.Render("formatter reported an incomplete format") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, editCount int) string {
	header := s.FilePath.Render(path)
	if editCount > 0 {
		header += s.Dim.Render(" (" + plural(editCount, "edit", "edits") + ")")
	}
	return header
}

func changeCounts(r *runner.JobResult) string {
	return fmt.Sprintf("(%s, %s)",
		plural(r.EditsApplied, "edit", "edits"),
		plural(r.LinesChanged, "line", "lines"),
	)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
