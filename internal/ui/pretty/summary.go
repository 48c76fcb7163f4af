package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/cfreplace/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files formatted, 1 unchanged, 1 failed (7 edits, 5 lines)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.JobsTotal == 0 {
		return s.Dim.Render("No formatter responses found") + "\n"
	}

	changed := stats.FilesWritten + stats.FilesPending
	if changed == 0 && stats.FilesErrored == 0 {
		return s.Success.Render("All files already formatted") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.FilesProcessed, "file", "files"))) + "\n"
	}

	var parts []string
	if stats.FilesWritten > 0 {
		parts = append(parts, s.Written.Render(plural(stats.FilesWritten, "file", "files")+" formatted"))
	}
	if stats.FilesPending > 0 {
		parts = append(parts, s.Pending.Render(plural(stats.FilesPending, "file", "files")+" would change"))
	}
	if stats.FilesUnchanged > 0 {
		parts = append(parts, fmt.Sprintf("%d unchanged", stats.FilesUnchanged))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	line := strings.Join(parts, ", ")
	if changed > 0 {
		line += s.Dim.Render(fmt.Sprintf(" (%s, %s)",
			plural(stats.EditsApplied, "edit", "edits"),
			plural(stats.LinesChanged, "line", "lines"),
		))
	}
	return line + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int, style func(...string) string) {
		fmt.Fprintf(&builder, "  %-19s%s\n", label+":", style(strconv.Itoa(value)))
	}

	row("Files checked", stats.FilesProcessed, s.SummaryValue.Render)
	if stats.FilesWritten > 0 {
		row("Files formatted", stats.FilesWritten, s.Written.Render)
	}
	if stats.FilesPending > 0 {
		row("Files to change", stats.FilesPending, s.Pending.Render)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped, s.Skipped.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Failure.Render)
	}

	builder.WriteString("\n")
	row("Replacements", stats.EditsTotal, s.SummaryValue.Render)
	row("Edits applied", stats.EditsApplied, s.SummaryValue.Render)
	row("Lines changed", stats.LinesChanged, s.SummaryValue.Render)
	if stats.IncompleteFormats > 0 {
		row("Incomplete", stats.IncompleteFormats, s.Warning.Render)
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Some responses could not be applied"))
	case stats.FilesPending > 0:
		builder.WriteString(s.Pending.Render("Files need formatting"))
	default:
		builder.WriteString(s.Success.Render("All files formatted"))
	}
	builder.WriteString("\n")

	return builder.String()
}
