package reporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yaklabco/cfreplace/internal/ui/pretty"
	"github.com/yaklabco/cfreplace/pkg/runner"
	"github.com/yaklabco/cfreplace/pkg/textedit"
)

// DiffReporter formats results as unified diffs in GitHub style.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, outcome := range result.Outcomes {
		if outcome.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %s\n",
				r.styles.FilePath.Render(r.opts.displayPath(outcome.Job.Source)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", outcome.Error)),
			)
			continue
		}

		diff := diffFor(outcome.Result)
		if !diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += diff.Additions
		totalDeletions += diff.Deletions
		r.writeDiff(r.opts.displayPath(diff.Path), diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// diffFor returns the result's diff, computing it when the pipeline did not
// (files written outside dry-run mode).
func diffFor(jr *runner.JobResult) *textedit.Diff {
	if jr == nil || !jr.Changed {
		return nil
	}
	if jr.Diff != nil {
		return jr.Diff
	}
	return textedit.GenerateDiff(jr.Path, jr.Original, jr.Edits)
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(displayPath string, diff *textedit.Diff) {
	displayPath = strings.TrimPrefix(displayPath, "/")

	header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+displayPath))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+displayPath))

	// Skip the --- and +++ lines String() carries with the undisplayed path.
	lines := strings.Split(strings.TrimSuffix(diff.String(), "\n"), "\n")
	for _, line := range lines[2:] {
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out)
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
