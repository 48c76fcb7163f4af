package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/cfreplace/internal/ui/pretty"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

// TextReporter formats results as styled terminal output, one line per
// file that was changed, skipped, or failed.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, outcome := range result.Outcomes {
		if outcome.Status() == runner.StatusUnchanged && !r.opts.Verbose {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatOutcome(r.opts.displayPath(outcome.Job.Source), outcome))
	}

	if r.opts.ShowSummary {
		if len(result.Outcomes) > 0 {
			fmt.Fprintln(r.bw)
		}
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return changedCount(result), nil
}
