// Package reporter renders the outcome of applying formatter responses.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/cfreplace/pkg/runner"
)

// Reporter formats and writes batch results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files reported as changed (written or
	// pending) and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = DefaultOptions().ErrorWriter
	}
	if opts.Encoding == "" {
		opts.Encoding = DefaultOptions().Encoding
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatLSP:
		return NewLSPReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// changedCount counts outcomes that rewrote or would rewrite a file.
func changedCount(result *runner.Result) int {
	if result == nil {
		return 0
	}
	return result.Stats.FilesWritten + result.Stats.FilesPending
}
