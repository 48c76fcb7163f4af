package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/cfreplace/internal/ui/pretty"
	"github.com/yaklabco/cfreplace/pkg/replacements"
)

// ReportSet renders a single parsed response: a table of its edits for
// text, the set's JSON form, or normalized replacements XML.
func ReportSet(_ context.Context, opts Options, set *replacements.ReplacementSet) (err error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValidForSet() {
		return fmt.Errorf("unsupported format for a replacement set: %s", format)
	}

	bw := bufio.NewWriterSize(opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(bw)
		if !opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(set); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	case FormatXML:
		if _, err := set.WriteTo(bw); err != nil {
			return fmt.Errorf("write XML: %w", err)
		}
	default:
		colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
		formatter := pretty.NewTableFormatter(pretty.NewStyles(colorEnabled), colorEnabled, terminalWidth(opts.Writer))
		fmt.Fprint(bw, formatter.FormatEditTable(pretty.EditRows(set)))
		if opts.ShowSummary {
			fmt.Fprintln(bw, formatter.FormatSetSummary(set))
		}
	}

	return nil
}
