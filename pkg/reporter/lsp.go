package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/yaklabco/cfreplace/pkg/runner"
	"github.com/yaklabco/cfreplace/pkg/textedit"
)

// LSPFileEdit holds the text edits for one document.
type LSPFileEdit struct {
	URI   string              `json:"uri"`
	Edits []protocol.TextEdit `json:"edits"`
}

// LSPReporter writes a JSON array of LSPFileEdit, one per changed file, with
// positions in UTF-16 code units as the language server protocol requires.
type LSPReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewLSPReporter creates a new LSP reporter.
func NewLSPReporter(opts Options) *LSPReporter {
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = os.Stderr
	}
	return &LSPReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *LSPReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	files := make([]LSPFileEdit, 0)

	if result != nil {
		for _, outcome := range result.Outcomes {
			if outcome.Error != nil {
				fmt.Fprintf(r.opts.ErrorWriter, "%s: %v\n", outcome.Job.Source, outcome.Error)
				continue
			}
			if !outcome.Result.Changed {
				continue
			}

			edits, convErr := TextEdits(outcome.Result.Original, outcome.Result.Edits)
			if convErr != nil {
				fmt.Fprintf(r.opts.ErrorWriter, "%s: %v\n", outcome.Job.Source, convErr)
				continue
			}
			files = append(files, LSPFileEdit{
				URI:   string(uri.File(outcome.Job.Source)),
				Edits: edits,
			})
		}
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(files); err != nil {
		return 0, fmt.Errorf("encode LSP edits: %w", err)
	}

	return len(files), nil
}

// TextEdits converts prepared byte-offset edits over content into LSP text
// edits. Edits that leave their span unchanged are dropped.
func TextEdits(content []byte, edits []textedit.TextEdit) ([]protocol.TextEdit, error) {
	index := textedit.NewLineIndex(content, textedit.EncodingUTF16)

	out := make([]protocol.TextEdit, 0, len(edits))
	for i, e := range edits {
		if e.NewText == string(content[e.StartOffset:e.EndOffset]) {
			continue
		}

		start, err := position(index, e.StartOffset)
		if err != nil {
			return nil, fmt.Errorf("edit %d start: %w", i, err)
		}
		end, err := position(index, e.EndOffset)
		if err != nil {
			return nil, fmt.Errorf("edit %d end: %w", i, err)
		}

		out = append(out, protocol.TextEdit{
			Range:   protocol.Range{Start: start, End: end},
			NewText: e.NewText,
		})
	}
	return out, nil
}

func position(index *textedit.LineIndex, offset int) (protocol.Position, error) {
	line, character, err := index.Position(offset)
	if err != nil {
		return protocol.Position{}, err
	}
	return protocol.Position{Line: uint32(line), Character: uint32(character)}, nil
}
