package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/cfreplace/pkg/runner"
	"github.com/yaklabco/cfreplace/pkg/textedit"
)

// jsonSchemaVersion is bumped on incompatible output changes.
const jsonSchemaVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version  string           `json:"version"`
	Encoding string           `json:"encoding"`
	Files    []JSONFileResult `json:"files"`
	Summary  JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path         string     `json:"path"`
	Response     string     `json:"response,omitempty"`
	Status       string     `json:"status"`
	Language     string     `json:"language,omitempty"`
	Incomplete   bool       `json:"incomplete,omitempty"`
	SkipReason   string     `json:"skipReason,omitempty"`
	Error        string     `json:"error,omitempty"`
	EditsApplied int        `json:"editsApplied"`
	LinesChanged int        `json:"linesChanged"`
	Edits        []JSONEdit `json:"edits,omitempty"`
}

// JSONEdit is one replacement with offsets in the report's encoding.
type JSONEdit struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Value  string `json:"value"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked      int `json:"filesChecked"`
	FilesWritten      int `json:"filesWritten"`
	FilesPending      int `json:"filesPending"`
	FilesUnchanged    int `json:"filesUnchanged"`
	FilesSkipped      int `json:"filesSkipped"`
	FilesErrored      int `json:"filesErrored"`
	IncompleteFormats int `json:"incompleteFormats"`
	EditsTotal        int `json:"editsTotal"`
	EditsApplied      int `json:"editsApplied"`
	LinesChanged      int `json:"linesChanged"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	if opts.Encoding == "" {
		opts.Encoding = textedit.EncodingUTF8
	}
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return changedCount(result), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version:  jsonSchemaVersion,
		Encoding: string(r.opts.Encoding),
		Files:    make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		output.Files = append(output.Files, r.buildFile(outcome))
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:      stats.FilesProcessed,
		FilesWritten:      stats.FilesWritten,
		FilesPending:      stats.FilesPending,
		FilesUnchanged:    stats.FilesUnchanged,
		FilesSkipped:      stats.FilesSkipped,
		FilesErrored:      stats.FilesErrored,
		IncompleteFormats: stats.IncompleteFormats,
		EditsTotal:        stats.EditsTotal,
		EditsApplied:      stats.EditsApplied,
		LinesChanged:      stats.LinesChanged,
	}

	return output
}

func (r *JSONReporter) buildFile(outcome runner.Outcome) JSONFileResult {
	file := JSONFileResult{
		Path:     r.opts.displayPath(outcome.Job.Source),
		Response: r.opts.displayPath(outcome.Job.Response),
		Status:   string(outcome.Status()),
	}

	if outcome.Error != nil {
		file.Error = outcome.Error.Error()
		return file
	}

	jr := outcome.Result
	file.Language = jr.Language
	file.Incomplete = jr.Incomplete()
	file.SkipReason = jr.SkipReason
	file.EditsApplied = jr.EditsApplied
	file.LinesChanged = jr.LinesChanged

	if !jr.Changed {
		return file
	}

	edits, err := textedit.ConvertEdits(jr.Original, jr.Edits, r.opts.Encoding)
	if err != nil {
		file.Error = fmt.Sprintf("convert offsets to %s: %v", r.opts.Encoding, err)
		return file
	}
	file.Edits = make([]JSONEdit, 0, len(edits))
	for _, e := range edits {
		file.Edits = append(file.Edits, JSONEdit{
			Offset: e.StartOffset,
			Length: e.EndOffset - e.StartOffset,
			Value:  e.NewText,
		})
	}

	return file
}
