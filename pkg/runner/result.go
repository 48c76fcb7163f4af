package runner

import (
	"github.com/yaklabco/cfreplace/pkg/replacements"
	"github.com/yaklabco/cfreplace/pkg/textedit"
)

// Status classifies what happened to a file.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusPending   Status = "pending"
	StatusWritten   Status = "written"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// JobResult is the result of running one source through the pipeline.
type JobResult struct {
	// Path is the source file that was processed.
	Path string

	// ResponsePath is where the response was read from ("" for stdin).
	ResponsePath string

	// Language is the detected language, when the language guard ran.
	Language string

	// Set is the parsed response.
	Set *replacements.ReplacementSet

	// Edits are the prepared edits in ascending order.
	Edits []textedit.TextEdit

	// Original is the source content as read.
	Original []byte

	// Modified is the content after applying the edits.
	Modified []byte

	// Changed is true if Modified differs from Original.
	Changed bool

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *textedit.Diff

	// Skipped is true if the file was left alone.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool

	// EditsApplied counts edits that changed bytes.
	EditsApplied int

	// LinesChanged counts original lines the edits rewrote.
	LinesChanged int
}

// Status classifies the result.
func (r *JobResult) Status() Status {
	switch {
	case r == nil:
		return StatusFailed
	case r.Skipped:
		return StatusSkipped
	case r.Written:
		return StatusWritten
	case r.Changed:
		return StatusPending
	default:
		return StatusUnchanged
	}
}

// Summary returns a human-readable summary of the result.
func (r *JobResult) Summary() string {
	switch r.Status() {
	case StatusSkipped:
		return "skipped: " + r.SkipReason
	case StatusWritten:
		if r.BackupCreated {
			return "formatted (backup created)"
		}
		return "formatted"
	case StatusPending:
		return "changes pending"
	case StatusFailed:
		return "failed"
	default:
		return "unchanged"
	}
}

// Incomplete reports whether the formatter flagged its output as partial.
func (r *JobResult) Incomplete() bool {
	return r != nil && r.Set != nil && r.Set.IncompleteFormat()
}

// Outcome wraps a JobResult with the job that produced it.
type Outcome struct {
	// Job is the job that was processed.
	Job Job

	// Result is nil if the job failed.
	Result *JobResult

	// Error is set if the job could not be processed.
	Error error
}

// Status classifies the outcome.
func (o Outcome) Status() Status {
	if o.Error != nil {
		return StatusFailed
	}
	return o.Result.Status()
}

// Stats captures aggregate information about a run.
type Stats struct {
	// JobsTotal is the number of jobs scheduled.
	JobsTotal int

	// FilesProcessed is the number of jobs that completed without error.
	FilesProcessed int

	// FilesWritten is the number of files rewritten on disk.
	FilesWritten int

	// FilesPending is the number of files a dry run would change.
	FilesPending int

	// FilesUnchanged is the number of files already formatted.
	FilesUnchanged int

	// FilesSkipped is the number of files left alone on purpose.
	FilesSkipped int

	// FilesErrored is the number of jobs that failed.
	FilesErrored int

	// IncompleteFormats counts responses flagged incomplete_format.
	IncompleteFormats int

	// EditsTotal is the number of replacements parsed.
	EditsTotal int

	// EditsApplied is the number of replacements that changed bytes.
	EditsApplied int

	// LinesChanged is the number of original lines rewritten.
	LinesChanged int
}

// Result is the overall runner result.
type Result struct {
	// Outcomes holds one entry per job, in job order.
	Outcomes []Outcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// NewResult aggregates outcomes produced outside RunJobs, such as a single
// file applied from stdin.
func NewResult(outcomes ...Outcome) *Result {
	result := &Result{
		Outcomes: make([]Outcome, 0, len(outcomes)),
		Stats:    Stats{JobsTotal: len(outcomes)},
	}
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// HasFailures reports whether any job failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// HasPendingChanges reports whether a dry run found files to change.
func (r *Result) HasPendingChanges() bool {
	return r != nil && r.Stats.FilesPending > 0
}

// accumulate updates the result with an outcome.
func (r *Result) accumulate(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	jr := outcome.Result
	r.Stats.FilesProcessed++
	if jr.Incomplete() {
		r.Stats.IncompleteFormats++
	}
	if jr.Set != nil {
		r.Stats.EditsTotal += jr.Set.Len()
	}

	switch jr.Status() {
	case StatusSkipped:
		r.Stats.FilesSkipped++
		return
	case StatusWritten:
		r.Stats.FilesWritten++
	case StatusPending:
		r.Stats.FilesPending++
	default:
		r.Stats.FilesUnchanged++
	}

	r.Stats.EditsApplied += jr.EditsApplied
	r.Stats.LinesChanged += jr.LinesChanged
}
