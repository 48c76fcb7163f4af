package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldReason     = "reason"

	// Response fields.
	FieldResponse   = "response"
	FieldEdits      = "edits"
	FieldIncomplete = "incomplete_format"
	FieldCursor     = "cursor"
	FieldBytes      = "bytes"
	FieldLanguage   = "language"

	// Configuration fields.
	FieldStrategy = "strategy"
	FieldEncoding = "offset_encoding"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"

	// Statistics fields.
	FieldJobsTotal     = "jobs_total"
	FieldFilesModified = "files_modified"
	FieldFilesFailed   = "files_failed"
	FieldFilesSkipped  = "files_skipped"
	FieldEditsApplied  = "edits_applied"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
