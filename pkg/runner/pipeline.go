package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/config"
	"github.com/yaklabco/cfreplace/pkg/fsutil"
	"github.com/yaklabco/cfreplace/pkg/langdetect"
	"github.com/yaklabco/cfreplace/pkg/replacements"
	"github.com/yaklabco/cfreplace/pkg/textedit"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the source or response does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrParseFailure indicates the response could not be parsed.
	ErrParseFailure = errors.New("parse failure")

	// ErrInvalidEdits indicates parsed edits do not fit the source.
	ErrInvalidEdits = errors.New("invalid edits")

	// ErrIncompleteFormat indicates the formatter reported a partial
	// result and the pipeline was told not to write one.
	ErrIncompleteFormat = errors.New("incomplete format")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// PipelineOptions controls safety pipeline behavior.
type PipelineOptions struct {
	// Strategy selects how edits are applied to the buffer.
	Strategy textedit.Strategy

	// DryRun generates diffs without writing files.
	DryRun bool

	// FailOnIncomplete refuses responses flagged incomplete_format.
	FailOnIncomplete bool

	// CheckLanguage skips files detected as a language clang-format
	// does not handle.
	CheckLanguage bool

	// SkipGenerated skips machine-generated files.
	SkipGenerated bool

	// Force writes even if the file changed since it was read.
	Force bool

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// Backup configures backup behavior.
	Backup fsutil.BackupOptions

	// MaxResponseSize limits how many response bytes are read; 0 means
	// no limit.
	MaxResponseSize int64
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Strategy:            textedit.StrategyDescending,
		CheckLanguage:       true,
		StrictRaceDetection: true,
		Backup:              fsutil.DefaultBackupOptions(),
		MaxResponseSize:     fsutil.DefaultMaxResponseSize,
	}
}

// PipelineOptionsFromConfig creates pipeline options from a resolved config.
func PipelineOptionsFromConfig(cfg *config.Config) (PipelineOptions, error) {
	opts := DefaultPipelineOptions()
	if cfg == nil {
		return opts, nil
	}

	strategy, err := textedit.ParseStrategy(cfg.Strategy)
	if err != nil {
		return opts, err
	}

	opts.Strategy = strategy
	opts.DryRun = cfg.DryRun
	opts.FailOnIncomplete = cfg.ShouldFailOnIncomplete()
	opts.CheckLanguage = cfg.ShouldCheckLanguage()
	opts.SkipGenerated = cfg.ShouldSkipGenerated()
	opts.Force = cfg.Force
	opts.MaxResponseSize = cfg.MaxResponseSize
	opts.Backup = fsutil.BackupOptions{
		Enabled: cfg.BackupsEnabled(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}

	return opts, nil
}

// Pipeline orchestrates the safe processing of a single job.
type Pipeline struct {
	Options PipelineOptions
}

// NewPipeline creates a new safety pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	return &Pipeline{Options: opts}
}

// ProcessJob runs the full safety pipeline for a single job.
//
// The pipeline performs the following steps:
//  1. Read and hash the source file.
//  2. Read the response (empty means no replacements).
//  3. Parse, check, and apply the edits in memory (ProcessContent).
//  4. Stop here for dry runs and unchanged files.
//  5. Check for concurrent modifications.
//  6. Create backup (if enabled).
//  7. Write the modified content atomically.
func (p *Pipeline) ProcessJob(ctx context.Context, job Job) (*JobResult, error) {
	response, err := p.readResponse(job.Response)
	if err != nil {
		return nil, err
	}

	result, err := p.ApplyResponse(ctx, job.Source, response)
	if err != nil {
		return nil, err
	}
	result.ResponsePath = job.Response
	return result, nil
}

// ApplyResponse runs the pipeline for source with a response already in
// memory, such as one piped on stdin.
func (p *Pipeline) ApplyResponse(ctx context.Context, source string, response []byte) (*JobResult, error) {
	logger := logging.FromContext(ctx)

	content, snap, err := fsutil.ReadFile(ctx, source)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, source, content, response)
	if err != nil {
		return nil, err
	}

	if result.Skipped || !result.Changed || p.Options.DryRun {
		return result, nil
	}

	if !p.Options.Force {
		modified, err := p.checkModified(ctx, snap)
		if err != nil {
			return nil, err
		}
		if modified {
			result.Skipped = true
			result.SkipReason = "file modified during processing"
			logger.Warn("skipping file", logging.FieldPath, source, logging.FieldReason, result.SkipReason)
			return result, nil
		}
	}

	if p.Options.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, source, content, snap.Mode, p.Options.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, source, result.Modified, snap.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	logger.Debug("applied replacements",
		logging.FieldPath, source,
		logging.FieldEditsApplied, result.EditsApplied,
		logging.FieldStrategy, p.Options.Strategy,
	)

	return result, nil
}

// ProcessContent parses response and applies it to content in memory.
// It never touches the file system, so it also serves content from stdin.
func (p *Pipeline) ProcessContent(ctx context.Context, path string, content, response []byte) (*JobResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	logger := logging.FromContext(ctx)
	result := &JobResult{Path: path, Original: content}

	// Empty formatter output means there is nothing to change.
	set := replacements.NewReplacementSet(nil)
	if len(bytes.TrimSpace(response)) > 0 {
		parsed, err := replacements.ParseBytes(response)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
		}
		set = parsed
	}
	result.Set = set

	if set.IncompleteFormat() {
		if p.Options.FailOnIncomplete {
			return nil, fmt.Errorf("%w: %s", ErrIncompleteFormat, path)
		}
		logger.Warn("formatter reported an incomplete format", logging.FieldPath, path)
	}

	if reason := p.skipReason(path, content, result); reason != "" {
		result.Skipped = true
		result.SkipReason = reason
		logger.Debug("skipping file", logging.FieldPath, path, logging.FieldReason, reason)
		return result, nil
	}

	if err := set.Validate(len(content)); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEdits, path, err)
	}

	edits, err := textedit.PrepareEdits(textedit.FromReplacements(set), len(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEdits, path, err)
	}
	result.Edits = edits

	buf := textedit.NewStringBuffer(content)
	if err := textedit.Apply(buf, edits, p.Options.Strategy, textedit.EncodingUTF8); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidEdits, path, err)
	}

	result.Modified = buf.Bytes()
	result.Changed = !bytes.Equal(content, result.Modified)
	result.LinesChanged = int(textedit.ChangedLines(content, edits).Count())
	for _, e := range edits {
		if e.NewText != string(content[e.StartOffset:e.EndOffset]) {
			result.EditsApplied++
		}
	}

	if p.Options.DryRun && result.Changed {
		result.Diff = textedit.GenerateDiff(path, content, edits)
	}

	logger.Debug("processed response",
		logging.FieldPath, path,
		logging.FieldEdits, set.Len(),
		logging.FieldIncomplete, set.IncompleteFormat(),
		logging.FieldLanguage, result.Language,
	)

	return result, nil
}

// skipReason returns why a file must be left alone, or "".
func (p *Pipeline) skipReason(path string, content []byte, result *JobResult) string {
	if result.Set.IsEmpty() {
		return ""
	}
	if langdetect.IsClangFormatFile(path) {
		return "clang-format style file"
	}
	if p.Options.SkipGenerated && langdetect.IsGenerated(path, content) {
		return "generated file"
	}
	if !p.Options.CheckLanguage {
		return ""
	}

	result.Language = langdetect.Detect(path, content)
	if result.Language != "" && !langdetect.Supported(result.Language) {
		return fmt.Sprintf("unsupported language %s", result.Language)
	}
	return ""
}

func (p *Pipeline) readResponse(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, categorizeError(fmt.Errorf("open response %s: %w", path, err))
	}
	defer f.Close()

	data, err := fsutil.ReadAllLimit(f, p.Options.MaxResponseSize)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	return data, nil
}

// checkModified checks if a file has been modified since it was read.
func (p *Pipeline) checkModified(ctx context.Context, snap *fsutil.Snapshot) (bool, error) {
	var modified bool
	var err error

	if p.Options.StrictRaceDetection {
		modified, err = snap.Changed(ctx)
	} else {
		modified, err = snap.ChangedQuick(ctx)
	}

	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrParseFailure) ||
		errors.Is(err, ErrInvalidEdits) ||
		errors.Is(err, ErrIncompleteFormat) ||
		errors.Is(err, ErrWriteFailure)
}
