package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/cfreplace/internal/configloader"
	"github.com/yaklabco/cfreplace/pkg/replacements"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

// Exit codes for cfreplace. Codes above 63 follow sysexits.h.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitChangesPending indicates a check run found files that need formatting.
	ExitChangesPending = 1

	// ExitIncomplete indicates the formatter reported an incomplete format
	// and writing was refused.
	ExitIncomplete = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitDataError indicates a malformed response or edits that do not
	// fit the source.
	ExitDataError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 78
)

// ErrChangesPending is returned by check runs that found unformatted files.
var ErrChangesPending = errors.New("changes pending")

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitInvalidUsage, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	switch {
	case errors.Is(err, ErrChangesPending):
		return ExitChangesPending
	case errors.Is(err, runner.ErrIncompleteFormat):
		return ExitIncomplete
	case errors.Is(err, runner.ErrParseFailure),
		errors.Is(err, runner.ErrInvalidEdits),
		errors.Is(err, replacements.ErrMalformedResponse),
		errors.Is(err, replacements.ErrInvalidAttribute),
		errors.Is(err, replacements.ErrOutOfBounds),
		errors.Is(err, replacements.ErrUnordered):
		return ExitDataError
	case errors.Is(err, runner.ErrFileNotFound),
		errors.Is(err, runner.ErrPermissionDenied),
		errors.Is(err, runner.ErrWriteFailure),
		errors.Is(err, runner.ErrNoResponse),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return ExitIOError
	case errors.As(err, &validationErr):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a batch run. Failed jobs
// take precedence; in check mode, pending changes exit with
// ExitChangesPending.
func ExitCodeFromResult(result *runner.Result, check bool) int {
	if result == nil {
		return ExitSuccess
	}

	for _, outcome := range result.Outcomes {
		if outcome.Error != nil {
			return ExitCode(outcome.Error)
		}
	}

	if check && result.HasPendingChanges() {
		return ExitChangesPending
	}

	return ExitSuccess
}
