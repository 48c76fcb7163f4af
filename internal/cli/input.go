package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/cfreplace/pkg/fsutil"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

// stdinPath names standard input on the command line.
const stdinPath = "-"

// ErrInteractiveStdin is returned when a response should come from stdin
// but stdin is a terminal.
var ErrInteractiveStdin = errors.New("no response piped on stdin")

// readResponse reads formatter output from path, or from stdin when path
// is empty or "-". At most limit bytes are read (0 means no limit).
func readResponse(stdin io.Reader, path string, limit int64) ([]byte, string, error) {
	if path != "" && path != stdinPath {
		f, err := os.Open(path)
		if err != nil {
			return nil, path, responseOpenError(path, err)
		}
		defer f.Close()

		data, err := fsutil.ReadAllLimit(f, limit)
		if err != nil {
			return nil, path, fmt.Errorf("read response %s: %w", path, err)
		}
		return data, path, nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, "", usageError(fmt.Errorf("%w; pipe clang-format --output-replacements-xml output or pass a file", ErrInteractiveStdin))
	}

	data, err := fsutil.ReadAllLimit(stdin, limit)
	if err != nil {
		return nil, "", fmt.Errorf("read stdin: %w", err)
	}
	return data, "", nil
}

func responseOpenError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: response %s: %w", runner.ErrFileNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: response %s: %w", runner.ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("open response: %w", err)
	}
}
