// Package fsutil provides the file system safety primitives used when
// rewriting source files: snapshots for detecting concurrent modification,
// bounded reads of untrusted formatter output, atomic writes, and sidecar
// backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilSnapshot is returned when a nil Snapshot is checked.
	ErrNilSnapshot = errors.New("nil snapshot")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrTooLarge indicates an input exceeded its size limit.
	ErrTooLarge = errors.New("input too large")
)

// DefaultMaxResponseSize bounds how much formatter output is buffered.
const DefaultMaxResponseSize int64 = 64 << 20

// Snapshot records the state of a file when it was read, so a later write
// can be refused if someone else changed the file in the meantime.
type Snapshot struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64

	// Hash is the SHA-256 of the content that was read.
	Hash [32]byte
}

// ReadFile reads path and returns its content with a snapshot.
func ReadFile(ctx context.Context, path string) ([]byte, *Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify("stat", path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify("read", path, err)
	}

	return content, &Snapshot{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Changed reports whether the file differs from the snapshot. Metadata is
// compared first; if it matches, the content is re-hashed. A deleted file
// counts as changed.
func (s *Snapshot) Changed(ctx context.Context) (bool, error) {
	stat, changed, err := s.statChanged(ctx)
	if err != nil || changed || stat == nil {
		return changed, err
	}

	content, err := os.ReadFile(s.Path)
	if err != nil {
		return false, classify("read", s.Path, err)
	}
	return sha256.Sum256(content) != s.Hash, nil
}

// ChangedQuick is Changed without the content hash: only the modification
// time and size are compared.
func (s *Snapshot) ChangedQuick(ctx context.Context) (bool, error) {
	_, changed, err := s.statChanged(ctx)
	return changed, err
}

func (s *Snapshot) statChanged(ctx context.Context) (fs.FileInfo, bool, error) {
	if s == nil {
		return nil, false, ErrNilSnapshot
	}
	if err := ctx.Err(); err != nil {
		return nil, false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, classify("stat", s.Path, err)
	}

	if !stat.ModTime().Equal(s.ModTime) || stat.Size() != s.Size {
		return stat, true, nil
	}
	return stat, false, nil
}

// ReadAllLimit reads r to EOF, failing with ErrTooLarge once more than
// limit bytes arrive. A non-positive limit disables the check.
func ReadAllLimit(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

func classify(op, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("%s %s: %w", op, path, err)
	}
}
