package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the permission mode for files created from scratch.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content. The data is written to a temp
// file in the same directory, synced, given mode, and renamed over path, so
// readers see either the old or the new file and never a partial one. A
// zero mode means DefaultFileMode.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}
	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	steps := []struct {
		name string
		run  func() error
	}{
		{"write temp file", func() error {
			_, err := tmp.Write(content)
			return err
		}},
		{"sync temp file", tmp.Sync},
		{"close temp file", tmp.Close},
		{"chmod temp file", func() error { return os.Chmod(tmpPath, mode) }},
		{"rename temp file", func() error { return os.Rename(tmpPath, path) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	committed = true
	return nil
}

// WriteAtomicIfChanged calls WriteAtomic unless path already holds content.
// It reports whether a write happened.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write atomic: %w", err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("read existing: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
