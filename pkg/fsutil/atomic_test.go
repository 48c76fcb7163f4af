package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/yaklabco/cfreplace/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("creates file with default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.c")
		if err := fsutil.WriteAtomic(ctx, path, []byte("int x;\n"), 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil || string(got) != "int x;\n" {
			t.Fatalf("read back = %q, %v", got, err)
		}

		if runtime.GOOS != "windows" {
			info, _ := os.Stat(path)
			if info.Mode().Perm() != fsutil.DefaultFileMode {
				t.Errorf("mode = %v, want %v", info.Mode().Perm(), fsutil.DefaultFileMode)
			}
		}
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "main.cpp")
		writeFile(t, path, "old")

		if err := fsutil.WriteAtomic(ctx, path, []byte("new"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "a.c")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Error("expected error")
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "a.h")

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte("#pragma once\n"), 0)
	if err != nil || !written {
		t.Fatalf("first write = %v, %v; want true, nil", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("#pragma once\n"), 0)
	if err != nil || written {
		t.Fatalf("identical write = %v, %v; want false, nil", written, err)
	}

	written, err = fsutil.WriteAtomicIfChanged(ctx, path, []byte("#pragma once\n\n"), 0)
	if err != nil || !written {
		t.Fatalf("changed write = %v, %v; want true, nil", written, err)
	}
}
