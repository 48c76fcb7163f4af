package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/cfreplace/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode fsutil.BackupMode
		want string
	}{
		{fsutil.BackupModeSidecar, "src/a.c.cfreplace.bak"},
		{fsutil.BackupModeNone, ""},
		{fsutil.BackupMode("bogus"), "src/a.c.cfreplace.bak"},
	}

	for _, tt := range tests {
		if got := fsutil.BackupPath("src/a.c", tt.mode); got != tt.want {
			t.Errorf("BackupPath(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupOptions{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes given content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.c")
		created, err := fsutil.CreateBackup(ctx, path, []byte("original"), 0o600, enabled)
		if err != nil || !created {
			t.Fatalf("CreateBackup() = %v, %v", created, err)
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil || string(got) != "original" {
			t.Errorf("backup = %q, %v", got, err)
		}
	})

	t.Run("keeps oldest backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.c")
		if _, err := fsutil.CreateBackup(ctx, path, []byte("first"), 0, enabled); err != nil {
			t.Fatal(err)
		}

		created, err := fsutil.CreateBackup(ctx, path, []byte("second"), 0, enabled)
		if err != nil || created {
			t.Fatalf("second CreateBackup() = %v, %v; want false, nil", created, err)
		}

		got, _ := os.ReadFile(path + fsutil.BackupSuffix)
		if string(got) != "first" {
			t.Errorf("backup = %q, want first", got)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.c")
		for _, opts := range []fsutil.BackupOptions{
			fsutil.DefaultBackupOptions(),
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			created, err := fsutil.CreateBackup(ctx, path, []byte("x"), 0, opts)
			if err != nil || created {
				t.Errorf("CreateBackup(%+v) = %v, %v; want false, nil", opts, created, err)
			}
		}
		if fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("backup should not exist")
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("restores and removes backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.c")
		writeFile(t, path, "formatted")
		writeFile(t, path+fsutil.BackupSuffix, "original")

		restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
		if err != nil || !restored {
			t.Fatalf("RestoreBackup() = %v, %v", restored, err)
		}

		got, _ := os.ReadFile(path)
		if string(got) != "original" {
			t.Errorf("content = %q, want original", got)
		}
		if fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("backup should be removed after restore")
		}
	})

	t.Run("no backup", func(t *testing.T) {
		t.Parallel()

		restored, err := fsutil.RestoreBackup(ctx, filepath.Join(t.TempDir(), "a.c"), fsutil.BackupModeSidecar)
		if err != nil || restored {
			t.Errorf("RestoreBackup() = %v, %v; want false, nil", restored, err)
		}
	})
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.c")
	writeFile(t, path+fsutil.BackupSuffix, "x")

	removed, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)
	if err != nil || !removed {
		t.Fatalf("RemoveBackup() = %v, %v", removed, err)
	}

	removed, err = fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)
	if err != nil || removed {
		t.Errorf("second RemoveBackup() = %v, %v; want false, nil", removed, err)
	}
}
