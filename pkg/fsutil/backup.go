package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores the backup next to the file, with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file name to form its sidecar backup.
const BackupSuffix = ".cfreplace.bak"

// BackupOptions controls backup behavior.
type BackupOptions struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupOptions returns sidecar mode with backups turned off.
func DefaultBackupOptions() BackupOptions {
	return BackupOptions{Enabled: false, Mode: BackupModeSidecar}
}

// BackupPath returns where the backup for path lives, or "" when mode
// stores no backups. Unknown modes fall back to sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup saves content, the text that is about to be replaced, as
// the backup of path. An existing backup is kept, so repeated runs always
// preserve the oldest original. Reports whether a backup was written.
func CreateBackup(ctx context.Context, path string, content []byte, mode os.FileMode, opts BackupOptions) (bool, error) {
	if !opts.Enabled {
		return false, nil
	}
	backupPath := BackupPath(path, opts.Mode)
	if backupPath == "" {
		return false, nil
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("create backup: %w", err)
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over path and removes the
// backup. Reports false if there was no backup.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, snap, err := ReadFile(ctx, backupPath)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read backup: %w", err)
	}

	if err := WriteAtomic(ctx, path, content, snap.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	if _, err := RemoveBackup(path, mode); err != nil {
		return true, err
	}
	return true, nil
}

// RemoveBackup deletes the backup of path. Reports false if none existed.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	err := os.Remove(backupPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// BackupExists reports whether path has a backup.
func BackupExists(path string, mode BackupMode) bool {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false
	}
	_, err := os.Stat(backupPath)
	return err == nil
}
