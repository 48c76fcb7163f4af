package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/cfreplace/internal/logging"
	"github.com/yaklabco/cfreplace/pkg/fsutil"
)

func newRestoreCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "restore <paths...>",
		Short: "Restore files from their sidecar backups",
		Long: `Restore source files from the sidecar backups (<file>.cfreplace.bak) written
by apply and batch when backups are enabled. Each backup is removed once its
file has been restored. Directories are searched recursively for backups.`,
		Example: `  cfreplace restore src/main.cpp
  cfreplace restore src/ --dry-run`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(commandContext(cmd), args, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files that would be restored")

	return cmd
}

func runRestore(ctx context.Context, paths []string, dryRun bool) error {
	logger := logging.NewInteractive()

	var targets []string
	for _, path := range paths {
		found, err := findBackups(ctx, path)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: err}
		}
		targets = append(targets, found...)
	}

	if len(targets) == 0 {
		logger.Info("no backups found")
		return nil
	}

	restored := 0
	for _, target := range targets {
		if dryRun {
			logger.Info("would restore", logging.FieldPath, target)
			continue
		}

		ok, err := fsutil.RestoreBackup(ctx, target, fsutil.BackupModeSidecar)
		if err != nil {
			return &ExitError{Code: ExitIOError, Err: fmt.Errorf("restore %s: %w", target, err)}
		}
		if ok {
			restored++
			logger.Info("restored", logging.FieldPath, target)
		}
	}

	if !dryRun {
		logger.Info("restore complete", logging.FieldFiles, restored)
	}
	return nil
}

// findBackups returns the files under path that have a sidecar backup.
// path may name a source file, its backup, or a directory.
func findBackups(ctx context.Context, path string) ([]string, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
	case strings.HasSuffix(path, fsutil.BackupSuffix):
		return []string{strings.TrimSuffix(path, fsutil.BackupSuffix)}, nil
	case fsutil.BackupExists(path, fsutil.BackupModeSidecar):
		return []string{path}, nil
	case err != nil && !os.IsNotExist(err):
		return nil, fmt.Errorf("stat %s: %w", path, err)
	default:
		return nil, nil
	}

	var found []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, fsutil.BackupSuffix) {
			found = append(found, strings.TrimSuffix(p, fsutil.BackupSuffix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", path, err)
	}
	return found, nil
}
