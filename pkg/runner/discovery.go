package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/cfreplace/pkg/langdetect"
)

// ErrNoResponse indicates an explicitly named source has no saved response.
var ErrNoResponse = errors.New("no saved response")

// Discover pairs source files with their saved responses.
//
// A directory is walked for files with a matching extension whose sibling
// "<file><suffix>" exists; sources without one are silently ignored. A file
// named on the command line must have a response, and naming the response
// file itself selects its source. Hidden directories, .clang-format files,
// and excluded paths are skipped. Jobs are sorted by source path.
func Discover(ctx context.Context, opts Options) ([]Job, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		opts:     opts,
		workDir:  workDir,
		suffix:   opts.effectiveSuffix(),
		excludes: excludes,
		seen:     make(map[string]struct{}),
	}
	for _, ext := range opts.effectiveExtensions() {
		w.extensions = append(w.extensions, "."+strings.ToLower(strings.TrimPrefix(ext, ".")))
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		if err := w.addExplicit(absPath); err != nil {
			return nil, err
		}
	}

	slices.SortFunc(w.jobs, func(a, b Job) int {
		return strings.Compare(a.Source, b.Source)
	})

	return w.jobs, nil
}

type walker struct {
	opts       Options
	workDir    string
	suffix     string
	extensions []string
	excludes   *globSet
	seen       map[string]struct{}
	jobs       []Job
}

func (w *walker) add(source string) {
	if _, ok := w.seen[source]; ok {
		return
	}
	w.seen[source] = struct{}{}
	w.jobs = append(w.jobs, Job{Source: source, Response: source + w.suffix})
}

// addExplicit handles a file named directly by the user.
func (w *walker) addExplicit(path string) error {
	source := path
	if strings.HasSuffix(path, w.suffix) {
		source = strings.TrimSuffix(path, w.suffix)
	}

	if langdetect.IsClangFormatFile(source) {
		return nil
	}
	if !fileExists(source + w.suffix) {
		return fmt.Errorf("%s: %w (expected %s)", source, ErrNoResponse, filepath.Base(source+w.suffix))
	}

	w.add(source)
	return nil
}

func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		relPath := w.rel(path)

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || w.excludes.matchDir(relPath) {
				return filepath.SkipDir
			}
			if w.opts.SkipVendored && langdetect.IsVendored(filepath.ToSlash(relPath)+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			info, statErr := os.Stat(path)
			if statErr != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			if info.IsDir() {
				if !w.opts.FollowSymlinks {
					return nil
				}
				realPath, evalErr := filepath.EvalSymlinks(path)
				if evalErr != nil {
					return nil //nolint:nilerr // Unresolvable symlinks are skipped
				}
				return w.walk(ctx, realPath)
			}
		}

		if w.matchesSource(path, entry.Name(), relPath) && fileExists(path+w.suffix) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (w *walker) matchesSource(path, name, relPath string) bool {
	if strings.HasPrefix(name, ".") || langdetect.IsClangFormatFile(name) {
		return false
	}
	if !slices.Contains(w.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}
	return !w.excludes.matchFile(relPath)
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
