package runner

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/gobwas/glob"
)

// globSet matches slash-separated relative paths against ignore patterns.
// "*" stays within one path segment and "**" crosses segments. A pattern
// without a slash also matches the base name, so "*.pb.cc" works anywhere.
type globSet struct {
	full []glob.Glob
	base []glob.Glob
}

func compileGlobs(patterns []string) (*globSet, error) {
	set := &globSet{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile ignore pattern %q: %w", pattern, err)
		}
		set.full = append(set.full, g)

		if path.Base(pattern) == pattern {
			set.base = append(set.base, g)
		}
	}
	return set, nil
}

// matchFile reports whether the file at relPath is excluded.
func (s *globSet) matchFile(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, g := range s.full {
		if g.Match(relPath) {
			return true
		}
	}

	name := path.Base(relPath)
	for _, g := range s.base {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// matchDir reports whether the directory at relPath, and so everything
// below it, is excluded. "build/**" prunes build itself.
func (s *globSet) matchDir(relPath string) bool {
	return s.matchFile(relPath) || s.matchFile(filepath.ToSlash(relPath)+"/")
}
