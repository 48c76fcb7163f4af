// Package runner applies saved formatter responses to many source files.
// It pairs each source with its response, runs every pair through the
// Pipeline on a worker pool, and aggregates the outcomes.
package runner

import "github.com/yaklabco/cfreplace/pkg/config"

// Options controls batch discovery and scheduling.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions are the source extensions (without dot, any case)
	// considered during directory walks.
	Extensions []string

	// ResponseSuffix is appended to a source path to find its response.
	ResponseSuffix string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// SkipVendored prunes vendored directories such as vendor/ and
	// third_party/ during directory walks.
	SkipVendored bool

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// OptionsFromConfig builds discovery options from a resolved config.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:          paths,
		Extensions:     cfg.Extensions,
		ResponseSuffix: cfg.ResponseSuffix,
		ExcludeGlobs:   cfg.Ignore,
		SkipVendored:   true,
		Jobs:           cfg.Jobs,
	}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

// effectiveSuffix returns the response suffix, defaulting if empty.
func (o Options) effectiveSuffix() string {
	if o.ResponseSuffix == "" {
		return config.DefaultResponseSuffix
	}
	return o.ResponseSuffix
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
