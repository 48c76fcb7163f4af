package runner

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Job pairs a source file with the formatter response to apply to it.
type Job struct {
	// Source is the file that is rewritten.
	Source string `yaml:"source" json:"source"`

	// Response is the saved --output-replacements-xml output for Source.
	Response string `yaml:"response" json:"response"`
}

// manifest is the on-disk form of a job list.
type manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// errEmptySource reports a manifest entry without a source path.
var errEmptySource = errors.New("job has no source")

// LoadManifest reads a YAML job list:
//
//	jobs:
//	  - source: src/main.cpp
//	    response: build/format/main.cpp.xml
//	  - source: include/app.h   # response defaults to source + suffix
//
// Relative paths are resolved against the manifest's directory.
func LoadManifest(path, defaultSuffix string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest directory: %w", err)
	}

	jobs := make([]Job, 0, len(m.Jobs))
	for i, job := range m.Jobs {
		if job.Source == "" {
			return nil, fmt.Errorf("manifest %s: jobs[%d]: %w", path, i, errEmptySource)
		}
		if job.Response == "" {
			job.Response = job.Source + defaultSuffix
		}
		jobs = append(jobs, Job{
			Source:   resolveAgainst(base, job.Source),
			Response: resolveAgainst(base, job.Response),
		})
	}

	return jobs, nil
}

func resolveAgainst(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
