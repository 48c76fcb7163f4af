package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default; otherwise a commented
	// minimal template is produced.
	Full bool

	// Format is "yaml" or "json".
	Format string
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# cfreplace configuration
# Applies clang-format --output-replacements-xml responses to source files.`
}

const minimalTemplate = `# cfreplace configuration
# Applies clang-format --output-replacements-xml responses to source files.

# How edits are applied to a buffer: descending (last edit first) or delta
# (first edit first, shifting later offsets by the accumulated change).
# strategy: descending

# Unit for offsets in reports: utf8 (bytes, as clang-format emits), utf16,
# or runes.
# offset_encoding: utf8

# Refuse to write when clang-format could only partially format a file.
# fail_on_incomplete: false

# Only edit files detected as a language clang-format supports.
# check_language: true

# Leave generated files alone in batch mode.
# skip_generated: true

# Saved responses live next to their source with this suffix.
# response_suffix: .replacements.xml

# Source extensions considered by batch discovery.
# extensions: [c, cc, cpp, cxx, h, hh, hpp, hxx]

# File patterns to ignore (glob patterns).
# ignore:
#   - "third_party/**"
#   - "build/**"

# Keep a copy of each file before rewriting it.
# backups:
#   enabled: false
#   mode: sidecar
`

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch {
	case opts.Format == "json":
		return defaultsToJSON()
	case opts.Full:
		return NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	default:
		return []byte(minimalTemplate), nil
	}
}

// defaultsToJSON renders the defaults using the YAML key names.
func defaultsToJSON() ([]byte, error) {
	body, err := NewConfig().ToYAML()
	if err != nil {
		return nil, err
	}

	var generic map[string]any
	if err := yaml.Unmarshal(body, &generic); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}

	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}
