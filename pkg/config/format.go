package config

import (
	"fmt"
	"slices"
	"strings"
)

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
	FormatLSP  OutputFormat = "lsp"
)

// OutputFormats returns all valid output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff, FormatLSP}
}

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// ParseOutputFormat converts a string into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown output format %q (valid: text, json, diff, lsp)", s)
	}
	return format, nil
}
