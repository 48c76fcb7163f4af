package reporter

import (
	"fmt"
	"strings"
)

// Format represents an output format.
type Format string

// Output formats supported by the reporter.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatDiff Format = "diff"
	FormatLSP  Format = "lsp"

	// FormatXML re-emits a single replacement set and is only accepted by
	// ReportSet.
	FormatXML Format = "xml"
)

// ParseFormat parses a format string, returning an error for unknown formats.
func ParseFormat(formatStr string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(formatStr)))
	if format == "" {
		return FormatText, nil
	}
	if !format.IsValid() && format != FormatXML {
		return "", fmt.Errorf("unknown format %q; valid formats: text, json, diff, lsp, xml", formatStr)
	}
	return format, nil
}

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format can render a batch result.
func (f Format) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatLSP:
		return true
	default:
		return false
	}
}

// IsValidForSet returns true if ReportSet can render the format.
func (f Format) IsValidForSet() bool {
	switch f {
	case FormatText, FormatJSON, FormatXML:
		return true
	default:
		return false
	}
}
