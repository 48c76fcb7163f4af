package config

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaDraft is the JSON Schema dialect of the generated config schema.
const SchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// SchemaID identifies the generated config schema.
const SchemaID = "https://github.com/yaklabco/cfreplace/config.schema.json"

// Schema returns a JSON Schema describing the config file, so editors can
// validate and complete .cfreplace.yml.
func Schema() ([]byte, error) {
	defaults := NewConfig()

	enum := func(values ...string) []any {
		out := make([]any, len(values))
		for i, v := range values {
			out[i] = v
		}
		return out
	}

	type property struct {
		key    string
		schema *jsonschema.Schema
		def    any
	}
	props := []property{
		{"strategy", &jsonschema.Schema{
			Description: "How edits are applied to a buffer.",
			Type:        "string",
			Enum:        enum("descending", "delta"),
		}, defaults.Strategy},
		{"offset_encoding", &jsonschema.Schema{
			Description: "Unit for offsets in reports.",
			Type:        "string",
			Enum:        enum("utf8", "utf16", "runes"),
		}, defaults.OffsetEncoding},
		{"fail_on_incomplete", &jsonschema.Schema{
			Description: "Refuse to write when the formatter reports an incomplete format.",
			Type:        "boolean",
		}, defaults.ShouldFailOnIncomplete()},
		{"check_language", &jsonschema.Schema{
			Description: "Only edit files detected as a clang-format language.",
			Type:        "boolean",
		}, defaults.ShouldCheckLanguage()},
		{"skip_generated", &jsonschema.Schema{
			Description: "Leave generated files alone in batch mode.",
			Type:        "boolean",
		}, defaults.ShouldSkipGenerated()},
		{"extensions", &jsonschema.Schema{
			Description: "Source extensions, without dot, considered by batch discovery.",
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string", MinLength: jsonschema.Ptr(1)},
		}, defaults.Extensions},
		{"response_suffix", &jsonschema.Schema{
			Description: "Suffix locating the response saved next to each source file.",
			Type:        "string",
		}, defaults.ResponseSuffix},
		{"max_response_size", &jsonschema.Schema{
			Description: "Maximum formatter response size in bytes; 0 means unlimited.",
			Type:        "integer",
			Minimum:     jsonschema.Ptr(0.0),
		}, defaults.MaxResponseSize},
		{"ignore", &jsonschema.Schema{
			Description: "Glob patterns for files to ignore.",
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
		}, []string{}},
		{"backups", &jsonschema.Schema{
			Description: "Backup behavior when rewriting files.",
			Type:        "object",
			Properties: map[string]*jsonschema.Schema{
				"enabled": {Type: "boolean"},
				"mode":    {Type: "string", Enum: enum("sidecar", "none")},
			},
			PropertyOrder: []string{"enabled", "mode"},
		}, map[string]any{"enabled": false, "mode": defaults.Backups.Mode}},
	}

	properties := make(map[string]*jsonschema.Schema, len(props))
	order := make([]string, 0, len(props))
	for _, p := range props {
		raw, err := json.Marshal(p.def)
		if err != nil {
			return nil, fmt.Errorf("encode default for %q: %w", p.key, err)
		}
		p.schema.Default = json.RawMessage(raw)
		properties[p.key] = p.schema
		order = append(order, p.key)
	}

	root := &jsonschema.Schema{
		Schema:        SchemaDraft,
		ID:            SchemaID,
		Title:         "cfreplace configuration",
		Type:          "object",
		Properties:    properties,
		PropertyOrder: order,
	}

	out, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON schema: %w", err)
	}
	return append(out, '\n'), nil
}
