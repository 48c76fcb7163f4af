package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cfreplace/pkg/config"
)

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" diff ", config.FormatDiff, false},
		{"lsp", config.FormatLSP, false},
		{"sarif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseOutputFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema(t *testing.T) {
	t.Parallel()

	out, err := config.Schema()
	require.NoError(t, err)

	var doc struct {
		Schema     string                    `json:"$schema"`
		Type       string                    `json:"type"`
		Properties map[string]map[string]any `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))

	assert.Equal(t, config.SchemaDraft, doc.Schema)
	assert.Equal(t, "object", doc.Type)
	assert.Equal(t, []any{"descending", "delta"}, doc.Properties["strategy"]["enum"])
	assert.Equal(t, "descending", doc.Properties["strategy"]["default"])
	assert.Equal(t, "boolean", doc.Properties["check_language"]["type"])
	assert.Contains(t, doc.Properties, "backups")
	assert.NotContains(t, doc.Properties, "dry_run")
}
