package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cfreplace/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies pointers and slices", func(t *testing.T) {
		original := config.NewConfig()
		original.Ignore = []string{"build/**"}

		clone := original.Clone()
		*clone.CheckLanguage = false
		*clone.Backups.Enabled = true
		clone.Extensions[0] = "zz"
		clone.Ignore[0] = "other/**"

		assert.True(t, original.ShouldCheckLanguage())
		assert.False(t, *original.Backups.Enabled)
		assert.Equal(t, "c", original.Extensions[0])
		assert.Equal(t, "build/**", original.Ignore[0])
	})

	t.Run("copies CLI fields", func(t *testing.T) {
		original := &config.Config{DryRun: true, Jobs: 4, Format: config.FormatDiff, Force: true}
		clone := original.Clone()
		assert.True(t, clone.DryRun)
		assert.True(t, clone.Force)
		assert.Equal(t, 4, clone.Jobs)
		assert.Equal(t, config.FormatDiff, clone.Format)
	})
}

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, "descending", cfg.Strategy)
	assert.Equal(t, "utf8", cfg.OffsetEncoding)
	assert.Equal(t, config.DefaultResponseSuffix, cfg.ResponseSuffix)
	assert.Equal(t, config.FormatText, cfg.Format)
	assert.Contains(t, cfg.Extensions, "cpp")
	assert.Contains(t, cfg.Extensions, "cuh")
	assert.False(t, cfg.ShouldFailOnIncomplete())
	assert.True(t, cfg.ShouldCheckLanguage())
	assert.True(t, cfg.ShouldSkipGenerated())
	assert.False(t, cfg.BackupsEnabled())
}

func TestConfigBoolAccessors(t *testing.T) {
	t.Parallel()

	t.Run("unset values use defaults", func(t *testing.T) {
		cfg := &config.Config{}
		assert.False(t, cfg.ShouldFailOnIncomplete())
		assert.True(t, cfg.ShouldCheckLanguage())
		assert.True(t, cfg.ShouldSkipGenerated())
		assert.False(t, cfg.BackupsEnabled())
	})

	t.Run("no-backups wins over enabled", func(t *testing.T) {
		cfg := &config.Config{Backups: config.BackupsConfig{Enabled: config.Bool(true)}}
		assert.True(t, cfg.BackupsEnabled())

		cfg.NoBackups = true
		assert.False(t, cfg.BackupsEnabled())
	})
}

func TestToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		var c *config.Config
		out, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("omits CLI fields", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.DryRun = true
		cfg.Jobs = 8

		out, err := cfg.ToYAML()
		require.NoError(t, err)

		text := string(out)
		assert.Contains(t, text, "strategy: descending")
		assert.Contains(t, text, "  enabled: false")
		assert.NotContains(t, text, "dry_run")
		assert.NotContains(t, text, "jobs")
	})

	t.Run("round trips through FromYAML", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Strategy = "delta"
		cfg.CheckLanguage = config.Bool(false)

		out, err := cfg.ToYAML()
		require.NoError(t, err)

		parsed, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Equal(t, "delta", parsed.Strategy)
		assert.False(t, parsed.ShouldCheckLanguage())
		assert.Equal(t, cfg.Extensions, parsed.Extensions)
	})

	t.Run("header", func(t *testing.T) {
		out, err := config.NewConfig().ToYAMLWithHeader("# hello")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "# hello\n\nstrategy:"))
	})
}

func TestFromYAML(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, cfg.Strategy)
		assert.Nil(t, cfg.CheckLanguage)
	})

	t.Run("explicit false is kept", func(t *testing.T) {
		cfg, err := config.FromYAML([]byte("check_language: false\nbackups:\n  enabled: true\n"))
		require.NoError(t, err)
		require.NotNil(t, cfg.CheckLanguage)
		assert.False(t, *cfg.CheckLanguage)
		assert.True(t, *cfg.Backups.Enabled)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := config.FromYAML([]byte("stratgey: delta\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stratgey")
	})

	t.Run("CLI-only key is rejected", func(t *testing.T) {
		_, err := config.FromYAML([]byte("dry_run: true\n"))
		require.Error(t, err)
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template is valid and empty", func(t *testing.T) {
		out, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Empty(t, cfg.Strategy)
		assert.Contains(t, string(out), "# strategy: descending")
	})

	t.Run("full template carries defaults", func(t *testing.T) {
		out, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(out)
		require.NoError(t, err)
		assert.Equal(t, "descending", cfg.Strategy)
		assert.Equal(t, config.DefaultResponseSuffix, cfg.ResponseSuffix)
	})

	t.Run("json", func(t *testing.T) {
		out, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var generic map[string]any
		require.NoError(t, json.Unmarshal(out, &generic))
		assert.Equal(t, "descending", generic["strategy"])
		assert.Equal(t, "utf8", generic["offset_encoding"])
		assert.NotContains(t, generic, "format")
	})
}
