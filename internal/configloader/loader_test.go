package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/cfreplace/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}
	if result.Config.Strategy != "descending" {
		t.Errorf("strategy = %q, want descending", result.Config.Strategy)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want none", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, filepath.Join(root, ".cfreplace.yml"), `
strategy: delta
check_language: false
extensions: [cc, hh]
`)

	// Discovery walks up from a nested directory.
	nested := filepath.Join(root, "src", "lib")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(nested))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Strategy != "delta" {
		t.Errorf("strategy = %q, want delta", cfg.Strategy)
	}
	if cfg.ShouldCheckLanguage() {
		t.Error("check_language: false in the project config should switch the guard off")
	}
	if strings.Join(cfg.Extensions, ",") != "cc,hh" {
		t.Errorf("extensions = %v", cfg.Extensions)
	}
	if cfg.OffsetEncoding != "utf8" {
		t.Errorf("offset_encoding = %q, want default utf8", cfg.OffsetEncoding)
	}
	if len(result.LoadedFrom) != 1 || !strings.HasSuffix(result.LoadedFrom[0], ".cfreplace.yml") {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeConfigFile(t, filepath.Join(root, ".cfreplace.yml"), "strategy: delta\n")

	repo := filepath.Join(root, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), isolatedOptions(repo))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Strategy != "descending" {
		t.Errorf("config above the VCS root should not apply; strategy = %q", result.Config.Strategy)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ".cfreplace.yml"), "strategy: delta\noffset_encoding: utf16\n")
	explicit := filepath.Join(dir, "ci.yml")
	writeConfigFile(t, explicit, "strategy: descending\n")

	opts := isolatedOptions(dir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Strategy != "descending" {
		t.Errorf("strategy = %q, want explicit descending", result.Config.Strategy)
	}
	if result.Config.OffsetEncoding != "utf16" {
		t.Errorf("offset_encoding = %q, want project utf16", result.Config.OffsetEncoding)
	}
	if len(result.LoadedFrom) != 2 || result.LoadedFrom[1] != explicit {
		t.Errorf("LoadedFrom = %v", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ".cfreplace.yml"), "strategy: delta\nfail_on_incomplete: true\n")

	opts := isolatedOptions(dir)
	opts.CLIConfig = &config.Config{
		Strategy:         "descending",
		FailOnIncomplete: config.Bool(false),
		DryRun:           true,
		Jobs:             3,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Strategy != "descending" || cfg.ShouldFailOnIncomplete() || !cfg.DryRun || cfg.Jobs != 3 {
		t.Errorf("CLI overrides not applied: %+v", cfg)
	}
}

func TestLoad_Env(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ".cfreplace.yml"), "strategy: descending\n")
	t.Setenv("CFREPLACE_STRATEGY", "delta")
	t.Setenv("CFREPLACE_IGNORE", "build/**, ,third_party/**")
	t.Setenv("CFREPLACE_BACKUPS_ENABLED", "1")

	opts := isolatedOptions(dir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Strategy != "delta" {
		t.Errorf("strategy = %q, want env delta", cfg.Strategy)
	}
	if strings.Join(cfg.Ignore, "|") != "build/**|third_party/**" {
		t.Errorf("ignore = %v", cfg.Ignore)
	}
	if !cfg.BackupsEnabled() {
		t.Error("backups should be enabled from env")
	}
}

func TestLoad_EnvInvalidBool(t *testing.T) {
	t.Setenv("CFREPLACE_CHECK_LANGUAGE", "maybe")

	opts := isolatedOptions(t.TempDir())
	opts.IgnoreEnv = false

	_, err := Load(context.Background(), opts)
	if err == nil || !strings.Contains(err.Error(), "CFREPLACE_CHECK_LANGUAGE") {
		t.Errorf("Load() error = %v, want invalid boolean for CFREPLACE_CHECK_LANGUAGE", err)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad strategy", "strategy: sideways\n", "strategy"},
		{"bad encoding", "offset_encoding: latin1\n", "offset_encoding"},
		{"bad backup mode", "backups:\n  mode: cloud\n", "backups.mode"},
		{"bad glob", "ignore: ['[']\n", "ignore[0]"},
		{"unknown key", "strategyy: delta\n", "strategyy"},
		{"suffix with separator", "response_suffix: out/x.xml\n", "response_suffix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, ".cfreplace.yml")
			writeConfigFile(t, path, tt.content)

			_, err := Load(context.Background(), isolatedOptions(dir))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}

			var verr *ValidationError
			if errors.As(err, &verr) && verr.FilePath != path {
				t.Errorf("FilePath = %q, want %q", verr.FilePath, path)
			}
		})
	}
}

func TestLoad_Warnings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfigFile(t, filepath.Join(dir, ".cfreplace.yml"), "extensions: [.cpp]\n")

	result, err := Load(context.Background(), isolatedOptions(dir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "leading dot") {
		t.Errorf("Warnings = %v", result.Warnings)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, isolatedOptions(t.TempDir())); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	if MergeAll() != nil {
		t.Error("MergeAll() with no configs should be nil")
	}

	base := config.NewConfig()
	mid := &config.Config{Backups: config.BackupsConfig{Enabled: config.Bool(true)}, Ignore: []string{"a"}}
	top := &config.Config{Backups: config.BackupsConfig{Mode: "none"}, Ignore: []string{}}

	got := MergeAll(base, mid, top)
	if !*got.Backups.Enabled || got.Backups.Mode != "none" {
		t.Errorf("backups = %+v", got.Backups)
	}
	if got.Ignore == nil || len(got.Ignore) != 0 {
		t.Errorf("empty non-nil slice should replace: %v", got.Ignore)
	}

	*mid.Backups.Enabled = false
	if !*got.Backups.Enabled {
		t.Error("merged config must not alias its inputs")
	}
}

func TestGetEnvVarName(t *testing.T) {
	t.Parallel()

	if got := GetEnvVarName("offset_encoding"); got != "CFREPLACE_OFFSET_ENCODING" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(nope) = %q", got)
	}

	vars := ListEnvVars()
	if len(vars) != len(envMappings) || vars[0][0] != "CFREPLACE_BACKUPS_ENABLED" {
		t.Errorf("ListEnvVars() = %v", vars)
	}
}
