package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/yaklabco/cfreplace/internal/cli"
	"github.com/yaklabco/cfreplace/internal/configloader"
	"github.com/yaklabco/cfreplace/pkg/replacements"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "test-version",
		Commit:  "test-commit",
		Date:    "test-date",
	}

	cmd := cli.NewRootCommand(info)

	if cmd == nil {
		t.Fatal("NewRootCommand returned nil")
	}

	if cmd.Use != "cfreplace" {
		t.Errorf("expected Use to be 'cfreplace', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	expectedSubcommands := []string{"parse", "apply", "batch", "restore", "init", "version"}

	for _, name := range expectedSubcommands {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}

		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	tests := map[string][]string{
		"parse": {"format", "source", "compact"},
		"apply": {
			"dry-run", "check", "format", "strategy", "offset-encoding",
			"fail-on-incomplete", "no-language-check", "backup", "no-backups", "force", "stdout",
		},
		"batch": {
			"dry-run", "check", "format", "jobs", "ignore", "manifest", "suffix",
			"extensions", "no-backups", "force", "verbose",
		},
		"restore": {"dry-run"},
		"init":    {"force", "full", "schema", "format", "output"},
	}

	for name, flags := range tests {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("%s command not found: %v", name, err)
		}
		for _, flagName := range flags {
			if subCmd.Flags().Lookup(flagName) == nil {
				t.Errorf("expected flag %q to exist on %s command", flagName, name)
			}
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})

	for _, flagName := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(flagName) == nil {
			t.Errorf("expected global flag %q to exist", flagName)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	info := cli.BuildInfo{
		Version: "1.2.3",
		Commit:  "abc123",
		Date:    "2024-01-01",
	}

	cmd := cli.NewRootCommand(info)
	cmd.SetArgs([]string{"version"})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	for _, want := range []string{"cfreplace", "1.2.3", "abc123", "2024-01-01"} {
		if !bytes.Contains(out.Bytes(), []byte(want)) {
			t.Errorf("version output %q missing %q", out.String(), want)
		}
	}
}

func TestBatchCommandAcceptsArbitraryArgs(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "test", Date: "test"})
	batchCmd, _, err := cmd.Find([]string{"batch"})
	if err != nil {
		t.Fatalf("batch command not found: %v", err)
	}

	if err := batchCmd.Args(batchCmd, []string{"src/", "include/app.h", "lib"}); err != nil {
		t.Errorf("batch command should accept arbitrary args, got error: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"changes pending", cli.ErrChangesPending, cli.ExitChangesPending},
		{"explicit", &cli.ExitError{Code: cli.ExitInvalidUsage, Err: errors.New("bad")}, cli.ExitInvalidUsage},
		{"incomplete", fmt.Errorf("%w: a.c", runner.ErrIncompleteFormat), cli.ExitIncomplete},
		{"parse failure", fmt.Errorf("%w: a.c: x", runner.ErrParseFailure), cli.ExitDataError},
		{"malformed", fmt.Errorf("parse stdin: %w", replacements.ErrMalformedResponse), cli.ExitDataError},
		{"out of bounds", &replacements.EditError{Reason: replacements.ErrOutOfBounds}, cli.ExitDataError},
		{"not found", fmt.Errorf("%w: a.c", runner.ErrFileNotFound), cli.ExitIOError},
		{"bare not exist", fmt.Errorf("open x.xml: %w", fs.ErrNotExist), cli.ExitIOError},
		{"bare permission", &fs.PathError{Op: "open", Path: "x.xml", Err: fs.ErrPermission}, cli.ExitIOError},
		{"write failure", fmt.Errorf("%w: disk full", runner.ErrWriteFailure), cli.ExitIOError},
		{"config", &configloader.ValidationError{Field: "strategy", Message: "bad"}, cli.ExitConfigError},
		{"unknown", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	pending := &runner.JobResult{Changed: true}
	failed := runner.Outcome{Error: fmt.Errorf("%w: x", runner.ErrParseFailure)}

	tests := []struct {
		name   string
		result *runner.Result
		check  bool
		want   int
	}{
		{"nil result", nil, false, cli.ExitSuccess},
		{"pending without check", runner.NewResult(runner.Outcome{Result: pending}), false, cli.ExitSuccess},
		{"pending with check", runner.NewResult(runner.Outcome{Result: pending}), true, cli.ExitChangesPending},
		{"failure wins", runner.NewResult(runner.Outcome{Result: pending}, failed), true, cli.ExitDataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromResult(tt.result, tt.check); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}
