//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
	"golang.org/x/tools/txtar"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":    Build,
	"t":    Test.Default,
	"l":    Lint.Default,
	"c":    Check,
	"i":    Install,
	"s":    Smoke,
	"f":    Test.Fuzz,
	"fmt":  Lint.Fmt,
	"cmp":  Bench.Compare,
	"cmpf": Bench.Fast,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// ---------------------------------------------------------------------------
// Top-level targets
// ---------------------------------------------------------------------------

// Build compiles the cfreplace binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir("bin/cfreplace", "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println("bin/cfreplace is up to date")
		return nil
	}
	fmt.Println("Building cfreplace...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", "bin/cfreplace", "./cmd/cfreplace")
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Rm("bin"); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}

// Install installs cfreplace to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing cfreplace...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/cfreplace")
}

// Smoke builds the binary and runs every saved response fixture through
// "cfreplace parse", failing on the first one that does not parse.
func Smoke() error {
	st.Deps(Build)
	fixtures, err := filepath.Glob(filepath.Join("pkg", "replacements", "testdata", "*.txtar"))
	if err != nil {
		return err
	}
	for _, fixture := range fixtures {
		ar, err := txtar.ParseFile(fixture)
		if err != nil {
			return fmt.Errorf("read %s: %w", fixture, err)
		}
		for _, f := range ar.Files {
			if f.Name != "response.xml" {
				continue
			}
			if err := smokeParse(fixture, f.Data); err != nil {
				return err
			}
		}
	}
	fmt.Println("✓ All fixtures parse")
	return nil
}

// ---------------------------------------------------------------------------
// Test namespace
// ---------------------------------------------------------------------------

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz runs each fuzz target for a short time. FUZZTIME overrides the
// per-target budget.
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("FUZZTIME"), "20s")
	targets := []struct{ pkg, name string }{
		{"./pkg/replacements/", "FuzzParse"},
		{"./pkg/textedit/", "FuzzApply"},
	}
	for _, tgt := range targets {
		fmt.Printf("Fuzzing %s for %s...\n", tgt.name, fuzzTime)
		if err := sh.RunV("go", "test", "-run=^$", "-fuzz=^"+tgt.name+"$", "-fuzztime="+fuzzTime, tgt.pkg); err != nil {
			return err
		}
	}
	return nil
}

// Integration runs the end-to-end command tests only.
func (Test) Integration() error {
	fmt.Println("Running CLI integration tests...")
	return sh.RunV("go", "test", "-race", "-run", "^TestIntegration_", "./internal/cli/")
}

// ---------------------------------------------------------------------------
// Lint namespace
// ---------------------------------------------------------------------------

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix (for CI pipelines).
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// ---------------------------------------------------------------------------
// CI namespace
// ---------------------------------------------------------------------------

// Gate runs all CI checks in idiomatic Go order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Test.Integration,
		CI.ModTidy,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	modBefore, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	sumBefore, err := os.ReadFile("go.sum")
	if err != nil {
		return fmt.Errorf("read go.sum: %w", err)
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	modAfter, err := os.ReadFile("go.mod")
	if err != nil {
		return fmt.Errorf("read go.mod after tidy: %w", err)
	}
	sumAfter, err := os.ReadFile("go.sum")
	if err != nil {
		return fmt.Errorf("read go.sum after tidy: %w", err)
	}

	if string(modBefore) != string(modAfter) || string(sumBefore) != string(sumAfter) {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// ---------------------------------------------------------------------------
// Bench namespace
// ---------------------------------------------------------------------------

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-bench=.", "-benchmem",
		"./...",
	)
}

// Compare runs the edit application benchmarks repeatedly so strategies
// can be compared with benchstat.
func (Bench) Compare() error {
	fmt.Println("Comparing edit application strategies...")
	return sh.RunV("go",
		"test", "-run=^$",
		"-bench=.", "-benchmem",
		"-count=6",
		"./pkg/textedit/", "./pkg/replacements/",
	)
}

// Fast runs a single short pass of the strategy benchmarks.
func (Bench) Fast() error {
	fmt.Println("Running quick strategy benchmarks...")
	return sh.RunV("go",
		"test", "-run=^$",
		"-bench=Apply", "-benchtime=200ms",
		"./pkg/textedit/",
	)
}

// ---------------------------------------------------------------------------
// Helpers (unexported, not targets)
// ---------------------------------------------------------------------------

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}

// smokeParse writes response to a temp file and parses it with the built binary.
func smokeParse(fixture string, response []byte) error {
	tmp, err := os.CreateTemp("", "cfreplace-smoke-*.xml")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(response); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	out, err := sh.Output("bin/cfreplace", "parse", "--format", "json", "--compact", tmp.Name())
	if err != nil {
		return fmt.Errorf("%s: %w", fixture, err)
	}
	fmt.Printf("  %s: %s\n", filepath.Base(fixture), out)
	return nil
}
