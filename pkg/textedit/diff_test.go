package textedit_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/cfreplace/pkg/textedit"
)

func TestGenerateDiff(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for no edits", func(t *testing.T) {
		t.Parallel()

		if diff := textedit.GenerateDiff("a.c", []byte("int x;\n"), nil); diff != nil {
			t.Error("expected nil diff")
		}
	})

	t.Run("returns nil when edits are no-ops", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{{StartOffset: 4, EndOffset: 5, NewText: "x"}}
		if diff := textedit.GenerateDiff("a.c", []byte("int x;\n"), edits); diff != nil {
			t.Error("expected nil diff")
		}
	})

	t.Run("single line change", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{{StartOffset: 2, EndOffset: 3, NewText: "x"}}
		diff := textedit.GenerateDiff("f.c", []byte("a\nb\nc\n"), edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}

		want := "--- a/f.c\n" +
			"+++ b/f.c\n" +
			"@@ -1,3 +1,3 @@\n" +
			" a\n" +
			"-b\n" +
			"+x\n" +
			" c\n"
		if got := diff.String(); got != want {
			t.Errorf("String() =\n%s\nwant\n%s", got, want)
		}
		if diff.Additions != 1 || diff.Deletions != 1 {
			t.Errorf("Additions/Deletions = %d/%d, want 1/1", diff.Additions, diff.Deletions)
		}
		if string(diff.Modified) != "a\nx\nc\n" {
			t.Errorf("Modified = %q", diff.Modified)
		}
	})

	t.Run("line insertion", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{{StartOffset: 2, EndOffset: 2, NewText: "x\n"}}
		diff := textedit.GenerateDiff("f.c", []byte("a\nb\n"), edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}

		hunk := diff.Hunks[0]
		if hunk.OriginalStart != 1 || hunk.OriginalCount != 2 ||
			hunk.ModifiedStart != 1 || hunk.ModifiedCount != 3 {
			t.Errorf("hunk header = -%d,%d +%d,%d, want -1,2 +1,3",
				hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		}
		if diff.Additions != 1 || diff.Deletions != 0 {
			t.Errorf("Additions/Deletions = %d/%d, want 1/0", diff.Additions, diff.Deletions)
		}
	})

	t.Run("empty original", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{{StartOffset: 0, EndOffset: 0, NewText: "int x;\n"}}
		diff := textedit.GenerateDiff("f.c", nil, edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if !strings.Contains(diff.String(), "@@ -0,0 +1,1 @@\n+int x;\n") {
			t.Errorf("unexpected diff:\n%s", diff.String())
		}
	})

	t.Run("joining lines", func(t *testing.T) {
		t.Parallel()

		// "f()\n{\n" -> "f() {\n"
		edits := []textedit.TextEdit{{StartOffset: 3, EndOffset: 4, NewText: " "}}
		diff := textedit.GenerateDiff("f.c", []byte("f()\n{\n}\n"), edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}

		want := "@@ -1,3 +1,2 @@\n" +
			"-f()\n" +
			"-{\n" +
			"+f() {\n" +
			" }\n"
		if !strings.HasSuffix(diff.String(), want) {
			t.Errorf("String() =\n%s\nwant suffix\n%s", diff.String(), want)
		}
	})
}

func numberedLines(n int) []byte {
	var b strings.Builder
	for i := range n {
		fmt.Fprintf(&b, "l%d\n", i)
	}
	return []byte(b.String())
}

func TestGenerateDiff_Hunks(t *testing.T) {
	t.Parallel()

	// Each line "lN\n" is 3 bytes for N < 10.
	content := numberedLines(10)

	t.Run("distant changes produce separate hunks", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{
			{StartOffset: 0, EndOffset: 2, NewText: "a\nb\nc"},
			{StartOffset: 27, EndOffset: 29, NewText: "X"},
		}
		diff := textedit.GenerateDiff("f.c", content, edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if len(diff.Hunks) != 2 {
			t.Fatalf("len(Hunks) = %d, want 2", len(diff.Hunks))
		}

		first := diff.Hunks[0]
		if first.OriginalStart != 1 || first.OriginalCount != 4 ||
			first.ModifiedStart != 1 || first.ModifiedCount != 6 {
			t.Errorf("first hunk = -%d,%d +%d,%d, want -1,4 +1,6",
				first.OriginalStart, first.OriginalCount, first.ModifiedStart, first.ModifiedCount)
		}

		second := diff.Hunks[1]
		if second.OriginalStart != 7 || second.OriginalCount != 4 ||
			second.ModifiedStart != 9 || second.ModifiedCount != 4 {
			t.Errorf("second hunk = -%d,%d +%d,%d, want -7,4 +9,4",
				second.OriginalStart, second.OriginalCount, second.ModifiedStart, second.ModifiedCount)
		}
	})

	t.Run("nearby changes share a hunk", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{
			{StartOffset: 3, EndOffset: 5, NewText: "A"},
			{StartOffset: 15, EndOffset: 17, NewText: "B"},
		}
		diff := textedit.GenerateDiff("f.c", content, edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if len(diff.Hunks) != 1 {
			t.Fatalf("len(Hunks) = %d, want 1", len(diff.Hunks))
		}

		hunk := diff.Hunks[0]
		if hunk.OriginalStart != 1 || hunk.OriginalCount != 9 {
			t.Errorf("hunk = -%d,%d, want -1,9", hunk.OriginalStart, hunk.OriginalCount)
		}
		if diff.Additions != 2 || diff.Deletions != 2 {
			t.Errorf("Additions/Deletions = %d/%d, want 2/2", diff.Additions, diff.Deletions)
		}
	})

	t.Run("edits on one line merge", func(t *testing.T) {
		t.Parallel()

		edits := []textedit.TextEdit{
			{StartOffset: 12, EndOffset: 12, NewText: "<"},
			{StartOffset: 14, EndOffset: 14, NewText: ">"},
		}
		diff := textedit.GenerateDiff("f.c", content, edits)
		if diff == nil {
			t.Fatal("expected non-nil diff")
		}
		if diff.Additions != 1 || diff.Deletions != 1 {
			t.Errorf("Additions/Deletions = %d/%d, want 1/1", diff.Additions, diff.Deletions)
		}
		if !strings.Contains(diff.String(), "-l4\n+<l4>\n") {
			t.Errorf("unexpected diff:\n%s", diff.String())
		}
	})
}

func TestDiff_Headers(t *testing.T) {
	t.Parallel()

	edits := []textedit.TextEdit{{StartOffset: 0, EndOffset: 1, NewText: "b"}}
	diff := textedit.GenerateDiff("/src/a.c", []byte("a\n"), edits)

	if got := diff.GitHeader(); got != "diff --git a/src/a.c b/src/a.c" {
		t.Errorf("GitHeader() = %q", got)
	}
	if !strings.HasPrefix(diff.FullString(), "diff --git a/src/a.c b/src/a.c\n--- a/src/a.c\n+++ b/src/a.c\n") {
		t.Errorf("FullString() = %q", diff.FullString())
	}

	var nilDiff *textedit.Diff
	if nilDiff.HasChanges() || nilDiff.String() != "" || nilDiff.GitHeader() != "" {
		t.Error("nil diff should be empty")
	}
}
