package textedit_test

import (
	"testing"

	"github.com/yaklabco/cfreplace/pkg/textedit"
)

func FuzzApply(f *testing.F) {
	f.Add([]byte("int main(){return 0;}"), 3, 2, "  ", 10, 0, "\n")
	f.Add([]byte("a\nb\nc\n"), 0, 0, "x", 0, 0, "y")
	f.Add([]byte("é😀"), 0, 2, "e", 2, 4, "")

	f.Fuzz(func(t *testing.T, content []byte, s1, l1 int, t1 string, s2, l2 int, t2 string) {
		edits := []textedit.TextEdit{
			{StartOffset: s1, EndOffset: s1 + l1, NewText: t1},
			{StartOffset: s2, EndOffset: s2 + l2, NewText: t2},
		}

		prepared, err := textedit.PrepareEdits(edits, len(content))
		if err != nil {
			return
		}

		want := string(textedit.ApplyEdits(content, prepared))

		for _, strategy := range textedit.Strategies() {
			buf := textedit.NewStringBuffer(content)
			if err := textedit.Apply(buf, edits, strategy, textedit.EncodingUTF8); err != nil {
				t.Fatalf("Apply(%s) error = %v", strategy, err)
			}
			if buf.String() != want {
				t.Errorf("Apply(%s) = %q, want %q", strategy, buf.String(), want)
			}
		}

		// Must not panic.
		diff := textedit.GenerateDiff("fuzz.c", content, prepared)
		if diff != nil && string(diff.Modified) != want {
			t.Errorf("diff.Modified = %q, want %q", diff.Modified, want)
		}
	})
}
