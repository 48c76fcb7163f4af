package runner_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	// unformatted has a doubled space that the response below collapses.
	unformatted = "int  x;\n"
	formatted   = "int x;\n"
)

// collapseResponse is what clang-format prints for unformatted.
const collapseResponse = `<?xml version='1.0'?>
<replacements xml:space='preserve' incomplete_format='false'>
<replacement offset='3' length='2'> </replacement>
</replacements>
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// writePair writes a source and its sibling response.
func writePair(t *testing.T, source, content, response string) {
	t.Helper()
	writeFile(t, source, content)
	writeFile(t, source+".replacements.xml", response)
}

// response builds a replacements document from offset/length/value triples.
func response(incomplete bool, edits ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<replacements xml:space='preserve' incomplete_format='%t'>\n", incomplete)
	for i := 0; i+2 < len(edits); i += 3 {
		fmt.Fprintf(&b, "<replacement offset='%d' length='%d'>%s</replacement>\n", edits[i], edits[i+1], edits[i+2])
	}
	b.WriteString("</replacements>\n")
	return b.String()
}
