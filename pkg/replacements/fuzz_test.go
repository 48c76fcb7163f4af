package replacements_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/cfreplace/pkg/replacements"
)

func FuzzParse(f *testing.F) {
	f.Add("<?xml version='1.0'?>\n<replacements xml:space='preserve' incomplete_format='false'>\n" +
		"<replacement offset='3' length='2'> </replacement>\n</replacements>\n")
	f.Add("<replacements incomplete_format='true'><cursor>6</cursor><replacement offset='0' length='0'>&#10;&#13;&lt;</replacement></replacements>")
	f.Add("<replacements><replacement offset='1' length='1'>a<b/>c</replacement></replacements>")
	f.Add("note <replacements/>")
	f.Add("")

	f.Fuzz(func(t *testing.T, raw string) {
		set, err := replacements.Parse(raw)
		if err != nil {
			if set != nil {
				t.Fatal("Parse returned a set together with an error")
			}
			return
		}

		var buf bytes.Buffer
		if _, err := set.WriteTo(&buf); err != nil {
			t.Fatalf("WriteTo() error = %v", err)
		}

		again, err := replacements.Parse(buf.String())
		if err != nil {
			t.Fatalf("written response does not parse: %v\n%s", err, buf.String())
		}
		if again.IncompleteFormat() != set.IncompleteFormat() || again.Len() != set.Len() {
			t.Fatalf("round trip changed the set:\n%s", buf.String())
		}
		for i, e := range set.All() {
			if again.At(i) != e {
				t.Fatalf("edit %d = %v after round trip, want %v", i, again.At(i), e)
			}
		}
	})
}
