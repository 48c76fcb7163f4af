package textedit

import "github.com/bits-and-blooms/bitset"

// ChangedLines returns the 0-based lines of original that prepared edits
// rewrite. A change that only adds lines marks the line it is inserted
// before. Edits that leave their lines byte-identical mark nothing.
func ChangedLines(original []byte, edits []TextEdit) *bitset.BitSet {
	lines := bitset.New(0)

	for _, change := range lineChanges(original, edits) {
		if len(change.removed) == 0 {
			lines.Set(uint(change.origLine))
			continue
		}
		for i := range change.removed {
			lines.Set(uint(change.origLine + i))
		}
	}

	return lines
}
