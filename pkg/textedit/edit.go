// Package textedit applies formatter replacements to text buffers.
//
// Replacement offsets always refer to the original, unmodified text. A buffer
// that is mutated in place must therefore either apply edits from last to
// first, or carry a running delta while applying them first to last. Both
// strategies are provided; ApplyEdits sidesteps the problem by building a new
// buffer in a single pass.
package textedit

import (
	"github.com/yaklabco/cfreplace/pkg/replacements"
)

// TextEdit replaces the half-open range [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	// StartOffset is the index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// Len returns the number of units removed by the edit.
func (e TextEdit) Len() int {
	return e.EndOffset - e.StartOffset
}

// FromReplacements converts a parsed set into byte-offset edits, keeping
// document order.
func FromReplacements(set *replacements.ReplacementSet) []TextEdit {
	edits := make([]TextEdit, 0, set.Len())
	for _, r := range set.All() {
		edits = append(edits, TextEdit{
			StartOffset: r.Offset,
			EndOffset:   r.End(),
			NewText:     r.Value,
		})
	}
	return edits
}
