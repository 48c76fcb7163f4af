// Package replacements parses the replacement list that clang-format prints
// when invoked with --output-replacements-xml.
//
// A response looks like:
//
//	<?xml version='1.0'?>
//	<replacements xml:space='preserve' incomplete_format='false'>
//	<replacement offset='106' length='8'>    </replacement>
//	</replacements>
//
// Offsets and lengths are byte positions in the original, unmodified source.
// The parsed ReplacementSet is immutable; callers hand its edits to a buffer
// (see package textedit) which applies them in a compensating order.
package replacements

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Edit is a single span substitution: Length bytes starting at Offset are
// replaced with Value. An empty Value is a deletion; a zero Length is an
// insertion.
type Edit struct {
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Value  string `json:"value"`
}

// End returns the exclusive end offset of the replaced span.
func (e Edit) End() int {
	return e.Offset + e.Length
}

// IsDeletion reports whether the edit removes text without inserting any.
func (e Edit) IsDeletion() bool {
	return e.Value == "" && e.Length > 0
}

// IsInsertion reports whether the edit inserts text without removing any.
func (e Edit) IsInsertion() bool {
	return e.Length == 0 && e.Value != ""
}

// IsNoop reports whether the edit neither removes nor inserts text.
func (e Edit) IsNoop() bool {
	return e.Length == 0 && e.Value == ""
}

func (e Edit) String() string {
	return fmt.Sprintf("[%d+%d]=%q", e.Offset, e.Length, e.Value)
}

// ReplacementSet is the parsed formatter response.
type ReplacementSet struct {
	incompleteFormat bool

	space    string
	hasSpace bool

	cursor    int
	hasCursor bool

	edits []Edit
}

// SetOption configures a ReplacementSet built with NewReplacementSet.
type SetOption func(*ReplacementSet)

// WithIncompleteFormat sets the partial-format indicator.
func WithIncompleteFormat(incomplete bool) SetOption {
	return func(s *ReplacementSet) {
		s.incompleteFormat = incomplete
	}
}

// WithSpace sets the pass-through space hint.
func WithSpace(space string) SetOption {
	return func(s *ReplacementSet) {
		s.space = space
		s.hasSpace = true
	}
}

// WithCursor sets the cursor position reported by the formatter.
func WithCursor(cursor int) SetOption {
	return func(s *ReplacementSet) {
		s.cursor = cursor
		s.hasCursor = true
	}
}

// NewReplacementSet builds a set from already-known edits. The slice is
// copied, so later changes by the caller are not observed.
func NewReplacementSet(edits []Edit, opts ...SetOption) *ReplacementSet {
	set := &ReplacementSet{edits: slices.Clone(edits)}
	if set.edits == nil {
		set.edits = []Edit{}
	}
	for _, opt := range opts {
		opt(set)
	}
	return set
}

// IncompleteFormat reports whether the formatter could only partially format
// its input, typically because of syntax errors. The edits are still usable.
func (s *ReplacementSet) IncompleteFormat() bool {
	return s.incompleteFormat
}

// Space returns the root "space" attribute verbatim, and whether it was
// present.
func (s *ReplacementSet) Space() (string, bool) {
	return s.space, s.hasSpace
}

// Cursor returns the post-format cursor position, and whether the formatter
// reported one.
func (s *ReplacementSet) Cursor() (int, bool) {
	return s.cursor, s.hasCursor
}

// Len returns the number of edits.
func (s *ReplacementSet) Len() int {
	return len(s.edits)
}

// IsEmpty reports whether the set carries no edits.
func (s *ReplacementSet) IsEmpty() bool {
	return len(s.edits) == 0
}

// At returns the i-th edit in document order.
func (s *ReplacementSet) At(i int) Edit {
	return s.edits[i]
}

// Edits returns a copy of the edits in document order.
func (s *ReplacementSet) Edits() []Edit {
	return slices.Clone(s.edits)
}

// All iterates over the edits in document order.
func (s *ReplacementSet) All() iter.Seq2[int, Edit] {
	return func(yield func(int, Edit) bool) {
		for i, e := range s.edits {
			if !yield(i, e) {
				return
			}
		}
	}
}

type jsonSet struct {
	IncompleteFormat bool    `json:"incompleteFormat"`
	Space            *string `json:"space,omitempty"`
	Cursor           *int    `json:"cursor,omitempty"`
	Edits            []Edit  `json:"edits"`
}

// MarshalJSON implements json.Marshaler.
func (s *ReplacementSet) MarshalJSON() ([]byte, error) {
	out := jsonSet{
		IncompleteFormat: s.incompleteFormat,
		Edits:            s.edits,
	}
	if s.hasSpace {
		out.Space = &s.space
	}
	if s.hasCursor {
		out.Cursor = &s.cursor
	}
	if out.Edits == nil {
		out.Edits = []Edit{}
	}
	return json.Marshal(out)
}
