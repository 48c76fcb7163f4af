package replacements

import "fmt"

// ValidateOrder checks that every edit starts at or after the end of the one
// before it. Touching spans and repeated insertion points are accepted.
func (s *ReplacementSet) ValidateOrder() error {
	for i := 1; i < len(s.edits); i++ {
		prev, curr := s.edits[i-1], s.edits[i]
		if curr.Offset < prev.Offset || curr.Offset-prev.Offset < prev.Length {
			return &EditError{
				Index:  i,
				Edit:   curr,
				Reason: ErrUnordered,
				Detail: fmt.Sprintf("starts at %d before previous edit ends at %d", curr.Offset, prev.End()),
			}
		}
	}
	return nil
}

// Validate checks the set against a buffer of bufferLen bytes: every span
// must lie inside the buffer and the edits must be ordered.
func (s *ReplacementSet) Validate(bufferLen int) error {
	for i, e := range s.edits {
		switch {
		case e.Offset < 0:
			return &EditError{Index: i, Edit: e, Reason: ErrOutOfBounds, Detail: "negative offset"}
		case e.Length < 0:
			return &EditError{Index: i, Edit: e, Reason: ErrOutOfBounds, Detail: "negative length"}
		case e.Offset > bufferLen:
			return &EditError{
				Index:  i,
				Edit:   e,
				Reason: ErrOutOfBounds,
				Detail: fmt.Sprintf("offset %d exceeds buffer length %d", e.Offset, bufferLen),
			}
		case e.Length > bufferLen-e.Offset:
			return &EditError{
				Index:  i,
				Edit:   e,
				Reason: ErrOutOfBounds,
				Detail: fmt.Sprintf("length %d runs past buffer length %d", e.Length, bufferLen),
			}
		}
	}
	return s.ValidateOrder()
}
