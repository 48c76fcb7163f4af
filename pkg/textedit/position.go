package textedit

import (
	"bytes"
	"fmt"
	"sort"
)

// LineIndex maps byte offsets in content to zero-based line and character
// positions, with characters counted in an Encoding. Editors speaking LSP
// use EncodingUTF16.
type LineIndex struct {
	content []byte
	starts  []int
	enc     Encoding
}

// NewLineIndex indexes the line starts of content.
func NewLineIndex(content []byte, enc Encoding) *LineIndex {
	starts := []int{0}
	for i := bytes.IndexByte(content, '\n'); i >= 0; {
		starts = append(starts, i+1)
		next := bytes.IndexByte(content[i+1:], '\n')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return &LineIndex{content: content, starts: starts, enc: enc}
}

// LineCount returns the number of lines, counting a final line without a
// trailing newline.
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// Position returns the line and character of a byte offset.
func (x *LineIndex) Position(offset int) (int, int, error) {
	if offset < 0 || offset > len(x.content) {
		return 0, 0, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetRange, offset, len(x.content))
	}

	line := sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	start := x.starts[line]

	character, err := NewOffsetConverter(x.content[start:], x.enc).Convert(offset - start)
	if err != nil {
		return 0, 0, err
	}
	return line, character, nil
}
