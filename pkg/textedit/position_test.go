package textedit_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/cfreplace/pkg/textedit"
)

func TestLineIndex_Position(t *testing.T) {
	t.Parallel()

	// "é" is two bytes and one UTF-16 unit; "😀" is four bytes and two units.
	content := []byte("int x;\n// é😀 z\n\nend")

	tests := []struct {
		offset   int
		enc      textedit.Encoding
		wantLine int
		wantChar int
	}{
		{0, textedit.EncodingUTF16, 0, 0},
		{6, textedit.EncodingUTF16, 0, 6},
		{7, textedit.EncodingUTF16, 1, 0},
		{12, textedit.EncodingUTF16, 1, 4},
		{12, textedit.EncodingUTF8, 1, 5},
		{17, textedit.EncodingUTF16, 1, 7},
		{17, textedit.EncodingRunes, 1, 6},
		{17, textedit.EncodingUTF8, 1, 10},
		{19, textedit.EncodingUTF16, 2, 0},
		{20, textedit.EncodingUTF16, 3, 0},
		{23, textedit.EncodingUTF16, 3, 3},
	}

	for _, tt := range tests {
		index := textedit.NewLineIndex(content, tt.enc)
		line, char, err := index.Position(tt.offset)
		if err != nil {
			t.Errorf("Position(%d, %s) error = %v", tt.offset, tt.enc, err)
			continue
		}
		if line != tt.wantLine || char != tt.wantChar {
			t.Errorf("Position(%d, %s) = %d:%d, want %d:%d", tt.offset, tt.enc, line, char, tt.wantLine, tt.wantChar)
		}
	}
}

func TestLineIndex_Errors(t *testing.T) {
	t.Parallel()

	content := []byte("é\n")
	index := textedit.NewLineIndex(content, textedit.EncodingUTF16)

	if _, _, err := index.Position(1); !errors.Is(err, textedit.ErrSplitRune) {
		t.Errorf("Position(1) error = %v, want ErrSplitRune", err)
	}
	if _, _, err := index.Position(4); !errors.Is(err, textedit.ErrOffsetRange) {
		t.Errorf("Position(4) error = %v, want ErrOffsetRange", err)
	}
	if got := index.LineCount(); got != 2 {
		t.Errorf("LineCount() = %d, want 2", got)
	}
}
