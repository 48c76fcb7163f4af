package textedit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding names the unit that offsets are counted in.
type Encoding string

const (
	// EncodingUTF8 counts bytes. clang-format reports offsets this way.
	EncodingUTF8 Encoding = "utf8"

	// EncodingUTF16 counts UTF-16 code units.
	EncodingUTF16 Encoding = "utf16"

	// EncodingRunes counts Unicode code points.
	EncodingRunes Encoding = "runes"
)

// Offset conversion errors.
var (
	ErrUnknownEncoding = errors.New("unknown offset encoding")
	ErrSplitRune       = errors.New("offset splits a multi-byte character")
	ErrOffsetRange     = errors.New("offset outside content")
)

// Encodings returns all valid encodings.
func Encodings() []Encoding {
	return []Encoding{EncodingUTF8, EncodingUTF16, EncodingRunes}
}

// ParseEncoding converts a string into an Encoding. "utf-8" and "utf-16"
// are accepted as aliases.
func ParseEncoding(s string) (Encoding, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	enc := Encoding(normalized)
	if !slices.Contains(Encodings(), enc) {
		return "", fmt.Errorf("%w: %q (valid: utf8, utf16, runes)", ErrUnknownEncoding, s)
	}
	return enc, nil
}

// Measure returns the length of text in enc units.
func Measure(text string, enc Encoding) int {
	switch enc {
	case EncodingUTF16:
		n := 0
		for _, r := range text {
			n += runeUnits(r)
		}
		return n
	case EncodingRunes:
		return utf8.RuneCountInString(text)
	default:
		return len(text)
	}
}

func runeUnits(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

// OffsetConverter translates byte offsets in content into another
// encoding. Conversions are cheapest when requested in ascending order; a
// smaller offset than the previous one restarts the scan from the beginning.
type OffsetConverter struct {
	content []byte
	enc     Encoding

	byteCursor int
	unitCursor int
}

// NewOffsetConverter returns a converter over content.
func NewOffsetConverter(content []byte, enc Encoding) *OffsetConverter {
	return &OffsetConverter{content: content, enc: enc}
}

// Convert returns offset expressed in the converter's encoding.
func (c *OffsetConverter) Convert(offset int) (int, error) {
	if offset < 0 || offset > len(c.content) {
		return 0, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetRange, offset, len(c.content))
	}
	if c.enc == EncodingUTF8 {
		return offset, nil
	}

	if offset < c.byteCursor {
		c.byteCursor, c.unitCursor = 0, 0
	}

	for c.byteCursor < offset {
		r, size := utf8.DecodeRune(c.content[c.byteCursor:])
		if c.byteCursor+size > offset {
			return 0, fmt.Errorf("%w: byte %d", ErrSplitRune, offset)
		}
		c.byteCursor += size
		if c.enc == EncodingUTF16 {
			c.unitCursor += runeUnits(r)
		} else {
			c.unitCursor++
		}
	}

	return c.unitCursor, nil
}

// ConvertEdits re-expresses byte-offset edits over content in enc units.
func ConvertEdits(content []byte, edits []TextEdit, enc Encoding) ([]TextEdit, error) {
	if !slices.Contains(Encodings(), enc) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}

	converter := NewOffsetConverter(content, enc)
	out := make([]TextEdit, len(edits))
	for i, e := range edits {
		start, err := converter.Convert(e.StartOffset)
		if err != nil {
			return nil, fmt.Errorf("edit %d start: %w", i, err)
		}
		end, err := converter.Convert(e.EndOffset)
		if err != nil {
			return nil, fmt.Errorf("edit %d end: %w", i, err)
		}
		out[i] = TextEdit{StartOffset: start, EndOffset: end, NewText: e.NewText}
	}
	return out, nil
}
