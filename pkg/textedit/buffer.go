package textedit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf16"
)

// ErrRange is returned by a Buffer when a replacement range is invalid.
var ErrRange = errors.New("range outside buffer")

// ErrUnknownStrategy is returned for an unrecognised Strategy.
var ErrUnknownStrategy = errors.New("unknown apply strategy")

// Buffer is a mutable text buffer, such as an editor document. Offsets are
// in the buffer's own units (see Encoding).
type Buffer interface {
	Len() int
	Replace(start, end int, text string) error
}

// Strategy selects how edits are applied to a mutable Buffer.
type Strategy string

const (
	// StrategyDescending applies edits from last to first, so earlier
	// offsets are never disturbed.
	StrategyDescending Strategy = "descending"

	// StrategyDelta applies edits from first to last, shifting each by the
	// accumulated size change of the edits before it.
	StrategyDelta Strategy = "delta"
)

// Strategies returns all valid strategies.
func Strategies() []Strategy {
	return []Strategy{StrategyDescending, StrategyDelta}
}

// ParseStrategy converts a string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	strategy := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Strategies(), strategy) {
		return "", fmt.Errorf("%w: %q (valid: descending, delta)", ErrUnknownStrategy, s)
	}
	return strategy, nil
}

// Apply validates edits against buf and applies them with the given
// strategy. Edit offsets and buf must both use enc units; enc is needed to
// measure replacement text when tracking the delta.
func Apply(buf Buffer, edits []TextEdit, strategy Strategy, enc Encoding) error {
	prepared, err := PrepareEdits(edits, buf.Len())
	if err != nil {
		return err
	}

	switch strategy {
	case StrategyDescending:
		for i := len(prepared) - 1; i >= 0; i-- {
			e := prepared[i]
			if err := buf.Replace(e.StartOffset, e.EndOffset, e.NewText); err != nil {
				return fmt.Errorf("apply edit %d: %w", i, err)
			}
		}
	case StrategyDelta:
		accumulator := 0
		for i, e := range prepared {
			if err := buf.Replace(accumulator+e.StartOffset, accumulator+e.EndOffset, e.NewText); err != nil {
				return fmt.Errorf("apply edit %d: %w", i, err)
			}
			accumulator += Measure(e.NewText, enc) - e.Len()
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}

	return nil
}

// StringBuffer is an in-memory UTF-8 byte buffer.
type StringBuffer struct {
	data []byte
}

// NewStringBuffer returns a buffer holding a copy of content.
func NewStringBuffer(content []byte) *StringBuffer {
	return &StringBuffer{data: slices.Clone(content)}
}

// Len returns the buffer length in bytes.
func (b *StringBuffer) Len() int {
	return len(b.data)
}

// Replace replaces bytes [start, end) with text.
func (b *StringBuffer) Replace(start, end int, text string) error {
	if start < 0 || end < start || end > len(b.data) {
		return fmt.Errorf("%w: [%d:%d] in %d bytes", ErrRange, start, end, len(b.data))
	}
	b.data = slices.Replace(b.data, start, end, []byte(text)...)
	return nil
}

// Bytes returns the buffer contents. The slice aliases the buffer.
func (b *StringBuffer) Bytes() []byte {
	return b.data
}

func (b *StringBuffer) String() string {
	return string(b.data)
}

// UTF16Buffer stores text as UTF-16 code units, the way JVM and JavaScript
// editors do.
type UTF16Buffer struct {
	units []uint16
}

// NewUTF16Buffer returns a buffer holding s.
func NewUTF16Buffer(s string) *UTF16Buffer {
	return &UTF16Buffer{units: utf16.Encode([]rune(s))}
}

// Len returns the buffer length in UTF-16 code units.
func (b *UTF16Buffer) Len() int {
	return len(b.units)
}

// Replace replaces code units [start, end) with text.
func (b *UTF16Buffer) Replace(start, end int, text string) error {
	if start < 0 || end < start || end > len(b.units) {
		return fmt.Errorf("%w: [%d:%d] in %d code units", ErrRange, start, end, len(b.units))
	}
	b.units = slices.Replace(b.units, start, end, utf16.Encode([]rune(text))...)
	return nil
}

func (b *UTF16Buffer) String() string {
	return string(utf16.Decode(b.units))
}
