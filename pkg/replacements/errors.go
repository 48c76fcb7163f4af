package replacements

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Sentinel errors for categorization via errors.Is.
var (
	// ErrMalformedResponse matches every FormatResponseError.
	ErrMalformedResponse = errors.New("malformed formatter response")

	// ErrInvalidAttribute matches FormatResponseErrors caused by a missing,
	// non-numeric, or negative replacement attribute.
	ErrInvalidAttribute = errors.New("missing or invalid attribute")

	// ErrOutOfBounds indicates an edit reaching outside the target buffer.
	ErrOutOfBounds = errors.New("edit out of bounds")

	// ErrUnordered indicates an edit starting before its predecessor ends.
	ErrUnordered = errors.New("edits overlap or are out of order")

	errEmptyResponse   = errors.New("empty response")
	errMissing         = errors.New("attribute is missing")
	errNegative        = errors.New("value is negative")
	errMultipleCursors = errors.New("more than one <cursor> element")
)

// ErrorKind classifies a FormatResponseError.
type ErrorKind int

const (
	// KindMalformedResponse covers XML syntax errors and schema mismatches.
	KindMalformedResponse ErrorKind = iota

	// KindInvalidAttribute covers bad offset, length, or incomplete_format
	// attributes. It is a sub-case of KindMalformedResponse.
	KindInvalidAttribute
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedResponse:
		return "malformed response"
	case KindInvalidAttribute:
		return "invalid attribute"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// FormatResponseError reports a response that could not be parsed. The raw
// payload is always attached so it can be shown to the user or filed in a
// bug report.
type FormatResponseError struct {
	Kind ErrorKind

	// Raw is the complete response text that failed to parse.
	Raw string

	// Index is the zero-based position of the offending <replacement>, or -1.
	Index int

	// Attr names the offending attribute, if any.
	Attr string

	Err error
}

func (e *FormatResponseError) Error() string {
	var b strings.Builder
	b.WriteString("parse replacements: ")
	b.WriteString(e.Kind.String())
	if e.Index >= 0 {
		fmt.Fprintf(&b, ": replacement %d", e.Index)
	}
	if e.Attr != "" {
		fmt.Fprintf(&b, ": attribute %q", e.Attr)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *FormatResponseError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match the package sentinels by kind.
func (e *FormatResponseError) Is(target error) bool {
	switch target {
	case ErrMalformedResponse:
		return true
	case ErrInvalidAttribute:
		return e.Kind == KindInvalidAttribute
	default:
		return false
	}
}

// Snippet returns at most n bytes of the raw payload, for log lines. The
// cut never splits a UTF-8 sequence.
func (e *FormatResponseError) Snippet(n int) string {
	if n <= 0 || len(e.Raw) <= n {
		return e.Raw
	}
	for n > 0 && !utf8.RuneStart(e.Raw[n]) {
		n--
	}
	return e.Raw[:n] + "..."
}

func malformed(raw []byte, err error) *FormatResponseError {
	return &FormatResponseError{
		Kind:  KindMalformedResponse,
		Raw:   string(raw),
		Index: -1,
		Err:   err,
	}
}

func invalidAttribute(raw []byte, index int, attr string, err error) *FormatResponseError {
	return &FormatResponseError{
		Kind:  KindInvalidAttribute,
		Raw:   string(raw),
		Index: index,
		Attr:  attr,
		Err:   err,
	}
}

// EditError describes an edit that cannot be applied to a buffer.
type EditError struct {
	Index  int
	Edit   Edit
	Reason error
	Detail string
}

func (e *EditError) Error() string {
	return fmt.Sprintf("replacement %d (offset %d, length %d): %v: %s",
		e.Index, e.Edit.Offset, e.Edit.Length, e.Reason, e.Detail)
}

func (e *EditError) Unwrap() error {
	return e.Reason
}
