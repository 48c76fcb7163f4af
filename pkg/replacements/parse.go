package replacements

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type xmlResponse struct {
	XMLName          xml.Name         `xml:"replacements"`
	IncompleteFormat *string          `xml:"incomplete_format,attr"`
	Space            *string          `xml:"space,attr"`
	Cursors          []xmlCursor      `xml:"cursor"`
	Replacements     []xmlReplacement `xml:"replacement"`
	Unknown          []xmlUnknown     `xml:",any"`
}

type xmlReplacement struct {
	Offset  *string      `xml:"offset,attr"`
	Length  *string      `xml:"length,attr"`
	Value   string       `xml:",chardata"`
	Unknown []xmlUnknown `xml:",any"`
}

type xmlCursor struct {
	Value   string       `xml:",chardata"`
	Unknown []xmlUnknown `xml:",any"`
}

type xmlUnknown struct {
	XMLName xml.Name
}

// Parse parses a formatter response. On failure the error is always a
// *FormatResponseError and no partial set is returned.
func Parse(raw string) (*ReplacementSet, error) {
	return ParseBytes([]byte(raw))
}

// Decode reads r to the end and parses the result.
func Decode(r io.Reader) (*ReplacementSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed(raw, fmt.Errorf("read response: %w", err))
	}
	return ParseBytes(raw)
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(raw []byte) (*ReplacementSet, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, malformed(raw, errEmptyResponse)
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = true

	start, err := expectRoot(dec)
	if err != nil {
		return nil, malformed(raw, err)
	}

	var resp xmlResponse
	if err := dec.DecodeElement(&resp, &start); err != nil {
		return nil, malformed(raw, err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, malformed(raw, err)
	}

	return resp.build(raw)
}

// expectRoot skips the prolog and returns the root element. Only
// whitespace, comments, processing instructions and directives may come
// before it.
func expectRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, errors.New("no root element")
		}
		if err != nil {
			return xml.StartElement{}, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return xml.StartElement{}, errors.New("unexpected text before root element")
			}
		case xml.EndElement:
			return xml.StartElement{}, fmt.Errorf("unexpected </%s> before root element", t.Name.Local)
		}
	}
}

// expectEOF rejects anything but whitespace, comments, and processing
// instructions after the root element.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New("unexpected text after root element")
			}
		}
	}
}

func (r *xmlResponse) build(raw []byte) (*ReplacementSet, error) {
	if len(r.Unknown) > 0 {
		return nil, malformed(raw, fmt.Errorf("unexpected element <%s>", r.Unknown[0].XMLName.Local))
	}

	set := &ReplacementSet{
		edits: make([]Edit, 0, len(r.Replacements)),
	}

	if r.IncompleteFormat != nil {
		incomplete, err := strconv.ParseBool(strings.TrimSpace(*r.IncompleteFormat))
		if err != nil {
			return nil, invalidAttribute(raw, -1, "incomplete_format", err)
		}
		set.incompleteFormat = incomplete
	}

	if r.Space != nil {
		set.space = *r.Space
		set.hasSpace = true
	}

	switch len(r.Cursors) {
	case 0:
	case 1:
		if u := r.Cursors[0].Unknown; len(u) > 0 {
			return nil, malformed(raw, fmt.Errorf("cursor: unexpected element <%s>", u[0].XMLName.Local))
		}
		cursor, err := parseNonNegative(&r.Cursors[0].Value)
		if err != nil {
			return nil, malformed(raw, fmt.Errorf("cursor: %w", err))
		}
		set.cursor = cursor
		set.hasCursor = true
	default:
		return nil, malformed(raw, errMultipleCursors)
	}

	for i, rep := range r.Replacements {
		if len(rep.Unknown) > 0 {
			return nil, malformed(raw, fmt.Errorf("replacement %d: unexpected element <%s>", i, rep.Unknown[0].XMLName.Local))
		}
		offset, err := parseNonNegative(rep.Offset)
		if err != nil {
			return nil, invalidAttribute(raw, i, "offset", err)
		}
		length, err := parseNonNegative(rep.Length)
		if err != nil {
			return nil, invalidAttribute(raw, i, "length", err)
		}
		set.edits = append(set.edits, Edit{
			Offset: offset,
			Length: length,
			Value:  rep.Value,
		})
	}

	return set, nil
}

func parseNonNegative(value *string) (int, error) {
	if value == nil {
		return 0, errMissing
	}
	n, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}
