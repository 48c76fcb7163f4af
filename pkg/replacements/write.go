package replacements

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// WriteTo writes the set in the format clang-format prints with
// --output-replacements-xml, one element per line, cursor first. Parsing
// the output yields an equal set. A set without a space hint is written
// with xml:space='preserve', since replacement values are
// whitespace-sensitive. Hints other than "preserve" and "default" are not
// valid xml:space values and keep a plain space attribute.
func (s *ReplacementSet) WriteTo(w io.Writer) (int64, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", "version='1.0'")
	doc.CreateText("\n")

	// Carriage returns inside values must survive the round trip, which
	// the canonical text escaping guarantees.
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.AttrSingleQuote = true

	root := doc.CreateElement("replacements")
	space, ok := s.Space()
	if !ok {
		space = "preserve"
	}
	root.CreateAttr(spaceAttr(space), space)
	root.CreateAttr("incomplete_format", strconv.FormatBool(s.incompleteFormat))
	root.CreateText("\n")

	if s.hasCursor {
		root.CreateElement("cursor").SetText(strconv.Itoa(s.cursor))
		root.CreateText("\n")
	}

	for _, e := range s.edits {
		el := root.CreateElement("replacement")
		el.CreateAttr("offset", strconv.Itoa(e.Offset))
		el.CreateAttr("length", strconv.Itoa(e.Length))
		el.SetText(e.Value)
		root.CreateText("\n")
	}

	doc.CreateText("\n")
	return doc.WriteTo(w)
}

func spaceAttr(value string) string {
	switch value {
	case "preserve", "default":
		return "xml:space"
	default:
		return "space"
	}
}
