package textedit

import (
	"bytes"
	"fmt"
	"strings"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Original is the original file content.
	Original []byte

	// Modified is the content after the edits were applied.
	Modified []byte

	// Hunks contains the diff hunks.
	Hunks []DiffHunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// DiffHunk represents a single hunk in a unified diff.
type DiffHunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []DiffLine
}

// DiffLine represents a single line in a diff hunk.
type DiffLine struct {
	Kind DiffLineKind

	// Content is the line content without the diff prefix.
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	// DiffLineContext is an unchanged context line.
	DiffLineContext DiffLineKind = iota

	// DiffLineAdd is a line added in the modified version.
	DiffLineAdd

	// DiffLineRemove is a line removed from the original version.
	DiffLineRemove
)

const contextLines = 3

// GenerateDiff renders the effect of prepared edits on original as a
// unified diff. Since the edits already say exactly which bytes change, no
// sequence alignment is needed: each run of edits sharing lines becomes one
// change block. Returns nil if the edits leave the content unchanged.
func GenerateDiff(path string, original []byte, edits []TextEdit) *Diff {
	modified := ApplyEdits(original, edits)
	if bytes.Equal(original, modified) {
		return nil
	}

	origLines := splitLines(original)
	changes := lineChanges(original, edits)
	if len(changes) == 0 {
		return nil
	}

	diff := &Diff{
		Path:     path,
		Original: original,
		Modified: modified,
		Hunks:    groupIntoHunks(changes, origLines),
	}
	for _, ch := range changes {
		diff.Additions += len(ch.added)
		diff.Deletions += len(ch.removed)
	}
	return diff
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			builder.WriteByte(line.Kind.prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// lineChange is a run of removed original lines replaced by added lines.
type lineChange struct {
	origLine int // 0-based index of the first removed line.
	modLine  int // 0-based index of the first added line.
	removed  []string
	added    []string
}

func (c lineChange) origEnd() int {
	return c.origLine + len(c.removed)
}

// lineChanges widens every edit to whole lines, merges edits that share a
// line, and trims lines the block leaves untouched.
func lineChanges(original []byte, edits []TextEdit) []lineChange {
	var (
		changes   []lineChange
		lineDelta int
		counted   int
		lineIdx   int
	)

	for i := 0; i < len(edits); {
		blockStart := lineStart(original, edits[i].StartOffset)
		blockEnd := lineEnd(original, edits[i].EndOffset)

		j := i + 1
		for j < len(edits) && lineStart(original, edits[j].StartOffset) < blockEnd {
			blockEnd = max(blockEnd, lineEnd(original, edits[j].EndOffset))
			j++
		}

		lineIdx += bytes.Count(original[counted:blockStart], []byte{'\n'})
		counted = blockStart

		oldBlock := original[blockStart:blockEnd]
		newBlock := applyWithin(original, edits[i:j], blockStart, blockEnd)

		oldLines := splitLines(oldBlock)
		newLines := splitLines(newBlock)
		prefix, suffix := commonLines(oldLines, newLines)

		if removed, added := oldLines[prefix:len(oldLines)-suffix], newLines[prefix:len(newLines)-suffix]; len(removed) > 0 || len(added) > 0 {
			changes = append(changes, lineChange{
				origLine: lineIdx + prefix,
				modLine:  lineIdx + lineDelta + prefix,
				removed:  removed,
				added:    added,
			})
		}
		lineDelta += len(newLines) - len(oldLines)

		i = j
	}

	return changes
}

// applyWithin returns original[from:to] with edits applied. Every edit must
// lie inside the range.
func applyWithin(original []byte, edits []TextEdit, from, to int) []byte {
	var out bytes.Buffer
	cursor := from
	for _, e := range edits {
		out.Write(original[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(original[cursor:to])
	return out.Bytes()
}

// lineStart returns the offset of the first byte of the line containing pos.
func lineStart(content []byte, pos int) int {
	return bytes.LastIndexByte(content[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line that
// contains pos, or len(content) on the last line.
func lineEnd(content []byte, pos int) int {
	idx := bytes.IndexByte(content[pos:], '\n')
	if idx < 0 {
		return len(content)
	}
	return pos + idx + 1
}

func commonLines(a, b []string) (int, int) {
	prefix := 0
	for prefix < len(a) && prefix < len(b) && a[prefix] == b[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(b)-prefix &&
		a[len(a)-1-suffix] == b[len(b)-1-suffix] {
		suffix++
	}
	return prefix, suffix
}

// groupIntoHunks merges changes separated by at most twice the context size
// and surrounds each group with context lines.
func groupIntoHunks(changes []lineChange, origLines []string) []DiffHunk {
	var hunks []DiffHunk

	for first := 0; first < len(changes); {
		last := first
		for last+1 < len(changes) && changes[last+1].origLine-changes[last].origEnd() <= contextLines*2 {
			last++
		}

		hunks = append(hunks, buildHunk(changes[first:last+1], origLines))
		first = last + 1
	}

	return hunks
}

func buildHunk(group []lineChange, origLines []string) DiffHunk {
	start := max(group[0].origLine-contextLines, 0)
	end := min(group[len(group)-1].origEnd()+contextLines, len(origLines))

	hunk := DiffHunk{
		OriginalStart: start + 1,
		ModifiedStart: start + group[0].modLine - group[0].origLine + 1,
	}

	addContext := func(lines []string) {
		for _, line := range lines {
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineContext, Content: line})
		}
		hunk.OriginalCount += len(lines)
		hunk.ModifiedCount += len(lines)
	}

	pos := start
	for _, ch := range group {
		addContext(origLines[pos:ch.origLine])
		for _, line := range ch.removed {
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineRemove, Content: line})
		}
		for _, line := range ch.added {
			hunk.Lines = append(hunk.Lines, DiffLine{Kind: DiffLineAdd, Content: line})
		}
		hunk.OriginalCount += len(ch.removed)
		hunk.ModifiedCount += len(ch.added)
		pos = ch.origEnd()
	}
	addContext(origLines[pos:end])

	// An empty side is addressed by the line before it.
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}

	return hunk
}

// splitLines splits content into lines, removing the trailing newline if present.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
