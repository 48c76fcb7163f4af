package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/cfreplace/pkg/replacements"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // #, OFFSET, LENGTH, KIND, VALUE
	minIndexWidth    = 3
	minOffsetWidth   = 6
	minLengthWidth   = 6
	kindWidth        = 7
	minValueWidth    = 20
	heavySeparator   = "="
	defaultTermWidth = 100
)

// Edit kinds shown in the KIND column.
const (
	KindInsert  = "insert"
	KindDelete  = "delete"
	KindReplace = "replace"
	KindNoop    = "noop"
)

// EditRow is a single row in the edit table.
type EditRow struct {
	Index  int
	Offset int
	Length int
	Kind   string
	Value  string
}

// EditKind classifies an edit for display.
func EditKind(e replacements.Edit) string {
	switch {
	case e.IsNoop():
		return KindNoop
	case e.IsInsertion():
		return KindInsert
	case e.IsDeletion():
		return KindDelete
	default:
		return KindReplace
	}
}

// EditRows converts a replacement set to table rows.
func EditRows(set *replacements.ReplacementSet) []EditRow {
	rows := make([]EditRow, 0, set.Len())
	for i, e := range set.All() {
		rows = append(rows, EditRow{
			Index:  i,
			Offset: e.Offset,
			Length: e.Length,
			Kind:   EditKind(e),
			Value:  e.Value,
		})
	}
	return rows
}

// TableFormatter formats replacement sets as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	index  int
	offset int
	length int
	value  int
}

// FormatEditTable formats rows as a table. Values are shown quoted so
// whitespace is visible.
func (t *TableFormatter) FormatEditTable(rows []EditRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths based on content.
func (t *TableFormatter) calculateColumnWidths(rows []EditRow) columnWidths {
	widths := columnWidths{
		index:  minIndexWidth,
		offset: minOffsetWidth,
		length: minLengthWidth,
		value:  minValueWidth,
	}

	for _, row := range rows {
		widths.index = max(widths.index, len(strconv.Itoa(row.Index)))
		widths.offset = max(widths.offset, len(strconv.Itoa(row.Offset)))
		widths.length = max(widths.length, len(strconv.Itoa(row.Length)))
		widths.value = max(widths.value, len(strconv.Quote(row.Value)))
	}

	// Constrain to terminal width by shrinking the value column.
	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.value = max(minValueWidth, widths.value-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.index + widths.offset + widths.length + kindWidth + widths.value +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %*s  %*s  %*s  %-*s  %-*s",
		widths.index, "#",
		widths.offset, "OFFSET",
		widths.length, "LENGTH",
		kindWidth, "KIND",
		widths.value, "VALUE",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row EditRow, widths columnWidths) string {
	content := fmt.Sprintf(" %*d  %*d  %*d  %-*s  %s",
		widths.index, row.Index,
		widths.offset, row.Offset,
		widths.length, row.Length,
		kindWidth, row.Kind,
		truncateString(strconv.Quote(row.Value), widths.value),
	)
	return t.getRowStyle(row.Kind).Render(content)
}

func (t *TableFormatter) getRowStyle(kind string) lipgloss.Style {
	switch kind {
	case KindInsert:
		return t.styles.TableInsert
	case KindDelete:
		return t.styles.TableDelete
	case KindReplace:
		return t.styles.TableReplace
	default:
		return t.styles.TableNoop
	}
}

// formatLegend explains the row colors.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Offsets and lengths are byte positions in the original source")
	}

	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s",
		t.styles.TableInsert.Render(KindInsert),
		t.styles.TableDelete.Render(KindDelete),
		t.styles.TableReplace.Render(KindReplace),
	))
}

// FormatSetSummary formats a one-line description of a replacement set.
func (t *TableFormatter) FormatSetSummary(set *replacements.ReplacementSet) string {
	counts := map[string]int{}
	for _, e := range set.All() {
		counts[EditKind(e)]++
	}

	parts := []string{plural(set.Len(), "replacement", "replacements")}
	for _, kind := range []string{KindInsert, KindDelete, KindReplace, KindNoop} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, t.getRowStyle(kind).Render(fmt.Sprintf("%d %s", n, kind)))
		}
	}
	if cursor, ok := set.Cursor(); ok {
		parts = append(parts, fmt.Sprintf("cursor %d", cursor))
	}
	if set.IncompleteFormat() {
		parts = append(parts, t.styles.Warning.Render("incomplete format"))
	}

	return " " + strings.Join(parts, " | ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if len(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return str[:maxLen]
	}
	return str[:maxLen-3] + "..."
}
