package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/cfreplace/internal/ui/pretty"
	"github.com/yaklabco/cfreplace/pkg/runner"
)

func TestFormatSummary_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	stats := runner.Stats{
		JobsTotal:      6,
		FilesProcessed: 5,
		FilesWritten:   3,
		FilesUnchanged: 2,
		FilesErrored:   1,
		EditsTotal:     14,
		EditsApplied:   12,
		LinesChanged:   9,
	}

	result := styles.FormatSummary(stats)

	assert.Contains(t, result, "Summary")
	assert.Contains(t, result, "Files checked:     5")
	assert.Contains(t, result, "Files formatted:   3")
	assert.Contains(t, result, "Files failed:      1")
	assert.Contains(t, result, "Replacements:      14")
	assert.Contains(t, result, "Edits applied:     12")
	assert.Contains(t, result, "Lines changed:     9")
	assert.Contains(t, result, "Some responses could not be applied")
	assert.NotContains(t, result, "Files skipped:")
}

func TestFormatSummary_Status(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"pending", runner.Stats{FilesProcessed: 2, FilesPending: 1}, "Files need formatting"},
		{"written", runner.Stats{FilesProcessed: 2, FilesWritten: 2}, "All files formatted"},
		{"incomplete", runner.Stats{FilesProcessed: 1, IncompleteFormats: 1}, "Incomplete:        1"},
		{"skipped", runner.Stats{FilesProcessed: 1, FilesSkipped: 1}, "Files skipped:     1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, styles.FormatSummary(tt.stats), tt.want)
		})
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "no jobs",
			stats: runner.Stats{},
			want:  "No formatter responses found\n",
		},
		{
			name:  "nothing to do",
			stats: runner.Stats{JobsTotal: 4, FilesProcessed: 4, FilesUnchanged: 4},
			want:  "All files already formatted (4 files checked)\n",
		},
		{
			name: "mixed",
			stats: runner.Stats{
				JobsTotal:      7,
				FilesProcessed: 6,
				FilesWritten:   1,
				FilesUnchanged: 4,
				FilesSkipped:   1,
				FilesErrored:   1,
				EditsApplied:   1,
				LinesChanged:   3,
			},
			want: "1 file formatted, 4 unchanged, 1 skipped, 1 failed (1 edit, 3 lines)\n",
		},
		{
			name:  "dry run",
			stats: runner.Stats{JobsTotal: 2, FilesProcessed: 2, FilesPending: 2, EditsApplied: 5, LinesChanged: 4},
			want:  "2 files would change (5 edits, 4 lines)\n",
		},
		{
			name:  "only failures",
			stats: runner.Stats{JobsTotal: 1, FilesErrored: 1},
			want:  "1 failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
