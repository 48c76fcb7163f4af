package replacements_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/cfreplace/pkg/replacements"
)

func TestReplacementSet_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		edits     []replacements.Edit
		bufferLen int
		wantErr   error
		wantIndex int
	}{
		{
			name:      "empty set",
			bufferLen: 0,
		},
		{
			name:      "span ends at buffer end",
			edits:     []replacements.Edit{{Offset: 7, Length: 3}},
			bufferLen: 10,
		},
		{
			name:      "insertion at buffer end",
			edits:     []replacements.Edit{{Offset: 10, Value: "x"}},
			bufferLen: 10,
		},
		{
			name: "touching spans",
			edits: []replacements.Edit{
				{Offset: 0, Length: 2},
				{Offset: 2, Length: 2},
			},
			bufferLen: 4,
		},
		{
			name: "repeated insertion point",
			edits: []replacements.Edit{
				{Offset: 3, Value: "a"},
				{Offset: 3, Value: "b"},
			},
			bufferLen: 4,
		},
		{
			name:      "span past end",
			edits:     []replacements.Edit{{Offset: 8, Length: 3}},
			bufferLen: 10,
			wantErr:   replacements.ErrOutOfBounds,
			wantIndex: 0,
		},
		{
			name:      "offset past end",
			edits:     []replacements.Edit{{Offset: 11}},
			bufferLen: 10,
			wantErr:   replacements.ErrOutOfBounds,
			wantIndex: 0,
		},
		{
			name:      "end overflows int",
			edits:     []replacements.Edit{{Offset: math.MaxInt, Length: 1}},
			bufferLen: 10,
			wantErr:   replacements.ErrOutOfBounds,
			wantIndex: 0,
		},
		{
			name:      "huge length",
			edits:     []replacements.Edit{{Offset: 5, Length: math.MaxInt}},
			bufferLen: 10,
			wantErr:   replacements.ErrOutOfBounds,
			wantIndex: 0,
		},
		{
			name:      "negative offset",
			edits:     []replacements.Edit{{Offset: -1, Length: 1}},
			bufferLen: 10,
			wantErr:   replacements.ErrOutOfBounds,
			wantIndex: 0,
		},
		{
			name: "overlap",
			edits: []replacements.Edit{
				{Offset: 0, Length: 5},
				{Offset: 4, Length: 1},
			},
			bufferLen: 10,
			wantErr:   replacements.ErrUnordered,
			wantIndex: 1,
		},
		{
			name: "descending",
			edits: []replacements.Edit{
				{Offset: 5, Length: 1},
				{Offset: 6, Length: 1},
				{Offset: 1, Length: 1},
			},
			bufferLen: 10,
			wantErr:   replacements.ErrUnordered,
			wantIndex: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			set := replacements.NewReplacementSet(tt.edits)
			err := set.Validate(tt.bufferLen)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tt.wantErr)
			var editErr *replacements.EditError
			require.ErrorAs(t, err, &editErr)
			assert.Equal(t, tt.wantIndex, editErr.Index)
		})
	}
}

func TestReplacementSet_ValidateOrder_IgnoresBounds(t *testing.T) {
	t.Parallel()

	set := replacements.NewReplacementSet([]replacements.Edit{{Offset: 1000, Length: 1000}})
	assert.NoError(t, set.ValidateOrder())
}

func TestReplacementSet_ValidateOrder_LargeSpan(t *testing.T) {
	t.Parallel()

	set := replacements.NewReplacementSet([]replacements.Edit{
		{Offset: math.MaxInt - 1, Length: 10},
		{Offset: math.MaxInt, Length: 0},
	})
	assert.ErrorIs(t, set.ValidateOrder(), replacements.ErrUnordered)
}
