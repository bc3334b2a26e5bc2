package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gsuite/pkg/markdown"
)

func compileOps(t *testing.T, source string, start int64) []markdown.Op {
	t.Helper()
	ops, err := markdown.CompileString(source, start, markdown.Options{})
	require.NoError(t, err)
	return ops
}

func TestBatchFromOps_PreservesOrder(t *testing.T) {
	ops := compileOps(t, "# Title\n\nThis is **bold** and *italic*.\n\n- one\n- two", 1)
	reqs := BatchFromOps(ops)
	require.Len(t, reqs, len(ops))

	require.NotNil(t, reqs[0].InsertText)
	require.Equal(t, "Title\n", reqs[0].InsertText.Text)
	require.Equal(t, int64(1), reqs[0].InsertText.Location.Index)

	require.NotNil(t, reqs[1].UpdateParagraphStyle)
	require.Equal(t, "HEADING_1", reqs[1].UpdateParagraphStyle.ParagraphStyle.NamedStyleType)
	require.Equal(t, Range{StartIndex: 1, EndIndex: 6}, reqs[1].UpdateParagraphStyle.Range)
	require.Equal(t, "namedStyleType", reqs[1].UpdateParagraphStyle.Fields)

	require.NotNil(t, reqs[3].UpdateTextStyle)
	require.Equal(t, "bold", reqs[3].UpdateTextStyle.Fields)
	require.NotNil(t, reqs[4].UpdateTextStyle)
	require.Equal(t, "italic", reqs[4].UpdateTextStyle.Fields)

	last := reqs[len(reqs)-1]
	require.NotNil(t, last.CreateParagraphBullets)
	require.Equal(t, "BULLET_DISC_CIRCLE_SQUARE", last.CreateParagraphBullets.BulletPreset)
}

func TestBatchFromOps_CodeStyle(t *testing.T) {
	ops := compileOps(t, "run `go test` now", 1)
	reqs := BatchFromOps(ops)
	require.Len(t, reqs, 2)

	style := reqs[1].UpdateTextStyle
	require.NotNil(t, style)
	require.Equal(t, "weightedFontFamily,backgroundColor", style.Fields)
	require.Equal(t, "Courier New", style.TextStyle.WeightedFontFamily.FontFamily)
	require.Equal(t, 0.95, style.TextStyle.BackgroundColor.Color.RGBColor.Red)
}

func TestBatchFromOps_CheckedItemStyle(t *testing.T) {
	ops := compileOps(t, "- [x] shipped", 1)
	reqs := BatchFromOps(ops)

	var style *UpdateTextStyleRequest
	for _, r := range reqs {
		if r.UpdateTextStyle != nil {
			style = r.UpdateTextStyle
		}
	}
	require.NotNil(t, style)
	require.Equal(t, "strikethrough,foregroundColor", style.Fields)
	require.NotNil(t, style.TextStyle.Strikethrough)
	require.True(t, *style.TextStyle.Strikethrough)
	require.Equal(t, 0.5, style.TextStyle.ForegroundColor.Color.RGBColor.Red)
}

func TestBatchFromOps_TableCellsUseComputedOffsets(t *testing.T) {
	ops := compileOps(t, "| A | B |\n|---|---|\n| 1 | 2 |", 1)
	reqs := BatchFromOps(ops)

	require.NotNil(t, reqs[0].InsertTable)
	require.Equal(t, 2, reqs[0].InsertTable.Rows)
	require.Equal(t, 2, reqs[0].InsertTable.Columns)
	require.Equal(t, int64(1), reqs[0].InsertTable.Location.Index)

	// Reverse row-major population at the precomputed cell indexes.
	wantCells := []struct {
		index int64
		text  string
	}{
		{12, "2"},
		{10, "1"},
		{7, "B"},
		{5, "A"},
	}
	for i, want := range wantCells {
		req := reqs[i+1].InsertText
		require.NotNil(t, req, "request %d", i+1)
		require.Equal(t, want.index, req.Location.Index, "request %d", i+1)
		require.Equal(t, want.text, req.Text, "request %d", i+1)
	}
}

func TestRequest_JSONShape(t *testing.T) {
	reqs := BatchFromOps(compileOps(t, "# H\n\n`x`", 1))

	raw, err := json.Marshal(map[string]any{"requests": reqs})
	require.NoError(t, err)

	want := `{
	  "requests": [
	    {"insertText": {"location": {"index": 1}, "text": "H\n"}},
	    {"updateParagraphStyle": {
	      "range": {"startIndex": 1, "endIndex": 2},
	      "paragraphStyle": {"namedStyleType": "HEADING_1"},
	      "fields": "namedStyleType"
	    }},
	    {"insertText": {"location": {"index": 3}, "text": "x\n"}},
	    {"updateTextStyle": {
	      "range": {"startIndex": 3, "endIndex": 4},
	      "textStyle": {
	        "weightedFontFamily": {"fontFamily": "Courier New"},
	        "backgroundColor": {"color": {"rgbColor": {"red": 0.95, "green": 0.95, "blue": 0.95}}}
	      },
	      "fields": "weightedFontFamily,backgroundColor"
	    }}
	  ]
	}`
	require.JSONEq(t, want, string(raw))
}
