package markdown

import "unicode/utf16"

// Op is one positional edit instruction targeting the remote document
// model. The set of implementations is closed and ordered: the batch
// emitter serializes ops in exactly the order Compile produced them.
type Op interface {
	op()
}

// InsertText inserts plain text at an absolute UTF-16 offset.
type InsertText struct {
	At   int64
	Text string
}

// SetParagraphStyle applies a named heading style over [Start, End).
type SetParagraphStyle struct {
	Start int64
	End   int64
	Level int
}

// SetTextStyle applies character styling over [Start, End). Only flags set
// to true are written; absent flags inherit the document default.
type SetTextStyle struct {
	Start int64
	End   int64

	Bold          bool
	Italic        bool
	Code          bool
	Strikethrough bool
	Dim           bool
}

// BulletPreset names the list presentation applied by CreateBullets.
type BulletPreset string

const (
	PresetBullet   BulletPreset = "BULLET_DISC_CIRCLE_SQUARE"
	PresetNumbered BulletPreset = "NUMBERED_DECIMAL_ALPHA_ROMAN"
	PresetCheckbox BulletPreset = "BULLET_CHECKBOX"
)

// CreateBullets applies a list preset to the paragraphs in [Start, End).
// List glyphs are never inserted as literal characters; presentation is
// entirely the preset's concern.
type CreateBullets struct {
	Start  int64
	End    int64
	Preset BulletPreset
}

// InsertTable allocates an empty Rows x Cols grid at an absolute offset.
type InsertTable struct {
	At   int64
	Rows int
	Cols int
}

// PopulateCell inserts text into one cell of a previously inserted table.
// The cell's own insertion index is a function of the table's start offset
// (see cellTextIndex), not of the top-level cursor.
type PopulateCell struct {
	TableStart int64
	Row        int
	Col        int
	Cols       int
	Text       string
}

func (InsertText) op()        {}
func (SetParagraphStyle) op() {}
func (SetTextStyle) op()      {}
func (CreateBullets) op()     {}
func (InsertTable) op()       {}
func (PopulateCell) op()      {}

// CellTextIndex returns the absolute insertion index for the content of
// cell (row, col) of a table inserted at index at with cols columns.
//
// The layout mirrors the Docs structural model: the insert places a
// newline at `at`, the table element at at+1, then each row contributes
// one row marker plus two indexes per cell (cell marker + empty
// paragraph). The first cell's content therefore starts at at+4.
func CellTextIndex(at int64, row, col, cols int) int64 {
	return at + 4 + int64(row)*(2*int64(cols)+1) + 2*int64(col)
}

// EmptyTableLength returns the number of indexes an empty rows x cols
// table occupies, counted from its insertion index (leading newline and
// trailing structure included).
func EmptyTableLength(rows, cols int) int64 {
	return int64(rows)*(2*int64(cols)+1) + 2
}

// utf16Len returns the length of s in UTF-16 code units, the unit the
// remote document model addresses content in. Characters outside the BMP
// count as two.
func utf16Len(s string) int64 {
	var n int64
	for _, r := range s {
		n += int64(utf16.RuneLen(r))
	}
	return n
}
