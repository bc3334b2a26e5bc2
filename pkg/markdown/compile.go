package markdown

import "fmt"

// MinIndex is the first valid body content index in the target document
// model (index 0 is the section break preceding the body).
const MinIndex int64 = 1

// divider is the fixed content inserted for a horizontal rule. The remote
// model has no native rule element, so a full-width dash paragraph stands
// in for one.
const divider = "———————————————————————————\n"

// CheckedStyle selects how a completed checkbox item is rendered. The
// remote format does not guarantee native checkbox persistence across all
// surfaces, so the default is a visual proxy.
type CheckedStyle uint8

const (
	// CheckedStrikethrough marks done items with strikethrough plus a
	// dimmed foreground.
	CheckedStrikethrough CheckedStyle = iota

	// CheckedNone leaves done items styled like any other.
	CheckedNone
)

// Options tunes compilation policy.
type Options struct {
	CheckedStyle CheckedStyle
}

// Compile walks blocks in document order and emits positional edit ops.
// The cursor starts at start and advances by the UTF-16 length of every
// text insertion; style ops reference ranges already covered by earlier
// insertions and never advance it. All validation happens before the
// first op is emitted: on error the returned op slice is nil.
func Compile(blocks []Block, start int64, opts Options) ([]Op, error) {
	if start < MinIndex {
		return nil, fmt.Errorf("index %d is before document start: %w", start, ErrInvalidIndex)
	}
	for _, b := range blocks {
		if t, ok := b.(Table); ok {
			if err := validateTable(t); err != nil {
				return nil, err
			}
		}
	}

	c := compiler{cursor: start, opts: opts}
	for _, b := range blocks {
		switch b := b.(type) {
		case Heading:
			c.heading(b)
		case Paragraph:
			c.paragraph(b)
		case List:
			c.list(b)
		case Table:
			c.table(b)
		case Rule:
			c.rule()
		}
	}
	return c.ops, nil
}

// CompileString runs the full classify -> assemble -> compile pipeline.
func CompileString(src string, start int64, opts Options) ([]Op, error) {
	blocks, err := Assemble(ClassifyAll(src))
	if err != nil {
		return nil, err
	}
	return Compile(blocks, start, opts)
}

func validateTable(t Table) error {
	if len(t.Rows) == 0 || len(t.Rows[0]) == 0 {
		return fmt.Errorf("table has no header cells: %w", ErrMalformedTable)
	}
	return nil
}

// compiler owns the cursor for the duration of one Compile call. Nothing
// escapes it, so compilation is reentrant.
type compiler struct {
	cursor int64
	opts   Options
	ops    []Op
}

func (c *compiler) emit(op Op) {
	c.ops = append(c.ops, op)
}

// insertLine inserts text plus a trailing newline at the cursor, emits
// style ops for its spans, and advances the cursor past both. It returns
// the range covered by the text (newline excluded).
func (c *compiler) insertLine(spans []Span) (start, end int64) {
	text := spanText(spans)
	start = c.cursor
	end = start + utf16Len(text)

	c.emit(InsertText{At: start, Text: text + "\n"})
	c.spanStyles(spans, start)
	c.cursor = end + 1
	return start, end
}

// spanStyles emits one SetTextStyle per styled span, at offsets relative
// to base. Unstyled spans produce nothing: absence of a style op means
// "inherit default".
func (c *compiler) spanStyles(spans []Span, base int64) {
	offset := base
	for _, s := range spans {
		length := utf16Len(s.Text)
		if s.styled() && length > 0 {
			c.emit(SetTextStyle{
				Start:  offset,
				End:    offset + length,
				Bold:   s.Bold,
				Italic: s.Italic,
				Code:   s.Code,
			})
		}
		offset += length
	}
}

// heading inserts the text, applies the named heading style, then any
// inline span styles inside the heading range.
func (c *compiler) heading(h Heading) {
	text := spanText(h.Spans)
	start := c.cursor
	end := start + utf16Len(text)

	c.emit(InsertText{At: start, Text: text + "\n"})
	c.emit(SetParagraphStyle{Start: start, End: end, Level: h.Level})
	c.spanStyles(h.Spans, start)
	c.cursor = end + 1
}

func (c *compiler) paragraph(p Paragraph) {
	c.insertLine(p.Spans)
}

func (c *compiler) list(l List) {
	blockStart := c.cursor
	for _, item := range l.Items {
		start, end := c.insertLine(item.Spans)
		if l.Kind == ListCheckbox && item.Checked &&
			c.opts.CheckedStyle == CheckedStrikethrough && end > start {
			c.emit(SetTextStyle{Start: start, End: end, Strikethrough: true, Dim: true})
		}
	}
	c.emit(CreateBullets{Start: blockStart, End: c.cursor, Preset: l.preset()})
}

func (l List) preset() BulletPreset {
	switch l.Kind {
	case ListNumbered:
		return PresetNumbered
	case ListCheckbox:
		return PresetCheckbox
	default:
		return PresetBullet
	}
}

// table allocates the grid as one structural edit, then populates cells in
// reverse row-major order: each cell insertion shifts every later index
// inside the same table, so filling from the last cell backwards keeps the
// precomputed offsets valid. Data rows are sized to the header; extra
// cells are dropped and missing cells stay empty.
func (c *compiler) table(t Table) {
	rows := len(t.Rows)
	cols := len(t.Rows[0])
	at := c.cursor

	c.emit(InsertTable{At: at, Rows: rows, Cols: cols})

	var populated int64
	for r := rows - 1; r >= 0; r-- {
		row := t.Rows[r]
		for col := min(len(row), cols) - 1; col >= 0; col-- {
			text := row[col].Text()
			if text == "" {
				continue
			}
			c.emit(PopulateCell{TableStart: at, Row: r, Col: col, Cols: cols, Text: text})
			populated += utf16Len(text)
		}
	}

	c.cursor = at + EmptyTableLength(rows, cols) + populated
}

func (c *compiler) rule() {
	c.emit(InsertText{At: c.cursor, Text: divider})
	c.cursor += utf16Len(divider)
}
