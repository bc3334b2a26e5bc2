package markdown

import (
	"fmt"
	"strings"
)

// Block is a logical Markdown unit spanning one or more source lines.
// The set of implementations is closed; Compile matches exhaustively.
type Block interface {
	block()
}

// Heading is an ATX heading, levels 1-3.
type Heading struct {
	Level int
	Spans []Span
}

// Paragraph is a run of plain text with inline styling.
type Paragraph struct {
	Spans []Span
}

// ListKind distinguishes the three supported list flavors.
type ListKind uint8

const (
	ListBullet ListKind = iota
	ListNumbered
	ListCheckbox
)

// ListItem is one entry of a List. Checked is meaningful only for
// checkbox lists.
type ListItem struct {
	Spans   []Span
	Checked bool
}

// List groups consecutive items of a single kind. A change of kind mid-run
// starts a new List.
type List struct {
	Kind  ListKind
	Items []ListItem
}

// Cell is one table cell; its inline spans are tokenized like any other
// markdown-bearing text.
type Cell struct {
	Spans []Span
}

// Text returns the cell's plain text with markers removed.
func (c Cell) Text() string {
	return spanText(c.Spans)
}

// Table is a pipe table. Rows[0] is the header; the separator line is
// consumed during assembly and not stored.
type Table struct {
	Rows [][]Cell
}

// Rule is a horizontal rule, rendered as a fixed divider paragraph.
type Rule struct{}

func (Heading) block()   {}
func (Paragraph) block() {}
func (List) block()      {}
func (Table) block()     {}
func (Rule) block()      {}

// Assemble groups classified lines into logical blocks in one forward
// pass. Blank lines terminate list and table runs and are otherwise
// dropped. A table row without a following separator is demoted to a
// paragraph, as is a separator with no preceding row. Indented list
// markers (nested lists) are rejected with ErrUnsupportedBlock.
func Assemble(lines []Line) ([]Block, error) {
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		ln := lines[i]

		switch ln.Kind {
		case KindBlank:
			// Runs are already closed because grouping consumes greedily.

		case KindHeading:
			blocks = append(blocks, Heading{Level: ln.Level, Spans: Tokenize(ln.Text)})

		case KindRule:
			blocks = append(blocks, Rule{})

		case KindBullet, KindNumbered, KindCheckbox:
			list, consumed := assembleList(lines[i:])
			blocks = append(blocks, list)
			i += consumed - 1

		case KindTableRow:
			if i+1 < len(lines) && lines[i+1].Kind == KindTableSeparator {
				table, consumed, err := assembleTable(lines[i:])
				if err != nil {
					return nil, err
				}
				blocks = append(blocks, table)
				i += consumed - 1
			} else {
				// No separator follows: not a table, keep the raw line.
				blocks = append(blocks, demoteToParagraph(ln))
			}

		case KindTableSeparator:
			blocks = append(blocks, demoteToParagraph(ln))

		case KindParagraph:
			if isIndentedListMarker(ln.Source.Text) {
				return nil, fmt.Errorf("line %d: nested lists are not supported: %w",
					ln.Source.Number+1, ErrUnsupportedBlock)
			}
			blocks = append(blocks, Paragraph{Spans: Tokenize(ln.Text)})
		}
	}

	return blocks, nil
}

// assembleList consumes the maximal run of same-kind list lines starting at
// lines[0] and returns the resulting block plus the number of lines used.
func assembleList(lines []Line) (List, int) {
	kind := listKindOf(lines[0].Kind)
	list := List{Kind: kind}

	n := 0
	for ; n < len(lines); n++ {
		if !isListLine(lines[n].Kind) || listKindOf(lines[n].Kind) != kind {
			break
		}
		list.Items = append(list.Items, ListItem{
			Spans:   Tokenize(lines[n].Text),
			Checked: lines[n].Checked,
		})
	}
	return list, n
}

// assembleTable consumes header + separator + data rows. The separator must
// agree with the header's column count; data rows are sized to the header
// during compilation.
func assembleTable(lines []Line) (Table, int, error) {
	header := lines[0]
	sep := lines[1]

	sepCells, _ := tableCells(sep.Source.Text)
	if len(sepCells) != len(header.Cells) {
		return Table{}, 0, fmt.Errorf(
			"line %d: separator has %d columns, header has %d: %w",
			sep.Source.Number+1, len(sepCells), len(header.Cells), ErrMalformedTable)
	}

	table := Table{Rows: [][]Cell{tokenizeCells(header.Cells)}}
	n := 2
	for ; n < len(lines) && lines[n].Kind == KindTableRow; n++ {
		table.Rows = append(table.Rows, tokenizeCells(lines[n].Cells))
	}
	return table, n, nil
}

func tokenizeCells(cells []string) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[i] = Cell{Spans: Tokenize(c)}
	}
	return out
}

// demoteToParagraph turns a table-ish line that failed table assembly back
// into a plain paragraph of its raw text.
func demoteToParagraph(ln Line) Paragraph {
	return Paragraph{Spans: Tokenize(strings.TrimSpace(ln.Source.Text))}
}

func listKindOf(k LineKind) ListKind {
	switch k {
	case KindNumbered:
		return ListNumbered
	case KindCheckbox:
		return ListCheckbox
	default:
		return ListBullet
	}
}

func isListLine(k LineKind) bool {
	return k == KindBullet || k == KindNumbered || k == KindCheckbox
}

// isIndentedListMarker detects a list marker preceded by leading
// whitespace. The classifier never matches these (list rules anchor at
// column zero), so they surface here as paragraphs and are rejected
// instead of silently flattened.
func isIndentedListMarker(raw string) bool {
	i := 0
	for i < len(raw) && isSpace(raw[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	rest := raw[i:]
	if _, ok := bulletPrefix(rest); ok {
		return true
	}
	_, ok := numberedPrefix(rest)
	return ok
}
