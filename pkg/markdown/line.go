package markdown

import "strings"

// SourceLine is one line of input Markdown plus its zero-based line number.
type SourceLine struct {
	Number int
	Text   string
}

// LineKind tags a classified source line with its block-level role.
type LineKind uint8

const (
	KindParagraph LineKind = iota
	KindBlank
	KindHeading
	KindBullet
	KindNumbered
	KindCheckbox
	KindTableRow
	KindTableSeparator
	KindRule
)

// Line is the classifier's output: the source line, its kind, and the
// kind-specific payload already stripped of block markers.
type Line struct {
	Source SourceLine
	Kind   LineKind

	// Level is the heading level (1-3) for KindHeading.
	Level int

	// Checked is the checkbox state for KindCheckbox.
	Checked bool

	// Text is the marker-stripped remainder for headings, list items, and
	// paragraphs.
	Text string

	// Cells holds the trimmed cell contents for KindTableRow.
	Cells []string
}

// ClassifyAll splits src into lines and classifies each one. Trailing
// whitespace (including carriage returns) is stripped first, so CRLF input
// behaves like LF input.
func ClassifyAll(src string) []Line {
	raw := strings.Split(src, "\n")
	lines := make([]Line, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimRight(text, " \t\r")
		lines = append(lines, Classify(SourceLine{Number: i, Text: text}))
	}
	return lines
}

// Classify maps one source line to exactly one kind. It is a pure function:
// unrecognized non-blank content falls through to KindParagraph. Rules are
// checked in precedence order; the first match wins.
func Classify(src SourceLine) Line {
	text := src.Text

	if level, rest, ok := headingPrefix(text); ok {
		return Line{Source: src, Kind: KindHeading, Level: level, Text: strings.TrimSpace(rest)}
	}

	if checked, rest, ok := checkboxPrefix(text); ok {
		return Line{Source: src, Kind: KindCheckbox, Checked: checked, Text: rest}
	}

	if rest, ok := bulletPrefix(text); ok {
		return Line{Source: src, Kind: KindBullet, Text: rest}
	}

	if rest, ok := numberedPrefix(text); ok {
		return Line{Source: src, Kind: KindNumbered, Text: rest}
	}

	if cells, ok := tableCells(text); ok {
		if isSeparatorCells(cells) {
			return Line{Source: src, Kind: KindTableSeparator}
		}
		return Line{Source: src, Kind: KindTableRow, Cells: cells}
	}

	if isHorizontalRule(text) {
		return Line{Source: src, Kind: KindRule}
	}

	if strings.TrimSpace(text) == "" {
		return Line{Source: src, Kind: KindBlank}
	}

	return Line{Source: src, Kind: KindParagraph, Text: text}
}

// headingPrefix matches 1-3 leading '#' characters followed by whitespace.
// Four or more hashes are not a supported heading and fall through.
func headingPrefix(text string) (level int, rest string, ok bool) {
	n := 0
	for n < len(text) && text[n] == '#' {
		n++
	}
	if n < 1 || n > 3 {
		return 0, "", false
	}
	if n >= len(text) || !isSpace(text[n]) {
		return 0, "", false
	}
	return n, text[n+1:], true
}

// checkboxPrefix matches "- [ ] ", "- [x] ", "* [X] " and friends.
func checkboxPrefix(text string) (checked bool, rest string, ok bool) {
	body, ok := bulletPrefix(text)
	if !ok {
		return false, "", false
	}
	if len(body) < 3 || body[0] != '[' || body[2] != ']' {
		return false, "", false
	}
	mark := body[1]
	if mark != ' ' && mark != 'x' && mark != 'X' {
		return false, "", false
	}
	after := body[3:]
	if len(after) == 0 || !isSpace(after[0]) {
		return false, "", false
	}
	return mark != ' ', strings.TrimLeft(after, " \t"), true
}

// bulletPrefix matches "- " or "* " at the start of the line.
func bulletPrefix(text string) (rest string, ok bool) {
	if len(text) < 2 || (text[0] != '-' && text[0] != '*') || !isSpace(text[1]) {
		return "", false
	}
	return strings.TrimLeft(text[1:], " \t"), true
}

// numberedPrefix matches one or more digits, a dot, and whitespace.
func numberedPrefix(text string) (rest string, ok bool) {
	n := 0
	for n < len(text) && text[n] >= '0' && text[n] <= '9' {
		n++
	}
	if n == 0 || n+1 >= len(text) || text[n] != '.' || !isSpace(text[n+1]) {
		return "", false
	}
	return strings.TrimLeft(text[n+1:], " \t"), true
}

// tableCells recognizes a pipe-delimited row and returns its trimmed cells.
// Backslash-escaped pipes do not split cells; the escape is removed.
func tableCells(text string) ([]string, bool) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 || trimmed[0] != '|' || trimmed[len(trimmed)-1] != '|' {
		return nil, false
	}

	inner := trimmed[1 : len(trimmed)-1]
	var cells []string
	var cell strings.Builder
	for i := 0; i < len(inner); i++ {
		switch {
		case inner[i] == '\\' && i+1 < len(inner) && inner[i+1] == '|':
			cell.WriteByte('|')
			i++
		case inner[i] == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(inner[i])
		}
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells, true
}

// isSeparatorCells reports whether every cell is a non-empty run of '-' and
// ':' characters, i.e. the header/body separator of a table.
func isSeparatorCells(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if c == "" {
			return false
		}
		for i := 0; i < len(c); i++ {
			if c[i] != '-' && c[i] != ':' {
				return false
			}
		}
	}
	return true
}

// isHorizontalRule matches three or more dashes with nothing but trailing
// whitespace.
func isHorizontalRule(text string) bool {
	n := 0
	for n < len(text) && text[n] == '-' {
		n++
	}
	return n >= 3 && strings.TrimSpace(text[n:]) == ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
