package docs

import "strings"

// Document is the subset of the Docs document resource the service reads:
// identity, revision, and the body's structural elements.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	RevisionID string `json:"revisionId"`
	Body       Body   `json:"body"`
}

type Body struct {
	Content []StructuralElement `json:"content"`
}

// StructuralElement is one body element. Exactly one of Paragraph and
// Table is set for the elements this package cares about; section breaks
// and other element kinds leave both nil.
type StructuralElement struct {
	StartIndex int64          `json:"startIndex"`
	EndIndex   int64          `json:"endIndex"`
	Paragraph  *Paragraph     `json:"paragraph,omitempty"`
	Table      *TableContents `json:"table,omitempty"`
}

type Paragraph struct {
	Elements       []ParagraphElement `json:"elements"`
	ParagraphStyle ParagraphStyle     `json:"paragraphStyle"`
}

type ParagraphElement struct {
	TextRun *TextRun `json:"textRun,omitempty"`
}

type TextRun struct {
	Content string `json:"content"`
}

type TableContents struct {
	TableRows []TableRowContents `json:"tableRows"`
}

type TableRowContents struct {
	TableCells []TableCellContents `json:"tableCells"`
}

type TableCellContents struct {
	Content []StructuralElement `json:"content"`
}

// PlainText flattens the paragraph's text runs.
func (p *Paragraph) PlainText() string {
	var b strings.Builder
	for _, el := range p.Elements {
		if el.TextRun != nil {
			b.WriteString(el.TextRun.Content)
		}
	}
	return b.String()
}

// BodyText renders the document body as plain text: paragraphs verbatim,
// table rows as pipe-joined cells, blocks separated by newlines.
func (d *Document) BodyText() string {
	return extractText(d.Body.Content)
}

func extractText(content []StructuralElement) string {
	var blocks []string
	for _, el := range content {
		switch {
		case el.Paragraph != nil:
			blocks = append(blocks, el.Paragraph.PlainText())
		case el.Table != nil:
			blocks = append(blocks, tableText(el.Table))
		}
	}
	return strings.Join(blocks, "\n")
}

func tableText(t *TableContents) string {
	var rows []string
	for _, row := range t.TableRows {
		var cells []string
		for _, cell := range row.TableCells {
			cells = append(cells, extractText(cell.Content))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

// EndIndex returns the end index of the last body element. A structurally
// empty document reports 1.
func (d *Document) EndIndex() int64 {
	if len(d.Body.Content) == 0 {
		return 1
	}
	return d.Body.Content[len(d.Body.Content)-1].EndIndex
}

// HeadingEntry is one entry of a document outline.
type HeadingEntry struct {
	Level      int    `json:"level"`
	Text       string `json:"text"`
	StartIndex int64  `json:"start_index"`
	EndIndex   int64  `json:"end_index"`
}

// Headings walks the body and collects paragraphs carrying a HEADING_n
// named style, in document order.
func (d *Document) Headings() []HeadingEntry {
	var out []HeadingEntry
	for _, el := range d.Body.Content {
		if el.Paragraph == nil {
			continue
		}
		style := el.Paragraph.ParagraphStyle.NamedStyleType
		level, ok := headingLevel(style)
		if !ok {
			continue
		}
		out = append(out, HeadingEntry{
			Level:      level,
			Text:       el.Paragraph.PlainText(),
			StartIndex: el.StartIndex,
			EndIndex:   el.EndIndex,
		})
	}
	return out
}

func headingLevel(namedStyle string) (int, bool) {
	rest, ok := strings.CutPrefix(namedStyle, "HEADING_")
	if !ok || len(rest) != 1 || rest[0] < '1' || rest[0] > '6' {
		return 0, false
	}
	return int(rest[0] - '0'), true
}
