package markdown

import "strings"

// Span is a maximal run of text sharing identical inline style flags. The
// flags are independent and combinable; concatenating the Text fields of a
// line's spans reconstructs the line with consumed markers removed.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// styled reports whether the span carries any non-default style flag.
func (s Span) styled() bool {
	return s.Bold || s.Italic || s.Code
}

// Tokenize scans text left to right and splits it into styled spans.
// Marker pairs are ** (bold), single * (italic), and backticks (code).
// Code has the highest precedence: backtick contents are never inspected
// for other markers. A marker with no matching closer before end of line
// is literal text; the marker characters are kept, never stripped.
func Tokenize(text string) []Span {
	tok := inlineScanner{input: text}
	tok.scan()
	return tok.spans
}

type inlineScanner struct {
	input string
	pos   int

	buf    strings.Builder
	bold   bool
	italic bool

	spans []Span
}

func (t *inlineScanner) scan() {
	for t.pos < len(t.input) {
		rest := t.input[t.pos:]

		switch {
		case rest[0] == '`':
			t.scanCode()

		case strings.HasPrefix(rest, "**"):
			if t.bold {
				t.flush()
				t.bold = false
				t.pos += 2
			} else if strings.Contains(rest[2:], "**") {
				t.flush()
				t.bold = true
				t.pos += 2
			} else {
				// Unterminated: keep both stars as literal text.
				t.buf.WriteString("**")
				t.pos += 2
			}

		case rest[0] == '*':
			if t.italic {
				t.flush()
				t.italic = false
				t.pos++
			} else if hasSingleStar(rest[1:]) {
				t.flush()
				t.italic = true
				t.pos++
			} else {
				t.buf.WriteByte('*')
				t.pos++
			}

		default:
			t.buf.WriteByte(rest[0])
			t.pos++
		}
	}

	t.flush()
}

// scanCode consumes a backtick-delimited code span, or a literal backtick
// when no closer exists. Code contents pass through uninspected.
func (t *inlineScanner) scanCode() {
	rest := t.input[t.pos+1:]
	end := strings.IndexByte(rest, '`')
	if end < 0 {
		t.buf.WriteByte('`')
		t.pos++
		return
	}

	t.flush()
	t.spans = append(t.spans, Span{
		Text:   rest[:end],
		Bold:   t.bold,
		Italic: t.italic,
		Code:   true,
	})
	t.pos += end + 2
}

// flush emits the accumulated text as a span with the current flags.
// Empty runs produce no span.
func (t *inlineScanner) flush() {
	if t.buf.Len() == 0 {
		return
	}
	t.spans = append(t.spans, Span{
		Text:   t.buf.String(),
		Bold:   t.bold,
		Italic: t.italic,
	})
	t.buf.Reset()
}

// hasSingleStar reports whether s contains a '*' usable as an italic
// closer, i.e. one that is not part of a '**' bold marker.
func hasSingleStar(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '*' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '*' {
			i++ // part of a ** run, skip the pair
			continue
		}
		return true
	}
	return false
}

// spanText concatenates the plain text of a span sequence.
func spanText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
