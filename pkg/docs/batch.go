package docs

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gsuite/pkg/markdown"
)

// Request is one entry of a batchUpdate payload. Exactly one field is set
// per request; the API dispatches on which key is present.
type Request struct {
	InsertText             *InsertTextRequest             `json:"insertText,omitempty"`
	UpdateParagraphStyle   *UpdateParagraphStyleRequest   `json:"updateParagraphStyle,omitempty"`
	UpdateTextStyle        *UpdateTextStyleRequest        `json:"updateTextStyle,omitempty"`
	CreateParagraphBullets *CreateParagraphBulletsRequest `json:"createParagraphBullets,omitempty"`
	InsertTable            *InsertTableRequest            `json:"insertTable,omitempty"`
	InsertPageBreak        *InsertPageBreakRequest        `json:"insertPageBreak,omitempty"`
	InsertInlineImage      *InsertInlineImageRequest      `json:"insertInlineImage,omitempty"`
	DeleteContentRange     *DeleteContentRangeRequest     `json:"deleteContentRange,omitempty"`
	ReplaceAllText         *ReplaceAllTextRequest         `json:"replaceAllText,omitempty"`
}

type Location struct {
	Index int64 `json:"index"`
}

type Range struct {
	StartIndex int64 `json:"startIndex"`
	EndIndex   int64 `json:"endIndex"`
}

type InsertTextRequest struct {
	Location Location `json:"location"`
	Text     string   `json:"text"`
}

type ParagraphStyle struct {
	NamedStyleType string `json:"namedStyleType,omitempty"`
}

type UpdateParagraphStyleRequest struct {
	Range          Range          `json:"range"`
	ParagraphStyle ParagraphStyle `json:"paragraphStyle"`
	Fields         string         `json:"fields"`
}

// TextStyle uses pointer booleans so an explicit false ("clear bold here")
// survives serialization; the Fields mask names what to touch.
type TextStyle struct {
	Bold               *bool               `json:"bold,omitempty"`
	Italic             *bool               `json:"italic,omitempty"`
	Underline          *bool               `json:"underline,omitempty"`
	Strikethrough      *bool               `json:"strikethrough,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
	BackgroundColor    *OptionalColor      `json:"backgroundColor,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
}

type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily"`
}

type OptionalColor struct {
	Color Color `json:"color"`
}

type Color struct {
	RGBColor RGBColor `json:"rgbColor"`
}

type RGBColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type UpdateTextStyleRequest struct {
	Range     Range     `json:"range"`
	TextStyle TextStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

type CreateParagraphBulletsRequest struct {
	Range        Range  `json:"range"`
	BulletPreset string `json:"bulletPreset"`
}

type InsertTableRequest struct {
	Rows     int      `json:"rows"`
	Columns  int      `json:"columns"`
	Location Location `json:"location"`
}

type InsertPageBreakRequest struct {
	Location Location `json:"location"`
}

type InsertInlineImageRequest struct {
	Location   Location    `json:"location"`
	URI        string      `json:"uri"`
	ObjectSize *ObjectSize `json:"objectSize,omitempty"`
}

type ObjectSize struct {
	Width  *Dimension `json:"width,omitempty"`
	Height *Dimension `json:"height,omitempty"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude"`
	Unit      string  `json:"unit"`
}

type DeleteContentRangeRequest struct {
	Range Range `json:"range"`
}

type ReplaceAllTextRequest struct {
	ContainsText SubstringMatchCriteria `json:"containsText"`
	ReplaceText  string                 `json:"replaceText"`
}

type SubstringMatchCriteria struct {
	Text      string `json:"text"`
	MatchCase bool   `json:"matchCase"`
}

// BatchUpdateResponse is the subset of the batchUpdate reply the service
// surfaces: the document identity plus per-request replies.
type BatchUpdateResponse struct {
	DocumentID string  `json:"documentId"`
	Replies    []Reply `json:"replies"`
}

type Reply struct {
	ReplaceAllText *ReplaceAllTextReply `json:"replaceAllText,omitempty"`
}

type ReplaceAllTextReply struct {
	OccurrencesChanged int64 `json:"occurrencesChanged"`
}

// Inline code rendering: monospace over a light gray background, the
// closest the document model comes to a fenced style.
var (
	codeFontFamily = WeightedFontFamily{FontFamily: "Courier New"}
	codeBackground = OptionalColor{Color: Color{RGBColor: RGBColor{Red: 0.95, Green: 0.95, Blue: 0.95}}}
	dimForeground  = OptionalColor{Color: Color{RGBColor: RGBColor{Red: 0.5, Green: 0.5, Blue: 0.5}}}
)

// BatchFromOps serializes compiled edit ops into batchUpdate requests,
// preserving op order exactly. The result is submitted as one atomic
// batch, so either every edit applies or none does.
func BatchFromOps(ops []markdown.Op) []Request {
	reqs := make([]Request, 0, len(ops))
	for _, op := range ops {
		switch op := op.(type) {
		case markdown.InsertText:
			reqs = append(reqs, Request{InsertText: &InsertTextRequest{
				Location: Location{Index: op.At},
				Text:     op.Text,
			}})
		case markdown.SetParagraphStyle:
			reqs = append(reqs, Request{UpdateParagraphStyle: &UpdateParagraphStyleRequest{
				Range:          Range{StartIndex: op.Start, EndIndex: op.End},
				ParagraphStyle: ParagraphStyle{NamedStyleType: fmt.Sprintf("HEADING_%d", op.Level)},
				Fields:         "namedStyleType",
			}})
		case markdown.SetTextStyle:
			reqs = append(reqs, Request{UpdateTextStyle: textStyleRequest(op)})
		case markdown.CreateBullets:
			reqs = append(reqs, Request{CreateParagraphBullets: &CreateParagraphBulletsRequest{
				Range:        Range{StartIndex: op.Start, EndIndex: op.End},
				BulletPreset: string(op.Preset),
			}})
		case markdown.InsertTable:
			reqs = append(reqs, Request{InsertTable: &InsertTableRequest{
				Rows:     op.Rows,
				Columns:  op.Cols,
				Location: Location{Index: op.At},
			}})
		case markdown.PopulateCell:
			reqs = append(reqs, Request{InsertText: &InsertTextRequest{
				Location: Location{Index: markdown.CellTextIndex(op.TableStart, op.Row, op.Col, op.Cols)},
				Text:     op.Text,
			}})
		}
	}
	return reqs
}

func textStyleRequest(op markdown.SetTextStyle) *UpdateTextStyleRequest {
	var style TextStyle
	var fields []string

	if op.Bold {
		style.Bold = boolPtr(true)
		fields = append(fields, "bold")
	}
	if op.Italic {
		style.Italic = boolPtr(true)
		fields = append(fields, "italic")
	}
	if op.Code {
		style.WeightedFontFamily = &codeFontFamily
		style.BackgroundColor = &codeBackground
		fields = append(fields, "weightedFontFamily", "backgroundColor")
	}
	if op.Strikethrough {
		style.Strikethrough = boolPtr(true)
		fields = append(fields, "strikethrough")
	}
	if op.Dim {
		style.ForegroundColor = &dimForeground
		fields = append(fields, "foregroundColor")
	}

	return &UpdateTextStyleRequest{
		Range:     Range{StartIndex: op.Start, EndIndex: op.End},
		TextStyle: style,
		Fields:    strings.Join(fields, ","),
	}
}

func boolPtr(v bool) *bool {
	return &v
}
