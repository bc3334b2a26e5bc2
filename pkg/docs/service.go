// Package docs implements document operations against the Docs REST API,
// including the Markdown pipeline that compiles formatted content into a
// single atomic batchUpdate.
package docs

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/gsuite/pkg/googleapi"
	"github.com/yaklabco/gsuite/pkg/markdown"
)

const defaultBaseURL = "https://docs.googleapis.com/v1"

const statusSuccess = "success"

// Service exposes the document operations. Markdown-driven operations
// honor Options for checkbox rendering policy.
type Service struct {
	// BaseURL is the API root, overridable in tests.
	BaseURL string

	client  *googleapi.Client
	options markdown.Options
}

// NewService builds a Service on an authenticated transport.
func NewService(client *googleapi.Client) *Service {
	return &Service{
		BaseURL: defaultBaseURL,
		client:  client,
	}
}

func (s *Service) documentURL(documentID string) string {
	return fmt.Sprintf("%s/documents/%s", s.BaseURL, documentID)
}

func (s *Service) batchUpdateURL(documentID string) string {
	return s.documentURL(documentID) + ":batchUpdate"
}

// Get fetches the full document resource.
func (s *Service) Get(ctx context.Context, documentID string) (*Document, error) {
	var doc Document
	if err := s.client.GetJSON(ctx, s.documentURL(documentID), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// BatchUpdate submits requests as one atomic edit.
func (s *Service) BatchUpdate(ctx context.Context, documentID string, requests []Request) (*BatchUpdateResponse, error) {
	body := map[string]any{"requests": requests}
	var resp BatchUpdateResponse
	if err := s.client.PostJSON(ctx, s.batchUpdateURL(documentID), nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ReadResult is the payload of a read operation.
type ReadResult struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	RevisionID string `json:"revision_id"`
}

// Read fetches the document and flattens its body to plain text.
func (s *Service) Read(ctx context.Context, documentID string) (*ReadResult, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &ReadResult{
		Status:     statusSuccess,
		Operation:  "read",
		DocumentID: doc.DocumentID,
		Title:      doc.Title,
		Content:    doc.BodyText(),
		RevisionID: doc.RevisionID,
	}, nil
}

// StructureResult is the payload of a structure operation.
type StructureResult struct {
	Status     string         `json:"status"`
	Operation  string         `json:"operation"`
	DocumentID string         `json:"document_id"`
	Title      string         `json:"title"`
	Structure  []HeadingEntry `json:"structure"`
}

// Structure returns the document's heading outline.
func (s *Service) Structure(ctx context.Context, documentID string) (*StructureResult, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &StructureResult{
		Status:     statusSuccess,
		Operation:  "structure",
		DocumentID: doc.DocumentID,
		Title:      doc.Title,
		Structure:  doc.Headings(),
	}, nil
}

// InsertResult is the payload of insert and append operations.
type InsertResult struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	DocumentID string `json:"document_id"`
	InsertedAt int64  `json:"inserted_at"`
	TextLength int    `json:"text_length"`
	RevisionID string `json:"revision_id,omitempty"`
}

// InsertText inserts plain text at an explicit index.
func (s *Service) InsertText(ctx context.Context, documentID, text string, index int64) (*InsertResult, error) {
	resp, err := s.BatchUpdate(ctx, documentID, []Request{{
		InsertText: &InsertTextRequest{Location: Location{Index: index}, Text: text},
	}})
	if err != nil {
		return nil, err
	}
	return &InsertResult{
		Status:     statusSuccess,
		Operation:  "insert",
		DocumentID: documentID,
		InsertedAt: index,
		TextLength: utf8.RuneCountInString(text),
		RevisionID: resp.DocumentID,
	}, nil
}

// AppendText inserts text just before the body's trailing newline.
func (s *Service) AppendText(ctx context.Context, documentID, text string) (*InsertResult, error) {
	index, err := s.endIndex(ctx, documentID)
	if err != nil {
		return nil, err
	}
	result, err := s.InsertText(ctx, documentID, text, index)
	if err != nil {
		return nil, err
	}
	result.Operation = "append"
	return result, nil
}

// endIndex resolves the append position: one before the last structural
// element's end, which is the final newline the API refuses to edit past.
func (s *Service) endIndex(ctx context.Context, documentID string) (int64, error) {
	doc, err := s.Get(ctx, documentID)
	if err != nil {
		return 0, err
	}
	return doc.EndIndex() - 1, nil
}

// ReplaceResult is the payload of a replace operation.
type ReplaceResult struct {
	Status      string `json:"status"`
	Operation   string `json:"operation"`
	DocumentID  string `json:"document_id"`
	Find        string `json:"find"`
	Replace     string `json:"replace"`
	Occurrences int64  `json:"occurrences"`
}

// ReplaceText replaces every occurrence of find in the document.
func (s *Service) ReplaceText(ctx context.Context, documentID, find, replace string, matchCase bool) (*ReplaceResult, error) {
	resp, err := s.BatchUpdate(ctx, documentID, []Request{{
		ReplaceAllText: &ReplaceAllTextRequest{
			ContainsText: SubstringMatchCriteria{Text: find, MatchCase: matchCase},
			ReplaceText:  replace,
		},
	}})
	if err != nil {
		return nil, err
	}

	var occurrences int64
	if len(resp.Replies) > 0 && resp.Replies[0].ReplaceAllText != nil {
		occurrences = resp.Replies[0].ReplaceAllText.OccurrencesChanged
	}
	return &ReplaceResult{
		Status:      statusSuccess,
		Operation:   "replace",
		DocumentID:  documentID,
		Find:        find,
		Replace:     replace,
		Occurrences: occurrences,
	}, nil
}

// Formatting names the character styles a format operation touched.
type Formatting struct {
	Bold      *bool `json:"bold,omitempty"`
	Italic    *bool `json:"italic,omitempty"`
	Underline *bool `json:"underline,omitempty"`
}

// FormatResult is the payload of a format operation.
type FormatResult struct {
	Status     string     `json:"status"`
	Operation  string     `json:"operation"`
	DocumentID string     `json:"document_id"`
	Range      IndexRange `json:"range"`
	Formatting Formatting `json:"formatting"`
}

// IndexRange is a half-open index range in result payloads.
type IndexRange struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// FormatText applies explicit character styling over a range. Nil flags
// are left untouched; false flags clear the style.
func (s *Service) FormatText(ctx context.Context, documentID string, start, end int64, formatting Formatting) (*FormatResult, error) {
	var style TextStyle
	var fields []string
	if formatting.Bold != nil {
		style.Bold = formatting.Bold
		fields = append(fields, "bold")
	}
	if formatting.Italic != nil {
		style.Italic = formatting.Italic
		fields = append(fields, "italic")
	}
	if formatting.Underline != nil {
		style.Underline = formatting.Underline
		fields = append(fields, "underline")
	}

	_, err := s.BatchUpdate(ctx, documentID, []Request{{
		UpdateTextStyle: &UpdateTextStyleRequest{
			Range:     Range{StartIndex: start, EndIndex: end},
			TextStyle: style,
			Fields:    strings.Join(fields, ","),
		},
	}})
	if err != nil {
		return nil, err
	}
	return &FormatResult{
		Status:     statusSuccess,
		Operation:  "format",
		DocumentID: documentID,
		Range:      IndexRange{Start: start, End: end},
		Formatting: formatting,
	}, nil
}

// PageBreakResult is the payload of a page-break operation.
type PageBreakResult struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	DocumentID string `json:"document_id"`
	InsertedAt int64  `json:"inserted_at"`
}

// InsertPageBreak inserts a page break at an explicit index.
func (s *Service) InsertPageBreak(ctx context.Context, documentID string, index int64) (*PageBreakResult, error) {
	_, err := s.BatchUpdate(ctx, documentID, []Request{{
		InsertPageBreak: &InsertPageBreakRequest{Location: Location{Index: index}},
	}})
	if err != nil {
		return nil, err
	}
	return &PageBreakResult{
		Status:     statusSuccess,
		Operation:  "page_break",
		DocumentID: documentID,
		InsertedAt: index,
	}, nil
}

// CreateResult is the payload of a create operation.
type CreateResult struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	DocumentID string `json:"document_id"`
	Title      string `json:"title"`
	RevisionID string `json:"revision_id"`
}

// Create makes a new document, optionally seeding it with plain content.
func (s *Service) Create(ctx context.Context, title, content string) (*CreateResult, error) {
	var doc Document
	err := s.client.PostJSON(ctx, s.BaseURL+"/documents", nil,
		map[string]string{"title": title}, &doc)
	if err != nil {
		return nil, err
	}

	if content != "" {
		_, err = s.BatchUpdate(ctx, doc.DocumentID, []Request{{
			InsertText: &InsertTextRequest{Location: Location{Index: 1}, Text: content},
		}})
		if err != nil {
			return nil, err
		}
	}
	return &CreateResult{
		Status:     statusSuccess,
		Operation:  "create",
		DocumentID: doc.DocumentID,
		Title:      doc.Title,
		RevisionID: doc.RevisionID,
	}, nil
}

// DeleteResult is the payload of a delete operation.
type DeleteResult struct {
	Status       string     `json:"status"`
	Operation    string     `json:"operation"`
	DocumentID   string     `json:"document_id"`
	DeletedRange IndexRange `json:"deleted_range"`
}

// Delete removes the content in [start, end).
func (s *Service) Delete(ctx context.Context, documentID string, start, end int64) (*DeleteResult, error) {
	_, err := s.BatchUpdate(ctx, documentID, []Request{{
		DeleteContentRange: &DeleteContentRangeRequest{
			Range: Range{StartIndex: start, EndIndex: end},
		},
	}})
	if err != nil {
		return nil, err
	}
	return &DeleteResult{
		Status:       statusSuccess,
		Operation:    "delete",
		DocumentID:   documentID,
		DeletedRange: IndexRange{Start: start, End: end},
	}, nil
}

// ImageOptions tunes an image insertion. A nil Index appends at the end of
// the body; dimensions are in points.
type ImageOptions struct {
	Index  *int64
	Width  *float64
	Height *float64
}

// InsertImageResult is the payload of an insert-image operation.
type InsertImageResult struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	DocumentID string `json:"document_id"`
	InsertedAt int64  `json:"inserted_at"`
	ImageURL   string `json:"image_url"`
	RevisionID string `json:"revision_id,omitempty"`
}

// InsertImage places an inline image fetched from a public URL.
func (s *Service) InsertImage(ctx context.Context, documentID, imageURL string, opts ImageOptions) (*InsertImageResult, error) {
	index, err := s.resolveIndex(ctx, documentID, opts.Index)
	if err != nil {
		return nil, err
	}

	req := &InsertInlineImageRequest{
		Location: Location{Index: index},
		URI:      imageURL,
	}
	if opts.Width != nil || opts.Height != nil {
		size := &ObjectSize{}
		if opts.Width != nil {
			size.Width = &Dimension{Magnitude: *opts.Width, Unit: "PT"}
		}
		if opts.Height != nil {
			size.Height = &Dimension{Magnitude: *opts.Height, Unit: "PT"}
		}
		req.ObjectSize = size
	}

	resp, err := s.BatchUpdate(ctx, documentID, []Request{{InsertInlineImage: req}})
	if err != nil {
		return nil, err
	}
	return &InsertImageResult{
		Status:     statusSuccess,
		Operation:  "insert_image",
		DocumentID: documentID,
		InsertedAt: index,
		ImageURL:   imageURL,
		RevisionID: resp.DocumentID,
	}, nil
}

// InsertTableResult is the payload of an insert-table operation.
type InsertTableResult struct {
	Status     string `json:"status"`
	Operation  string `json:"operation"`
	DocumentID string `json:"document_id"`
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	InsertedAt int64  `json:"inserted_at"`
}

// InsertTable allocates a rows x cols grid and populates it from data in
// the same batch. Cell indexes are computed from the table's insertion
// offset, so no intermediate fetch is needed; cells are filled in reverse
// row-major order to keep the precomputed offsets stable.
func (s *Service) InsertTable(ctx context.Context, documentID string, rows, cols int, index *int64, data [][]string) (*InsertTableResult, error) {
	at, err := s.resolveIndex(ctx, documentID, index)
	if err != nil {
		return nil, err
	}

	requests := []Request{{
		InsertTable: &InsertTableRequest{Rows: rows, Columns: cols, Location: Location{Index: at}},
	}}
	for r := min(len(data), rows) - 1; r >= 0; r-- {
		row := data[r]
		for c := min(len(row), cols) - 1; c >= 0; c-- {
			if row[c] == "" {
				continue
			}
			requests = append(requests, Request{InsertText: &InsertTextRequest{
				Location: Location{Index: markdown.CellTextIndex(at, r, c, cols)},
				Text:     row[c],
			}})
		}
	}

	if _, err := s.BatchUpdate(ctx, documentID, requests); err != nil {
		return nil, err
	}
	return &InsertTableResult{
		Status:     statusSuccess,
		Operation:  "insert_table",
		DocumentID: documentID,
		Rows:       rows,
		Columns:    cols,
		InsertedAt: at,
	}, nil
}

// MarkdownResult is the payload of the markdown-driven operations.
type MarkdownResult struct {
	Status       string `json:"status"`
	Operation    string `json:"operation"`
	DocumentID   string `json:"document_id"`
	Title        string `json:"title,omitempty"`
	RevisionID   string `json:"revision_id,omitempty"`
	InsertedAt   int64  `json:"inserted_at,omitempty"`
	EditsApplied int    `json:"edits_applied"`
}

// CreateFromMarkdown creates a document and renders markdown into it as
// one atomic batch.
func (s *Service) CreateFromMarkdown(ctx context.Context, title, source string) (*MarkdownResult, error) {
	ops, err := markdown.CompileString(source, markdown.MinIndex, s.options)
	if err != nil {
		return nil, err
	}

	created, err := s.Create(ctx, title, "")
	if err != nil {
		return nil, err
	}

	requests := BatchFromOps(ops)
	if len(requests) > 0 {
		if _, err := s.BatchUpdate(ctx, created.DocumentID, requests); err != nil {
			return nil, err
		}
	}
	return &MarkdownResult{
		Status:       statusSuccess,
		Operation:    "create_from_markdown",
		DocumentID:   created.DocumentID,
		Title:        title,
		RevisionID:   created.RevisionID,
		EditsApplied: len(requests),
	}, nil
}

// InsertFromMarkdown renders markdown into an existing document at the
// given index, defaulting to the end of the body.
func (s *Service) InsertFromMarkdown(ctx context.Context, documentID, source string, index *int64) (*MarkdownResult, error) {
	at, err := s.resolveIndex(ctx, documentID, index)
	if err != nil {
		return nil, err
	}

	ops, err := markdown.CompileString(source, at, s.options)
	if err != nil {
		return nil, err
	}

	requests := BatchFromOps(ops)
	if len(requests) > 0 {
		if _, err := s.BatchUpdate(ctx, documentID, requests); err != nil {
			return nil, err
		}
	}
	return &MarkdownResult{
		Status:       statusSuccess,
		Operation:    "insert_from_markdown",
		DocumentID:   documentID,
		InsertedAt:   at,
		EditsApplied: len(requests),
	}, nil
}

// resolveIndex returns the explicit index or, when nil, the end of body.
func (s *Service) resolveIndex(ctx context.Context, documentID string, index *int64) (int64, error) {
	if index != nil {
		return *index, nil
	}
	return s.endIndex(ctx, documentID)
}
