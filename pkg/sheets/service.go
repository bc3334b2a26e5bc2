// Package sheets implements spreadsheet operations against the Sheets
// REST API: the values surface for cell data and the structural
// batchUpdate surface for sheet management and formatting.
package sheets

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/yaklabco/gsuite/pkg/googleapi"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

const statusSuccess = "success"

// Service exposes the spreadsheet operations.
type Service struct {
	// BaseURL is the API root, overridable in tests.
	BaseURL string

	client *googleapi.Client
}

// NewService builds a Service on an authenticated transport.
func NewService(client *googleapi.Client) *Service {
	return &Service{
		BaseURL: defaultBaseURL,
		client:  client,
	}
}

func (s *Service) spreadsheetURL(spreadsheetID string) string {
	return fmt.Sprintf("%s/spreadsheets/%s", s.BaseURL, spreadsheetID)
}

func (s *Service) valuesURL(spreadsheetID, a1Range string) string {
	return fmt.Sprintf("%s/values/%s", s.spreadsheetURL(spreadsheetID), url.PathEscape(a1Range))
}

// Request is one entry of a structural batchUpdate payload.
type Request struct {
	AddSheet              *AddSheetRequest              `json:"addSheet,omitempty"`
	DeleteSheet           *DeleteSheetRequest           `json:"deleteSheet,omitempty"`
	UpdateSheetProperties *UpdateSheetPropertiesRequest `json:"updateSheetProperties,omitempty"`
	RepeatCell            *RepeatCellRequest            `json:"repeatCell,omitempty"`
	MergeCells            *MergeCellsRequest            `json:"mergeCells,omitempty"`
	FindReplace           *FindReplaceRequest           `json:"findReplace,omitempty"`
}

type SheetProperties struct {
	SheetID        int64           `json:"sheetId,omitempty"`
	Title          string          `json:"title,omitempty"`
	Index          *int            `json:"index,omitempty"`
	SheetType      string          `json:"sheetType,omitempty"`
	GridProperties *GridProperties `json:"gridProperties,omitempty"`
}

type GridProperties struct {
	RowCount          int64  `json:"rowCount,omitempty"`
	ColumnCount       int64  `json:"columnCount,omitempty"`
	FrozenRowCount    *int64 `json:"frozenRowCount,omitempty"`
	FrozenColumnCount *int64 `json:"frozenColumnCount,omitempty"`
}

type AddSheetRequest struct {
	Properties SheetProperties `json:"properties"`
}

type DeleteSheetRequest struct {
	SheetID int64 `json:"sheetId"`
}

type UpdateSheetPropertiesRequest struct {
	Properties SheetProperties `json:"properties"`
	Fields     string          `json:"fields"`
}

type RepeatCellRequest struct {
	Range  GridRange `json:"range"`
	Cell   CellData  `json:"cell"`
	Fields string    `json:"fields"`
}

type CellData struct {
	UserEnteredFormat CellFormat `json:"userEnteredFormat"`
}

type CellFormat struct {
	TextFormat          *TextFormat `json:"textFormat,omitempty"`
	BackgroundColor     *RGBColor   `json:"backgroundColor,omitempty"`
	HorizontalAlignment string      `json:"horizontalAlignment,omitempty"`
}

type TextFormat struct {
	Bold       *bool   `json:"bold,omitempty"`
	Italic     *bool   `json:"italic,omitempty"`
	Underline  *bool   `json:"underline,omitempty"`
	FontSize   *int    `json:"fontSize,omitempty"`
	FontFamily *string `json:"fontFamily,omitempty"`
}

type RGBColor struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}

type MergeCellsRequest struct {
	Range     GridRange `json:"range"`
	MergeType string    `json:"mergeType"`
}

type FindReplaceRequest struct {
	Find            string `json:"find"`
	Replacement     string `json:"replacement"`
	MatchCase       bool   `json:"matchCase"`
	MatchEntireCell bool   `json:"matchEntireCell"`
	SearchByRegex   bool   `json:"searchByRegex"`
	IncludeFormulas bool   `json:"includeFormulas"`
	SheetID         *int64 `json:"sheetId,omitempty"`
}

type batchUpdateResponse struct {
	Replies []reply `json:"replies"`
}

type reply struct {
	AddSheet *struct {
		Properties SheetProperties `json:"properties"`
	} `json:"addSheet,omitempty"`
	FindReplace *findReplaceReply `json:"findReplace,omitempty"`
}

type findReplaceReply struct {
	OccurrencesChanged int64 `json:"occurrencesChanged"`
	ValuesChanged      int64 `json:"valuesChanged"`
	SheetsChanged      int64 `json:"sheetsChanged"`
	FormulasChanged    int64 `json:"formulasChanged"`
}

func (s *Service) batchUpdate(ctx context.Context, spreadsheetID string, requests []Request) (*batchUpdateResponse, error) {
	var resp batchUpdateResponse
	err := s.client.PostJSON(ctx, s.spreadsheetURL(spreadsheetID)+":batchUpdate", nil,
		map[string]any{"requests": requests}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// SheetInfo summarizes one sheet of a spreadsheet in result payloads.
type SheetInfo struct {
	Title   string `json:"title"`
	SheetID int64  `json:"sheet_id"`
}

// CreateResult is the payload of a create operation.
type CreateResult struct {
	Status         string      `json:"status"`
	Operation      string      `json:"operation"`
	SpreadsheetID  string      `json:"spreadsheet_id"`
	Title          string      `json:"title"`
	SpreadsheetURL string      `json:"spreadsheet_url"`
	Sheets         []SheetInfo `json:"sheets"`
}

// Create makes a spreadsheet, optionally with named sheets, and seeds the
// first sheet from data when given.
func (s *Service) Create(ctx context.Context, title string, sheetTitles []string, data [][]any) (*CreateResult, error) {
	body := map[string]any{
		"properties": map[string]any{"title": title},
	}
	if len(sheetTitles) > 0 {
		sheetList := make([]map[string]any, len(sheetTitles))
		for i, name := range sheetTitles {
			sheetList[i] = map[string]any{
				"properties": map[string]any{"title": name, "index": i},
			}
		}
		body["sheets"] = sheetList
	}

	var created struct {
		SpreadsheetID  string `json:"spreadsheetId"`
		SpreadsheetURL string `json:"spreadsheetUrl"`
		Properties     struct {
			Title string `json:"title"`
		} `json:"properties"`
		Sheets []struct {
			Properties SheetProperties `json:"properties"`
		} `json:"sheets"`
	}
	err := s.client.PostJSON(ctx, s.BaseURL+"/spreadsheets", nil, body, &created)
	if err != nil {
		return nil, err
	}

	if len(data) > 0 {
		firstSheet := "Sheet1"
		if len(created.Sheets) > 0 && created.Sheets[0].Properties.Title != "" {
			firstSheet = created.Sheets[0].Properties.Title
		}
		if _, err := s.Write(ctx, created.SpreadsheetID, firstSheet+"!A1", data); err != nil {
			return nil, err
		}
	}

	sheets := make([]SheetInfo, len(created.Sheets))
	for i, sh := range created.Sheets {
		sheets[i] = SheetInfo{Title: sh.Properties.Title, SheetID: sh.Properties.SheetID}
	}
	return &CreateResult{
		Status:         statusSuccess,
		Operation:      "create",
		SpreadsheetID:  created.SpreadsheetID,
		Title:          created.Properties.Title,
		SpreadsheetURL: created.SpreadsheetURL,
		Sheets:         sheets,
	}, nil
}

// RangeValues is one read range with its dimensions.
type RangeValues struct {
	Range   string  `json:"range"`
	Values  [][]any `json:"values"`
	Rows    int     `json:"rows"`
	Columns int     `json:"columns"`
}

// ReadResult is the payload of a read operation.
type ReadResult struct {
	Status        string  `json:"status"`
	Operation     string  `json:"operation"`
	SpreadsheetID string  `json:"spreadsheet_id"`
	Range         string  `json:"range"`
	Values        [][]any `json:"values"`
	Rows          int     `json:"rows"`
	Columns       int     `json:"columns"`
}

// Read fetches the values of one A1 range.
func (s *Service) Read(ctx context.Context, spreadsheetID, a1Range string) (*ReadResult, error) {
	var resp struct {
		Range  string  `json:"range"`
		Values [][]any `json:"values"`
	}
	if err := s.client.GetJSON(ctx, s.valuesURL(spreadsheetID, a1Range), nil, &resp); err != nil {
		return nil, err
	}
	return &ReadResult{
		Status:        statusSuccess,
		Operation:     "read",
		SpreadsheetID: spreadsheetID,
		Range:         resp.Range,
		Values:        resp.Values,
		Rows:          len(resp.Values),
		Columns:       firstRowWidth(resp.Values),
	}, nil
}

// WriteResult is the payload of write and append operations.
type WriteResult struct {
	Status         string `json:"status"`
	Operation      string `json:"operation"`
	SpreadsheetID  string `json:"spreadsheet_id"`
	UpdatedRange   string `json:"updated_range"`
	UpdatedRows    int64  `json:"updated_rows"`
	UpdatedColumns int64  `json:"updated_columns"`
	UpdatedCells   int64  `json:"updated_cells"`
}

type updateValuesResponse struct {
	UpdatedRange   string `json:"updatedRange"`
	UpdatedRows    int64  `json:"updatedRows"`
	UpdatedColumns int64  `json:"updatedColumns"`
	UpdatedCells   int64  `json:"updatedCells"`
}

// Write overwrites a range. Values are interpreted as user input, so
// strings that look like formulas or numbers behave as they would when
// typed into a cell.
func (s *Service) Write(ctx context.Context, spreadsheetID, a1Range string, values [][]any) (*WriteResult, error) {
	query := url.Values{"valueInputOption": {"USER_ENTERED"}}
	body := map[string]any{"range": a1Range, "values": values}

	var resp updateValuesResponse
	err := s.client.PutJSON(ctx, s.valuesURL(spreadsheetID, a1Range), query, body, &resp)
	if err != nil {
		return nil, err
	}
	return writeResult("write", spreadsheetID, resp), nil
}

// Append inserts rows after the last data row of the range's table.
func (s *Service) Append(ctx context.Context, spreadsheetID, a1Range string, values [][]any) (*WriteResult, error) {
	query := url.Values{
		"valueInputOption": {"USER_ENTERED"},
		"insertDataOption": {"INSERT_ROWS"},
	}
	body := map[string]any{"range": a1Range, "values": values}

	var resp struct {
		Updates updateValuesResponse `json:"updates"`
	}
	err := s.client.PostJSON(ctx, s.valuesURL(spreadsheetID, a1Range)+":append", query, body, &resp)
	if err != nil {
		return nil, err
	}
	return writeResult("append", spreadsheetID, resp.Updates), nil
}

func writeResult(operation, spreadsheetID string, resp updateValuesResponse) *WriteResult {
	return &WriteResult{
		Status:         statusSuccess,
		Operation:      operation,
		SpreadsheetID:  spreadsheetID,
		UpdatedRange:   resp.UpdatedRange,
		UpdatedRows:    resp.UpdatedRows,
		UpdatedColumns: resp.UpdatedColumns,
		UpdatedCells:   resp.UpdatedCells,
	}
}

// ClearResult is the payload of a clear operation.
type ClearResult struct {
	Status        string `json:"status"`
	Operation     string `json:"operation"`
	SpreadsheetID string `json:"spreadsheet_id"`
	ClearedRange  string `json:"cleared_range"`
}

// Clear empties the values of a range, leaving formatting intact.
func (s *Service) Clear(ctx context.Context, spreadsheetID, a1Range string) (*ClearResult, error) {
	err := s.client.PostJSON(ctx, s.valuesURL(spreadsheetID, a1Range)+":clear", nil,
		map[string]any{}, nil)
	if err != nil {
		return nil, err
	}
	return &ClearResult{
		Status:        statusSuccess,
		Operation:     "clear",
		SpreadsheetID: spreadsheetID,
		ClearedRange:  a1Range,
	}, nil
}

// BatchReadResult is the payload of a batch-read operation.
type BatchReadResult struct {
	Status        string        `json:"status"`
	Operation     string        `json:"operation"`
	SpreadsheetID string        `json:"spreadsheet_id"`
	Ranges        []RangeValues `json:"ranges"`
}

// BatchRead fetches several ranges in one call.
func (s *Service) BatchRead(ctx context.Context, spreadsheetID string, ranges []string) (*BatchReadResult, error) {
	query := url.Values{"ranges": ranges}

	var resp struct {
		ValueRanges []struct {
			Range  string  `json:"range"`
			Values [][]any `json:"values"`
		} `json:"valueRanges"`
	}
	err := s.client.GetJSON(ctx, s.spreadsheetURL(spreadsheetID)+"/values:batchGet", query, &resp)
	if err != nil {
		return nil, err
	}

	out := make([]RangeValues, len(resp.ValueRanges))
	for i, vr := range resp.ValueRanges {
		out[i] = RangeValues{
			Range:   vr.Range,
			Values:  vr.Values,
			Rows:    len(vr.Values),
			Columns: firstRowWidth(vr.Values),
		}
	}
	return &BatchReadResult{
		Status:        statusSuccess,
		Operation:     "batch-read",
		SpreadsheetID: spreadsheetID,
		Ranges:        out,
	}, nil
}

// RangeData pairs an A1 range with the values to write there.
type RangeData struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

// BatchWriteResult is the payload of a batch-write operation.
type BatchWriteResult struct {
	Status              string `json:"status"`
	Operation           string `json:"operation"`
	SpreadsheetID       string `json:"spreadsheet_id"`
	TotalUpdatedRows    int64  `json:"total_updated_rows"`
	TotalUpdatedColumns int64  `json:"total_updated_columns"`
	TotalUpdatedCells   int64  `json:"total_updated_cells"`
	TotalUpdatedSheets  int64  `json:"total_updated_sheets"`
}

// BatchWrite overwrites several ranges in one call.
func (s *Service) BatchWrite(ctx context.Context, spreadsheetID string, data []RangeData) (*BatchWriteResult, error) {
	body := map[string]any{
		"valueInputOption": "USER_ENTERED",
		"data":             data,
	}

	var resp struct {
		TotalUpdatedRows    int64 `json:"totalUpdatedRows"`
		TotalUpdatedColumns int64 `json:"totalUpdatedColumns"`
		TotalUpdatedCells   int64 `json:"totalUpdatedCells"`
		TotalUpdatedSheets  int64 `json:"totalUpdatedSheets"`
	}
	err := s.client.PostJSON(ctx, s.spreadsheetURL(spreadsheetID)+"/values:batchUpdate", nil, body, &resp)
	if err != nil {
		return nil, err
	}
	return &BatchWriteResult{
		Status:              statusSuccess,
		Operation:           "batch-write",
		SpreadsheetID:       spreadsheetID,
		TotalUpdatedRows:    resp.TotalUpdatedRows,
		TotalUpdatedColumns: resp.TotalUpdatedColumns,
		TotalUpdatedCells:   resp.TotalUpdatedCells,
		TotalUpdatedSheets:  resp.TotalUpdatedSheets,
	}, nil
}

// SheetMetadata describes one sheet in a metadata payload.
type SheetMetadata struct {
	Title             string `json:"title"`
	SheetID           int64  `json:"sheet_id"`
	Index             int    `json:"index"`
	SheetType         string `json:"sheet_type"`
	RowCount          int64  `json:"row_count"`
	ColumnCount       int64  `json:"column_count"`
	FrozenRowCount    int64  `json:"frozen_row_count"`
	FrozenColumnCount int64  `json:"frozen_column_count"`
}

// MetadataResult is the payload of a get-metadata operation.
type MetadataResult struct {
	Status         string          `json:"status"`
	Operation      string          `json:"operation"`
	SpreadsheetID  string          `json:"spreadsheet_id"`
	Title          string          `json:"title"`
	Locale         string          `json:"locale"`
	TimeZone       string          `json:"time_zone"`
	SpreadsheetURL string          `json:"spreadsheet_url"`
	Sheets         []SheetMetadata `json:"sheets"`
}

// Metadata fetches spreadsheet-level and per-sheet properties.
func (s *Service) Metadata(ctx context.Context, spreadsheetID string) (*MetadataResult, error) {
	var resp struct {
		SpreadsheetID  string `json:"spreadsheetId"`
		SpreadsheetURL string `json:"spreadsheetUrl"`
		Properties     struct {
			Title    string `json:"title"`
			Locale   string `json:"locale"`
			TimeZone string `json:"timeZone"`
		} `json:"properties"`
		Sheets []struct {
			Properties SheetProperties `json:"properties"`
		} `json:"sheets"`
	}
	if err := s.client.GetJSON(ctx, s.spreadsheetURL(spreadsheetID), nil, &resp); err != nil {
		return nil, err
	}

	sheets := make([]SheetMetadata, len(resp.Sheets))
	for i, sh := range resp.Sheets {
		props := sh.Properties
		meta := SheetMetadata{
			Title:     props.Title,
			SheetID:   props.SheetID,
			SheetType: props.SheetType,
		}
		if props.Index != nil {
			meta.Index = *props.Index
		}
		if grid := props.GridProperties; grid != nil {
			meta.RowCount = grid.RowCount
			meta.ColumnCount = grid.ColumnCount
			if grid.FrozenRowCount != nil {
				meta.FrozenRowCount = *grid.FrozenRowCount
			}
			if grid.FrozenColumnCount != nil {
				meta.FrozenColumnCount = *grid.FrozenColumnCount
			}
		}
		sheets[i] = meta
	}
	return &MetadataResult{
		Status:         statusSuccess,
		Operation:      "get-metadata",
		SpreadsheetID:  resp.SpreadsheetID,
		Title:          resp.Properties.Title,
		Locale:         resp.Properties.Locale,
		TimeZone:       resp.Properties.TimeZone,
		SpreadsheetURL: resp.SpreadsheetURL,
		Sheets:         sheets,
	}, nil
}

// AddSheetResult is the payload of an add-sheet operation.
type AddSheetResult struct {
	Status        string `json:"status"`
	Operation     string `json:"operation"`
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetID       int64  `json:"sheet_id"`
	Title         string `json:"title"`
}

// AddSheet appends a new sheet with the given title.
func (s *Service) AddSheet(ctx context.Context, spreadsheetID, title string) (*AddSheetResult, error) {
	resp, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		AddSheet: &AddSheetRequest{Properties: SheetProperties{Title: title}},
	}})
	if err != nil {
		return nil, err
	}

	result := &AddSheetResult{
		Status:        statusSuccess,
		Operation:     "add-sheet",
		SpreadsheetID: spreadsheetID,
	}
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil {
		result.SheetID = resp.Replies[0].AddSheet.Properties.SheetID
		result.Title = resp.Replies[0].AddSheet.Properties.Title
	}
	return result, nil
}

// DeleteSheetResult is the payload of a delete-sheet operation.
type DeleteSheetResult struct {
	Status         string `json:"status"`
	Operation      string `json:"operation"`
	SpreadsheetID  string `json:"spreadsheet_id"`
	DeletedSheetID int64  `json:"deleted_sheet_id"`
}

// DeleteSheet removes a sheet by its numeric id.
func (s *Service) DeleteSheet(ctx context.Context, spreadsheetID string, sheetID int64) (*DeleteSheetResult, error) {
	_, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		DeleteSheet: &DeleteSheetRequest{SheetID: sheetID},
	}})
	if err != nil {
		return nil, err
	}
	return &DeleteSheetResult{
		Status:         statusSuccess,
		Operation:      "delete-sheet",
		SpreadsheetID:  spreadsheetID,
		DeletedSheetID: sheetID,
	}, nil
}

// RenameSheetResult is the payload of a rename-sheet operation.
type RenameSheetResult struct {
	Status        string `json:"status"`
	Operation     string `json:"operation"`
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetID       int64  `json:"sheet_id"`
	NewTitle      string `json:"new_title"`
}

// RenameSheet retitles a sheet.
func (s *Service) RenameSheet(ctx context.Context, spreadsheetID string, sheetID int64, title string) (*RenameSheetResult, error) {
	_, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		UpdateSheetProperties: &UpdateSheetPropertiesRequest{
			Properties: SheetProperties{SheetID: sheetID, Title: title},
			Fields:     "title",
		},
	}})
	if err != nil {
		return nil, err
	}
	return &RenameSheetResult{
		Status:        statusSuccess,
		Operation:     "rename-sheet",
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		NewTitle:      title,
	}, nil
}

// FormatOptions selects the cell formatting applied by Format. Nil fields
// are left untouched.
type FormatOptions struct {
	Bold            *bool     `json:"bold,omitempty"`
	Italic          *bool     `json:"italic,omitempty"`
	Underline       *bool     `json:"underline,omitempty"`
	FontSize        *int      `json:"font_size,omitempty"`
	FontFamily      *string   `json:"font_family,omitempty"`
	BackgroundColor *RGBColor `json:"background_color,omitempty"`
	HorizontalAlign string    `json:"horizontal_align,omitempty"`
}

// FormatResult is the payload of a format operation.
type FormatResult struct {
	Status        string        `json:"status"`
	Operation     string        `json:"operation"`
	SpreadsheetID string        `json:"spreadsheet_id"`
	SheetID       int64         `json:"sheet_id"`
	Range         string        `json:"range"`
	FormatApplied FormatOptions `json:"format_applied"`
}

// Format repeats one cell format over an A1 range.
func (s *Service) Format(ctx context.Context, spreadsheetID string, sheetID int64, a1Range string, opts FormatOptions) (*FormatResult, error) {
	format, fields := buildCellFormat(opts)

	_, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		RepeatCell: &RepeatCellRequest{
			Range:  ParseGridRange(a1Range, sheetID),
			Cell:   CellData{UserEnteredFormat: format},
			Fields: fmt.Sprintf("userEnteredFormat(%s)", fields),
		},
	}})
	if err != nil {
		return nil, err
	}
	return &FormatResult{
		Status:        statusSuccess,
		Operation:     "format",
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		Range:         a1Range,
		FormatApplied: opts,
	}, nil
}

// MergeCellsResult is the payload of a merge-cells operation.
type MergeCellsResult struct {
	Status        string `json:"status"`
	Operation     string `json:"operation"`
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetID       int64  `json:"sheet_id"`
	Range         string `json:"range"`
	MergeType     string `json:"merge_type"`
}

// MergeCells merges the cells of an A1 range. mergeType is one of
// MERGE_ALL, MERGE_COLUMNS, MERGE_ROWS.
func (s *Service) MergeCells(ctx context.Context, spreadsheetID string, sheetID int64, a1Range, mergeType string) (*MergeCellsResult, error) {
	_, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		MergeCells: &MergeCellsRequest{
			Range:     ParseGridRange(a1Range, sheetID),
			MergeType: mergeType,
		},
	}})
	if err != nil {
		return nil, err
	}
	return &MergeCellsResult{
		Status:        statusSuccess,
		Operation:     "merge-cells",
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		Range:         a1Range,
		MergeType:     mergeType,
	}, nil
}

// FreezeResult is the payload of a freeze operation.
type FreezeResult struct {
	Status        string `json:"status"`
	Operation     string `json:"operation"`
	SpreadsheetID string `json:"spreadsheet_id"`
	SheetID       int64  `json:"sheet_id"`
	FrozenRows    *int64 `json:"frozen_rows,omitempty"`
	FrozenCols    *int64 `json:"frozen_cols,omitempty"`
}

// Freeze pins leading rows and/or columns of a sheet. Nil leaves that
// dimension unchanged.
func (s *Service) Freeze(ctx context.Context, spreadsheetID string, sheetID int64, rows, cols *int64) (*FreezeResult, error) {
	grid := &GridProperties{FrozenRowCount: rows, FrozenColumnCount: cols}
	var fields []string
	if rows != nil {
		fields = append(fields, "gridProperties.frozenRowCount")
	}
	if cols != nil {
		fields = append(fields, "gridProperties.frozenColumnCount")
	}

	_, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		UpdateSheetProperties: &UpdateSheetPropertiesRequest{
			Properties: SheetProperties{SheetID: sheetID, GridProperties: grid},
			Fields:     strings.Join(fields, ","),
		},
	}})
	if err != nil {
		return nil, err
	}
	return &FreezeResult{
		Status:        statusSuccess,
		Operation:     "freeze",
		SpreadsheetID: spreadsheetID,
		SheetID:       sheetID,
		FrozenRows:    rows,
		FrozenCols:    cols,
	}, nil
}

// FindReplaceResult is the payload of a find-replace operation.
type FindReplaceResult struct {
	Status             string `json:"status"`
	Operation          string `json:"operation"`
	SpreadsheetID      string `json:"spreadsheet_id"`
	Find               string `json:"find"`
	Replace            string `json:"replace"`
	OccurrencesChanged int64  `json:"occurrences_changed"`
	ValuesChanged      int64  `json:"values_changed"`
	SheetsChanged      int64  `json:"sheets_changed"`
	FormulasChanged    int64  `json:"formulas_changed"`
}

// FindReplace replaces literal text across the spreadsheet, or one sheet
// when sheetID is set.
func (s *Service) FindReplace(ctx context.Context, spreadsheetID, find, replace string, sheetID *int64, matchCase, matchEntireCell bool) (*FindReplaceResult, error) {
	resp, err := s.batchUpdate(ctx, spreadsheetID, []Request{{
		FindReplace: &FindReplaceRequest{
			Find:            find,
			Replacement:     replace,
			MatchCase:       matchCase,
			MatchEntireCell: matchEntireCell,
			SheetID:         sheetID,
		},
	}})
	if err != nil {
		return nil, err
	}

	result := &FindReplaceResult{
		Status:        statusSuccess,
		Operation:     "find-replace",
		SpreadsheetID: spreadsheetID,
		Find:          find,
		Replace:       replace,
	}
	if len(resp.Replies) > 0 && resp.Replies[0].FindReplace != nil {
		fr := resp.Replies[0].FindReplace
		result.OccurrencesChanged = fr.OccurrencesChanged
		result.ValuesChanged = fr.ValuesChanged
		result.SheetsChanged = fr.SheetsChanged
		result.FormulasChanged = fr.FormulasChanged
	}
	return result, nil
}

func buildCellFormat(opts FormatOptions) (CellFormat, string) {
	var format CellFormat
	var fields []string

	text := &TextFormat{
		Bold:       opts.Bold,
		Italic:     opts.Italic,
		Underline:  opts.Underline,
		FontSize:   opts.FontSize,
		FontFamily: opts.FontFamily,
	}
	if opts.Bold != nil || opts.Italic != nil || opts.Underline != nil ||
		opts.FontSize != nil || opts.FontFamily != nil {
		format.TextFormat = text
		fields = append(fields, "textFormat")
	}
	if opts.BackgroundColor != nil {
		format.BackgroundColor = opts.BackgroundColor
		fields = append(fields, "backgroundColor")
	}
	if opts.HorizontalAlign != "" {
		format.HorizontalAlignment = opts.HorizontalAlign
		fields = append(fields, "horizontalAlignment")
	}
	return format, strings.Join(fields, ",")
}

func firstRowWidth(values [][]any) int {
	if len(values) == 0 {
		return 0
	}
	return len(values[0])
}
