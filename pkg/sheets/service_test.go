package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gsuite/pkg/googleapi"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   map[string]any
}

func newTestService(t *testing.T, handlers map[string]any) (*Service, *[]recordedRequest) {
	t.Helper()
	var calls []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		calls = append(calls, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Body:   body,
		})

		response, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	t.Cleanup(srv.Close)

	client := googleapi.NewClient("test-token")
	client.HTTP = srv.Client()
	svc := NewService(client)
	svc.BaseURL = srv.URL
	return svc, &calls
}

func TestService_Read(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /spreadsheets/ss-1/values/Data!A1:B2": map[string]any{
			"range":  "Data!A1:B2",
			"values": []any{[]any{"a", "b"}, []any{"c", "d"}},
		},
	})

	result, err := svc.Read(context.Background(), "ss-1", "Data!A1:B2")
	require.NoError(t, err)
	require.Equal(t, "read", result.Operation)
	require.Equal(t, 2, result.Rows)
	require.Equal(t, 2, result.Columns)
	require.Equal(t, "Data!A1:B2", result.Range)
	require.Len(t, *calls, 1)
}

func TestService_WriteUsesUserEnteredOption(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"PUT /spreadsheets/ss-1/values/A1:B1": map[string]any{
			"updatedRange":   "Sheet1!A1:B1",
			"updatedRows":    1,
			"updatedColumns": 2,
			"updatedCells":   2,
		},
	})

	result, err := svc.Write(context.Background(), "ss-1", "A1:B1", [][]any{{"x", "y"}})
	require.NoError(t, err)
	require.Equal(t, int64(2), result.UpdatedCells)
	require.Equal(t, "Sheet1!A1:B1", result.UpdatedRange)

	call := (*calls)[0]
	require.Equal(t, []string{"USER_ENTERED"}, call.Query["valueInputOption"])
	require.Equal(t, "A1:B1", call.Body["range"])
}

func TestService_AppendInsertsRows(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /spreadsheets/ss-1/values/Log!A1:append": map[string]any{
			"updates": map[string]any{
				"updatedRange": "Log!A5:B5",
				"updatedRows":  1,
				"updatedCells": 2,
			},
		},
	})

	result, err := svc.Append(context.Background(), "ss-1", "Log!A1", [][]any{{"ts", "event"}})
	require.NoError(t, err)
	require.Equal(t, "append", result.Operation)
	require.Equal(t, "Log!A5:B5", result.UpdatedRange)

	call := (*calls)[0]
	require.Equal(t, []string{"INSERT_ROWS"}, call.Query["insertDataOption"])
}

func TestService_BatchRead(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /spreadsheets/ss-1/values:batchGet": map[string]any{
			"valueRanges": []any{
				map[string]any{"range": "A1:A2", "values": []any{[]any{"1"}, []any{"2"}}},
				map[string]any{"range": "B1:B1", "values": []any{[]any{"x"}}},
			},
		},
	})

	result, err := svc.BatchRead(context.Background(), "ss-1", []string{"A1:A2", "B1:B1"})
	require.NoError(t, err)
	require.Len(t, result.Ranges, 2)
	require.Equal(t, 2, result.Ranges[0].Rows)
	require.Equal(t, 1, result.Ranges[1].Columns)

	call := (*calls)[0]
	require.Equal(t, []string{"A1:A2", "B1:B1"}, call.Query["ranges"])
}

func TestService_Metadata(t *testing.T) {
	svc, _ := newTestService(t, map[string]any{
		"GET /spreadsheets/ss-1": map[string]any{
			"spreadsheetId":  "ss-1",
			"spreadsheetUrl": "https://docs.google.com/spreadsheets/d/ss-1",
			"properties": map[string]any{
				"title": "Budget", "locale": "en_US", "timeZone": "Europe/Berlin",
			},
			"sheets": []any{
				map[string]any{"properties": map[string]any{
					"sheetId": 0, "title": "Sheet1", "index": 0, "sheetType": "GRID",
					"gridProperties": map[string]any{
						"rowCount": 1000, "columnCount": 26, "frozenRowCount": 1,
					},
				}},
			},
		},
	})

	result, err := svc.Metadata(context.Background(), "ss-1")
	require.NoError(t, err)
	require.Equal(t, "Budget", result.Title)
	require.Equal(t, "Europe/Berlin", result.TimeZone)
	require.Len(t, result.Sheets, 1)
	require.Equal(t, int64(1000), result.Sheets[0].RowCount)
	require.Equal(t, int64(1), result.Sheets[0].FrozenRowCount)
}

func TestService_AddSheetReadsReply(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /spreadsheets/ss-1:batchUpdate": map[string]any{
			"replies": []any{
				map[string]any{"addSheet": map[string]any{
					"properties": map[string]any{"sheetId": 123, "title": "Archive"},
				}},
			},
		},
	})

	result, err := svc.AddSheet(context.Background(), "ss-1", "Archive")
	require.NoError(t, err)
	require.Equal(t, int64(123), result.SheetID)
	require.Equal(t, "Archive", result.Title)

	requests := (*calls)[0].Body["requests"].([]any)
	add := requests[0].(map[string]any)["addSheet"].(map[string]any)
	require.Equal(t, "Archive", add["properties"].(map[string]any)["title"])
}

func TestService_FormatBuildsRepeatCell(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /spreadsheets/ss-1:batchUpdate": map[string]any{"replies": []any{}},
	})

	bold := true
	size := 12
	_, err := svc.Format(context.Background(), "ss-1", 7, "A1:B2", FormatOptions{
		Bold:     &bold,
		FontSize: &size,
	})
	require.NoError(t, err)

	requests := (*calls)[0].Body["requests"].([]any)
	repeat := requests[0].(map[string]any)["repeatCell"].(map[string]any)
	require.Equal(t, "userEnteredFormat(textFormat)", repeat["fields"])

	gridRange := repeat["range"].(map[string]any)
	require.Equal(t, float64(7), gridRange["sheetId"])
	require.Equal(t, float64(0), gridRange["startRowIndex"])
	require.Equal(t, float64(2), gridRange["endRowIndex"])

	textFormat := repeat["cell"].(map[string]any)["userEnteredFormat"].(map[string]any)["textFormat"].(map[string]any)
	require.Equal(t, true, textFormat["bold"])
	require.Equal(t, float64(12), textFormat["fontSize"])
}

func TestService_FreezeFieldMask(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /spreadsheets/ss-1:batchUpdate": map[string]any{"replies": []any{}},
	})

	rows := int64(2)
	result, err := svc.Freeze(context.Background(), "ss-1", 0, &rows, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), *result.FrozenRows)
	require.Nil(t, result.FrozenCols)

	requests := (*calls)[0].Body["requests"].([]any)
	update := requests[0].(map[string]any)["updateSheetProperties"].(map[string]any)
	require.Equal(t, "gridProperties.frozenRowCount", update["fields"])
}

func TestService_FindReplaceReadsReply(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /spreadsheets/ss-1:batchUpdate": map[string]any{
			"replies": []any{
				map[string]any{"findReplace": map[string]any{
					"occurrencesChanged": 4, "valuesChanged": 3, "sheetsChanged": 1,
				}},
			},
		},
	})

	sheetID := int64(7)
	result, err := svc.FindReplace(context.Background(), "ss-1", "old", "new", &sheetID, true, false)
	require.NoError(t, err)
	require.Equal(t, int64(4), result.OccurrencesChanged)
	require.Equal(t, int64(3), result.ValuesChanged)

	requests := (*calls)[0].Body["requests"].([]any)
	fr := requests[0].(map[string]any)["findReplace"].(map[string]any)
	require.Equal(t, float64(7), fr["sheetId"])
	require.Equal(t, true, fr["matchCase"])
	require.Equal(t, false, fr["searchByRegex"])
}

func TestService_CreateSeedsFirstSheet(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /spreadsheets": map[string]any{
			"spreadsheetId":  "ss-new",
			"spreadsheetUrl": "https://docs.google.com/spreadsheets/d/ss-new",
			"properties":     map[string]any{"title": "Plan"},
			"sheets": []any{
				map[string]any{"properties": map[string]any{"sheetId": 0, "title": "Main"}},
			},
		},
		"PUT /spreadsheets/ss-new/values/Main!A1": map[string]any{
			"updatedRange": "Main!A1:B1", "updatedCells": 2,
		},
	})

	result, err := svc.Create(context.Background(), "Plan", []string{"Main"}, [][]any{{"h1", "h2"}})
	require.NoError(t, err)
	require.Equal(t, "ss-new", result.SpreadsheetID)
	require.Equal(t, []SheetInfo{{Title: "Main", SheetID: 0}}, result.Sheets)
	require.Len(t, *calls, 2)
}
