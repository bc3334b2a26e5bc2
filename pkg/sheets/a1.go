package sheets

import "strings"

// GridRange is the zero-based, half-open rectangle used by structural
// spreadsheet requests. Absent bounds mean "unbounded on that side", which
// is how A1 references like "A:A" or "3:7" address whole columns or rows.
type GridRange struct {
	SheetID          int64  `json:"sheetId"`
	StartRowIndex    *int64 `json:"startRowIndex,omitempty"`
	EndRowIndex      *int64 `json:"endRowIndex,omitempty"`
	StartColumnIndex *int64 `json:"startColumnIndex,omitempty"`
	EndColumnIndex   *int64 `json:"endColumnIndex,omitempty"`
}

// ParseGridRange converts an A1 reference (with or without a sheet prefix)
// into a GridRange on the given sheet. Single references select one cell;
// the end bounds are exclusive, so "B2" maps to rows [1,2) and columns
// [1,2).
func ParseGridRange(a1 string, sheetID int64) GridRange {
	cellRange := a1
	if _, after, found := strings.Cut(a1, "!"); found {
		cellRange = after
	}

	grid := GridRange{SheetID: sheetID}

	start, end, found := strings.Cut(cellRange, ":")
	if !found {
		col, row := parseCellRef(cellRange)
		if col != nil {
			grid.StartColumnIndex = col
			grid.EndColumnIndex = int64Ptr(*col + 1)
		}
		if row != nil {
			grid.StartRowIndex = row
			grid.EndRowIndex = int64Ptr(*row + 1)
		}
		return grid
	}

	startCol, startRow := parseCellRef(start)
	endCol, endRow := parseCellRef(end)
	grid.StartColumnIndex = startCol
	grid.StartRowIndex = startRow
	if endCol != nil {
		grid.EndColumnIndex = int64Ptr(*endCol + 1)
	}
	if endRow != nil {
		grid.EndRowIndex = int64Ptr(*endRow + 1)
	}
	return grid
}

// parseCellRef splits a reference like "B12" into its zero-based column
// and row. Either part may be absent ("B" or "12").
func parseCellRef(ref string) (col, row *int64) {
	var letters, digits []byte
	for i := 0; i < len(ref); i++ {
		c := ref[i]
		switch {
		case c >= 'a' && c <= 'z' && len(digits) == 0:
			letters = append(letters, c-'a'+'A')
		case c >= 'A' && c <= 'Z' && len(digits) == 0:
			letters = append(letters, c)
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		}
	}

	if len(letters) > 0 {
		col = int64Ptr(colLettersToIndex(string(letters)))
	}
	if len(digits) > 0 {
		var n int64
		for _, d := range digits {
			n = n*10 + int64(d-'0')
		}
		if n > 0 {
			row = int64Ptr(n - 1)
		}
	}
	return col, row
}

// colLettersToIndex maps column letters to a zero-based index: A=0, Z=25,
// AA=26.
func colLettersToIndex(letters string) int64 {
	var result int64
	for i := 0; i < len(letters); i++ {
		result = result*26 + int64(letters[i]-'A'+1)
	}
	return result - 1
}

func int64Ptr(v int64) *int64 {
	return &v
}
