package markdown

import "errors"

// Validation errors reported before any edit op is emitted. A failed
// compile returns zero ops; there is no partial batch.
var (
	// ErrInvalidIndex indicates an insertion index below the first valid
	// body index (1) or beyond a caller-supplied bound.
	ErrInvalidIndex = errors.New("invalid insertion index")

	// ErrMalformedTable indicates a table with zero rows or columns, or a
	// header row whose column count disagrees with its separator.
	ErrMalformedTable = errors.New("malformed table")

	// ErrUnsupportedBlock indicates a construct the dialect deliberately
	// excludes, such as a nested list item.
	ErrUnsupportedBlock = errors.New("unsupported markdown construct")
)
