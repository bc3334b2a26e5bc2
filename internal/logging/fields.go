// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError     = "error"
	FieldPath      = "path"
	FieldOperation = "operation"
	FieldInput     = "input"
	FieldOutput    = "output"

	// Google resource fields.
	FieldDocumentID    = "document_id"
	FieldSpreadsheetID = "spreadsheet_id"
	FieldFileID        = "file_id"
	FieldRange         = "range"
	FieldScopes        = "scopes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
