package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/gsuite/internal/logging"
)

// printJSON writes one pretty-printed JSON document to w. Every command's
// stdout is exactly one of these; diagnostics go to stderr via the logger.
func printJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, `{"status":"error","error_code":"INTERNAL","message":%q}`+"\n", err.Error())
		return
	}
	fmt.Fprintln(w, string(data))
}

// decodeInput reads the JSON request document from r into dst. When r is
// an interactive terminal the user gets a hint that input is expected.
func decodeInput(r io.Reader, dst any) error {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		logging.Default().Info("reading JSON request from stdin; finish with EOF")
	}
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("parse JSON input: %w", err)
	}
	return nil
}

// usageError marks bad or missing request fields. It carries the stable
// error_code string for the JSON payload and always exits with
// ExitInvalidArgs.
type usageError struct {
	code    string
	message string
}

func (e *usageError) Error() string { return e.message }

func missingFields(fields ...string) *usageError {
	return &usageError{
		code:    "MISSING_REQUIRED_FIELDS",
		message: "Required fields: " + strings.Join(fields, ", "),
	}
}

func invalidInput(err error) *usageError {
	return &usageError{code: "INVALID_INPUT", message: err.Error()}
}

// failUsage writes the invalid-input payload and returns exit 4.
func failUsage(w io.Writer, uerr *usageError) error {
	printJSON(w, map[string]any{
		"status":     "error",
		"error_code": uerr.code,
		"message":    uerr.message,
	})
	return &ExitError{Code: ExitInvalidArgs, Err: uerr}
}
