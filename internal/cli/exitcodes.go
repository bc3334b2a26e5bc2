package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/gsuite/pkg/googleapi"
	"github.com/yaklabco/gsuite/pkg/markdown"
)

// Exit codes for gsuite. These are part of the scripting contract: callers
// branch on them to distinguish bad input from auth problems from upstream
// API failures.
const (
	// ExitSuccess indicates the operation completed.
	ExitSuccess = 0

	// ExitOperationFailed indicates the operation itself failed (for
	// example, invalid markdown or a missing local file).
	ExitOperationFailed = 1

	// ExitAuthError indicates authorization is missing, expired beyond
	// refresh, or otherwise broken.
	ExitAuthError = 2

	// ExitAPIError indicates Google rejected the request.
	ExitAPIError = 3

	// ExitInvalidArgs indicates bad command-line usage or a malformed
	// JSON request.
	ExitInvalidArgs = 4
)

// ExitError selects the process exit code for a failed command. By the
// time one is returned the JSON error payload has already been written to
// stdout, so main only inspects the code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode extracts the exit code from a command error. Errors that are
// not ExitError come from Cobra itself (unknown command, bad flag) and map
// to invalid usage.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidArgs
}

// failOperation writes the error payload for a failed operation and
// returns the matching ExitError.
func failOperation(w io.Writer, operation string, err error) error {
	var apiErr *googleapi.Error
	switch {
	case errors.As(err, &apiErr):
		printJSON(w, googleapi.ErrorPayload(operation, err))
		return &ExitError{Code: ExitAPIError, Err: err}

	case errors.Is(err, markdown.ErrInvalidIndex),
		errors.Is(err, markdown.ErrMalformedTable),
		errors.Is(err, markdown.ErrUnsupportedBlock):
		printJSON(w, map[string]any{
			"status":     "error",
			"error_code": "INVALID_MARKDOWN",
			"operation":  operation,
			"message":    err.Error(),
		})
		return &ExitError{Code: ExitOperationFailed, Err: err}

	default:
		printJSON(w, map[string]any{
			"status":     "error",
			"error_code": "OPERATION_FAILED",
			"operation":  operation,
			"message":    err.Error(),
		})
		return &ExitError{Code: ExitOperationFailed, Err: err}
	}
}

// failAuth writes the auth-failure payload and returns the auth exit code.
func failAuth(w io.Writer, err error) error {
	printJSON(w, map[string]any{
		"status":     "error",
		"error_code": "AUTH_FAILED",
		"message":    fmt.Sprintf("Authorization failed: %v", err),
	})
	return &ExitError{Code: ExitAuthError, Err: err}
}
