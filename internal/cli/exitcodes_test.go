package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gsuite/pkg/googleapi"
	"github.com/yaklabco/gsuite/pkg/markdown"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ExitSuccess, ExitCode(nil))
	assert.Equal(t, ExitAPIError, ExitCode(&ExitError{Code: ExitAPIError}))
	assert.Equal(t, ExitAuthError, ExitCode(fmt.Errorf("wrapped: %w", &ExitError{Code: ExitAuthError})))
	assert.Equal(t, ExitInvalidArgs, ExitCode(errors.New("unknown flag: --bogus")))
}

func TestFailOperation_APIError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	apiErr := &googleapi.Error{Status: 404, Message: "File not found", Body: `{"error":{"message":"File not found"}}`}

	err := failOperation(&buf, "download", apiErr)

	assert.Equal(t, ExitAPIError, ExitCode(err))
	assert.Contains(t, buf.String(), `"error_code": "API_ERROR"`)
	assert.Contains(t, buf.String(), `"operation": "download"`)
	assert.Contains(t, buf.String(), "File not found")
}

func TestFailOperation_InvalidMarkdown(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := failOperation(&buf, "create_from_markdown",
		fmt.Errorf("row 3: %w", markdown.ErrMalformedTable))

	assert.Equal(t, ExitOperationFailed, ExitCode(err))
	assert.Contains(t, buf.String(), `"error_code": "INVALID_MARKDOWN"`)
}

func TestFailOperation_Generic(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := failOperation(&buf, "upload", errors.New("file not found: /tmp/nope"))

	assert.Equal(t, ExitOperationFailed, ExitCode(err))
	assert.Contains(t, buf.String(), `"error_code": "OPERATION_FAILED"`)
	assert.Contains(t, buf.String(), `"status": "error"`)
}

func TestFailUsage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := failUsage(&buf, missingFields("spreadsheet_id", "range"))

	assert.Equal(t, ExitInvalidArgs, ExitCode(err))
	assert.Contains(t, buf.String(), `"error_code": "MISSING_REQUIRED_FIELDS"`)
	assert.Contains(t, buf.String(), "Required fields: spreadsheet_id, range")
}

func TestFailAuth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := failAuth(&buf, errors.New("invalid_grant"))

	assert.Equal(t, ExitAuthError, ExitCode(err))
	assert.Contains(t, buf.String(), `"error_code": "AUTH_FAILED"`)
	assert.Contains(t, buf.String(), "Authorization failed: invalid_grant")
}

func TestPrintJSON_RoundTrips(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printJSON(&buf, map[string]any{"status": "success", "operation": "version"})

	require.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), `"status": "success"`)
}

func TestDecodeInput_Malformed(t *testing.T) {
	t.Parallel()

	var dst struct{}
	err := decodeInput(bytes.NewBufferString("{not json"), &dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse JSON input")
}
