package googleapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Error is a non-2xx response from a Google API endpoint. Message is the
// human-readable text extracted from the error envelope when present, and
// Body carries the raw response for diagnostics.
type Error struct {
	Status  int
	Message string
	Body    string
}

func (e *Error) Error() string {
	return e.Message
}

// ExtractErrorMessage pulls the message out of a Google error body. The
// APIs use two envelope shapes: `{"error": {"message": ...}}` for resource
// endpoints and `{"error_description": ...}` for the OAuth token endpoint.
// Returns "" when neither is present or the body is not JSON.
func ExtractErrorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return envelope.ErrorDescription
}

// ErrorPayload maps an operation name and a failure to the stable JSON
// error contract emitted on stdout. API errors carry the raw body under
// "details"; everything else is message-only.
func ErrorPayload(operation string, err error) map[string]any {
	payload := map[string]any{
		"status":     "error",
		"error_code": "API_ERROR",
		"operation":  operation,
		"message":    fmt.Sprintf("Google API error: %s", err),
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		payload["details"] = apiErr.Body
	}
	return payload
}
