// Package googleapi is a thin authenticated transport for the Google REST
// APIs. It knows about bearer tokens, the JSON request/response shape, and
// the Google error envelope; everything endpoint-specific lives in the
// docs, sheets, and drive packages built on top of it.
package googleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/gsuite/pkg/fsutil"
)

const (
	userAgent      = "gsuite-cli/1.0"
	requestTimeout = 30 * time.Second
)

// Client issues authenticated requests on behalf of one access token.
// The zero value is not usable; construct with NewClient.
type Client struct {
	// HTTP is the underlying client. Tests swap it for an httptest-backed
	// one; production code keeps the default.
	HTTP *http.Client

	token string
}

// NewClient returns a client that authenticates every request with the
// given bearer token.
func NewClient(accessToken string) *Client {
	return &Client{
		HTTP:  &http.Client{Timeout: requestTimeout},
		token: accessToken,
	}
}

// GetJSON issues a GET and decodes the JSON response into out. A nil out
// discards the body.
func (c *Client) GetJSON(ctx context.Context, rawURL string, query url.Values, out any) error {
	return c.requestJSON(ctx, http.MethodGet, rawURL, query, nil, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into
// out. A nil body sends no payload; a nil out discards the response.
func (c *Client) PostJSON(ctx context.Context, rawURL string, query url.Values, body, out any) error {
	return c.requestJSON(ctx, http.MethodPost, rawURL, query, body, out)
}

// PutJSON issues a PUT with a JSON body and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, rawURL string, query url.Values, body, out any) error {
	return c.requestJSON(ctx, http.MethodPut, rawURL, query, body, out)
}

// PatchJSON issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) PatchJSON(ctx context.Context, rawURL string, query url.Values, body, out any) error {
	return c.requestJSON(ctx, http.MethodPatch, rawURL, query, body, out)
}

// DeleteNoContent issues a DELETE and expects an empty success response.
func (c *Client) DeleteNoContent(ctx context.Context, rawURL string, query url.Values) error {
	req, err := c.newRequest(ctx, http.MethodDelete, rawURL, query, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("delete %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return errorFromResponse(resp)
}

// DownloadToFile issues a GET and writes the raw response body to path,
// creating parent directories as needed. The write is atomic so a failed
// download never leaves a truncated file behind.
func (c *Client) DownloadToFile(ctx context.Context, rawURL string, query url.Values, path string) error {
	req, err := c.newRequest(ctx, http.MethodGet, rawURL, query, nil, "")
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read download body: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create download directory: %w", err)
		}
	}
	return fsutil.WriteAtomic(ctx, path, data, 0)
}

// PostMultipart uploads a file as a two-part related body: a JSON metadata
// part followed by the file content. This is the shape the Drive upload
// endpoint expects.
func (c *Client) PostMultipart(ctx context.Context, rawURL string, query url.Values, metadata any, filePath, mimeType, fileName string, out any) error {
	return c.requestMultipart(ctx, http.MethodPost, rawURL, query, metadata, filePath, mimeType, fileName, out)
}

// PatchMultipart updates file content and metadata in one request, used by
// Drive's update endpoint.
func (c *Client) PatchMultipart(ctx context.Context, rawURL string, query url.Values, metadata any, filePath, mimeType, fileName string, out any) error {
	return c.requestMultipart(ctx, http.MethodPatch, rawURL, query, metadata, filePath, mimeType, fileName, out)
}

func (c *Client) requestJSON(ctx context.Context, method, rawURL string, query url.Values, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, rawURL, query, payload, "application/json")
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), rawURL, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *Client) requestMultipart(ctx context.Context, method, rawURL string, query url.Values, metadata any, filePath, mimeType, fileName string, out any) error {
	fileData, _, err := fsutil.ReadFile(ctx, filePath)
	if err != nil {
		return fmt.Errorf("read upload file: %w", err)
	}
	metaData, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode upload metadata: %w", err)
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := form.CreatePart(metaHeader)
	if err != nil {
		return fmt.Errorf("create metadata part: %w", err)
	}
	if _, err := metaPart.Write(metaData); err != nil {
		return fmt.Errorf("write metadata part: %w", err)
	}

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", mimeType)
	fileHeader.Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, fileName))
	filePart, err := form.CreatePart(fileHeader)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := filePart.Write(fileData); err != nil {
		return fmt.Errorf("write file part: %w", err)
	}
	if err := form.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	contentType := "multipart/related; boundary=" + form.Boundary()
	req, err := c.newRequest(ctx, method, rawURL, query, &buf, contentType)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("upload %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		rawURL += sep + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// decodeResponse turns a response into either a decoded out value or an
// *Error. Empty success bodies are valid and leave out untouched.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func errorFromResponse(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)

	message := ExtractErrorMessage(body)
	if message == "" {
		message = fmt.Sprintf("Google API request failed with HTTP %d", resp.StatusCode)
	}
	return &Error{
		Status:  resp.StatusCode,
		Message: message,
		Body:    string(body),
	}
}
