package drive

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMIMEType resolves the MIME type a local file should be uploaded
// under. Well-known extensions map directly; anything else is sniffed from
// the file content.
func DetectMIMEType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "excalidraw", "json":
		return "application/json"
	case "txt":
		return "text/plain"
	case "md":
		return "text/markdown"
	case "html", "htm":
		return "text/html"
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	case "zip":
		return "application/zip"
	case "csv":
		return "text/csv"
	case "xml":
		return "application/xml"
	case "yaml", "yml":
		return "application/x-yaml"
	}

	if detected, err := mimetype.DetectFile(path); err == nil {
		return detected.String()
	}
	return "application/octet-stream"
}
