package drive

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gsuite/pkg/googleapi"
)

type recordedRequest struct {
	Method  string
	Path    string
	Query   map[string][]string
	Body    map[string]any
	RawBody string
}

func newTestService(t *testing.T, handlers map[string]any) (*Service, *[]recordedRequest) {
	t.Helper()
	var calls []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		calls = append(calls, recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			Body:    body,
			RawBody: string(raw),
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
	svc.UploadBaseURL = srv.URL
	return svc, &calls
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.md", "text/markdown"},
		{"sketch.excalidraw", "application/json"},
		{"data.JSON", "application/json"},
		{"config.yml", "application/x-yaml"},
		{"page.htm", "text/html"},
		{"photo.jpeg", "image/jpeg"},
		{"archive.zip", "application/zip"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, DetectMIMEType(tt.path), "path %q", tt.path)
	}
}

func TestDetectMIMEType_SniffsUnknownExtension(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}
	path := filepath.Join(t.TempDir(), "blob.dat")
	require.NoError(t, os.WriteFile(path, pngHeader, 0o644))

	require.Equal(t, "image/png", DetectMIMEType(path))
}

func TestDetectMIMEType_MissingFileFallsBack(t *testing.T) {
	require.Equal(t, "application/octet-stream",
		DetectMIMEType(filepath.Join(t.TempDir(), "missing.weird")))
}

func TestService_Upload(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /files": map[string]any{
			"id": "f-1", "name": "notes.md", "mimeType": "text/markdown",
			"webViewLink": "https://drive.google.com/file/d/f-1/view",
			"parents":     []any{"folder-1"},
			"size":        "42",
		},
	})

	path := writeTempFile(t, "notes.md", "# heading\n")
	result, err := svc.Upload(context.Background(), path, UploadOptions{FolderID: "folder-1"})
	require.NoError(t, err)
	require.Equal(t, "upload", result.Operation)
	require.Equal(t, "f-1", result.File.ID)
	require.Equal(t, "text/markdown", result.File.MimeType)
	require.Equal(t, []string{"folder-1"}, result.File.Parents)

	call := (*calls)[0]
	require.Equal(t, []string{"multipart"}, call.Query["uploadType"])
	require.Contains(t, call.Query["fields"][0], "webContentLink")
	require.Contains(t, call.RawBody, `"name":"notes.md"`)
	require.Contains(t, call.RawBody, `"parents":["folder-1"]`)
	require.Contains(t, call.RawBody, "text/markdown")
	require.Contains(t, call.RawBody, "# heading")
}

func TestService_Upload_MissingFile(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{})

	_, err := svc.Upload(context.Background(),
		filepath.Join(t.TempDir(), "absent.txt"), UploadOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "file not found")
	require.Empty(t, *calls)
}

func TestService_Download_RegularFile(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files/f-1": map[string]any{
			"id": "f-1", "name": "report.txt", "mimeType": "text/plain",
		},
	})

	out := filepath.Join(t.TempDir(), "report.txt")
	result, err := svc.Download(context.Background(), "f-1", out)
	require.NoError(t, err)
	require.Equal(t, "download", result.Operation)
	require.Equal(t, "report.txt", result.Name)
	require.Equal(t, "text/plain", result.MimeType)
	require.FileExists(t, out)

	require.Len(t, *calls, 2)
	require.Equal(t, []string{"media"}, (*calls)[1].Query["alt"])
}

func TestService_Download_ExportsWorkspaceFile(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files/ss-1": map[string]any{
			"id": "ss-1", "name": "Budget",
			"mimeType": "application/vnd.google-apps.spreadsheet",
		},
		"GET /files/ss-1/export": map[string]any{},
	})

	out := filepath.Join(t.TempDir(), "budget.csv")
	result, err := svc.Download(context.Background(), "ss-1", out)
	require.NoError(t, err)
	require.Equal(t, "export", result.Operation)
	require.Equal(t, "text/csv", result.ExportMimeType)
	require.FileExists(t, out)

	require.Len(t, *calls, 2)
	require.Equal(t, "/files/ss-1/export", (*calls)[1].Path)
	require.Equal(t, []string{"text/csv"}, (*calls)[1].Query["mimeType"])
}

func TestService_Export_DefaultsFromSourceType(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files/doc-1": map[string]any{
			"id": "doc-1", "mimeType": "application/vnd.google-apps.document",
		},
		"GET /files/doc-1/export": map[string]any{},
	})

	out := filepath.Join(t.TempDir(), "doc.pdf")
	result, err := svc.Export(context.Background(), "doc-1", out, "")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", result.ExportMimeType)
	require.Equal(t, []string{"application/pdf"}, (*calls)[1].Query["mimeType"])
}

func TestService_List(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files": map[string]any{
			"nextPageToken": "tok-2",
			"files": []any{
				map[string]any{"id": "f-1", "name": "a.txt", "mimeType": "text/plain", "size": "10"},
				map[string]any{"id": "f-2", "name": "b.txt", "mimeType": "text/plain"},
			},
		},
	})

	result, err := svc.List(context.Background(), "folder-1", 0, "")
	require.NoError(t, err)
	require.Equal(t, "list", result.Operation)
	require.Equal(t, "folder-1", result.FolderID)
	require.Equal(t, 2, result.Count)
	require.Equal(t, "tok-2", result.NextPageToken)
	require.Equal(t, "a.txt", result.Files[0].Name)

	call := (*calls)[0]
	require.Equal(t, []string{"trashed = false and 'folder-1' in parents"}, call.Query["q"])
	require.Equal(t, []string{"100"}, call.Query["pageSize"])
}

func TestService_Search_ExcludesTrashedByDefault(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files": map[string]any{"files": []any{}},
	})

	_, err := svc.Search(context.Background(), "name contains 'plan'", 25, "tok-1")
	require.NoError(t, err)

	call := (*calls)[0]
	require.Equal(t, []string{"name contains 'plan' and trashed = false"}, call.Query["q"])
	require.Equal(t, []string{"25"}, call.Query["pageSize"])
	require.Equal(t, []string{"tok-1"}, call.Query["pageToken"])
}

func TestService_Search_TrashedQueryPassedThrough(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files": map[string]any{"files": []any{}},
	})

	result, err := svc.Search(context.Background(), "trashed = true", 0, "")
	require.NoError(t, err)
	require.Equal(t, "search", result.Operation)
	require.Equal(t, "trashed = true", result.Query)

	require.Equal(t, []string{"trashed = true"}, (*calls)[0].Query["q"])
}

func TestService_Metadata(t *testing.T) {
	svc, _ := newTestService(t, map[string]any{
		"GET /files/f-1": map[string]any{
			"id": "f-1", "name": "plan.md", "mimeType": "text/markdown",
			"starred": true, "trashed": false,
			"owners": []any{
				map[string]any{"emailAddress": "a@example.com", "displayName": "Ada"},
			},
			"permissions": []any{
				map[string]any{"id": "p-1", "type": "user", "role": "writer", "emailAddress": "a@example.com"},
				map[string]any{"id": "p-2", "type": "anyone", "role": "reader"},
			},
		},
	})

	result, err := svc.Metadata(context.Background(), "f-1")
	require.NoError(t, err)
	require.Equal(t, "get_metadata", result.Operation)
	require.True(t, result.File.Starred)
	require.Equal(t, []OwnerInfo{{Email: "a@example.com", Name: "Ada"}}, result.File.Owners)
	require.Len(t, result.File.Permissions, 2)
	require.Equal(t, "anyone", result.File.Permissions[1].Type)
	require.Empty(t, result.File.Permissions[1].Email)
}

func TestService_CreateFolder(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /files": map[string]any{
			"id": "folder-new", "name": "Reports",
			"mimeType": "application/vnd.google-apps.folder",
			"parents":  []any{"root-1"},
		},
	})

	result, err := svc.CreateFolder(context.Background(), "Reports", "root-1")
	require.NoError(t, err)
	require.Equal(t, "create_folder", result.Operation)
	require.Equal(t, "folder-new", result.Folder.ID)

	body := (*calls)[0].Body
	require.Equal(t, "application/vnd.google-apps.folder", body["mimeType"])
	require.Equal(t, []any{"root-1"}, body["parents"])
}

func TestService_Move_DetachesCurrentParents(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"GET /files/f-1": map[string]any{
			"parents": []any{"old-1", "old-2"},
		},
		"PATCH /files/f-1": map[string]any{
			"id": "f-1", "name": "plan.md", "parents": []any{"new-1"},
		},
	})

	result, err := svc.Move(context.Background(), "f-1", "new-1")
	require.NoError(t, err)
	require.Equal(t, "move", result.Operation)
	require.Equal(t, []string{"new-1"}, result.File.Parents)

	patch := (*calls)[1]
	require.Equal(t, []string{"new-1"}, patch.Query["addParents"])
	require.Equal(t, []string{"old-1,old-2"}, patch.Query["removeParents"])
}

func TestService_Share_AnyoneWithoutEmail(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /files/f-1/permissions": map[string]any{
			"id": "p-1", "type": "anyone", "role": "reader",
		},
		"GET /files/f-1": map[string]any{
			"webViewLink": "https://drive.google.com/file/d/f-1/view",
		},
	})

	result, err := svc.Share(context.Background(), "f-1", "", "reader", "")
	require.NoError(t, err)
	require.Equal(t, "anyone", result.Permission.Type)
	require.Equal(t, "https://drive.google.com/file/d/f-1/view", result.WebViewLink)

	body := (*calls)[0].Body
	require.Equal(t, "anyone", body["type"])
	require.NotContains(t, body, "emailAddress")
}

func TestService_Share_UserGrant(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /files/f-1/permissions": map[string]any{
			"id": "p-2", "type": "user", "role": "writer", "emailAddress": "a@example.com",
		},
		"GET /files/f-1": map[string]any{},
	})

	result, err := svc.Share(context.Background(), "f-1", "a@example.com", "writer", "")
	require.NoError(t, err)
	require.Equal(t, "a@example.com", result.Permission.Email)

	body := (*calls)[0].Body
	require.Equal(t, "user", body["type"])
	require.Equal(t, "a@example.com", body["emailAddress"])
}

func TestService_Delete_Trashes(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"PATCH /files/f-1": map[string]any{"id": "f-1"},
	})

	result, err := svc.Delete(context.Background(), "f-1", false)
	require.NoError(t, err)
	require.False(t, result.Permanent)

	call := (*calls)[0]
	require.Equal(t, http.MethodPatch, call.Method)
	require.Equal(t, true, call.Body["trashed"])
}

func TestService_Delete_Permanent(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"DELETE /files/f-1": map[string]any{},
	})

	result, err := svc.Delete(context.Background(), "f-1", true)
	require.NoError(t, err)
	require.True(t, result.Permanent)
	require.Equal(t, http.MethodDelete, (*calls)[0].Method)
}

func TestService_Copy(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"POST /files/f-1/copy": map[string]any{
			"id": "f-2", "name": "plan (copy)", "parents": []any{"folder-2"},
		},
	})

	result, err := svc.Copy(context.Background(), "f-1", "plan (copy)", "folder-2")
	require.NoError(t, err)
	require.Equal(t, "copy", result.Operation)
	require.Equal(t, "f-2", result.File.ID)

	body := (*calls)[0].Body
	require.Equal(t, "plan (copy)", body["name"])
	require.Equal(t, []any{"folder-2"}, body["parents"])
}

func TestService_Rename(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"PATCH /files/f-1": map[string]any{"id": "f-1", "name": "fresh.txt"},
	})

	result, err := svc.Rename(context.Background(), "f-1", "fresh.txt")
	require.NoError(t, err)
	require.Equal(t, "rename", result.Operation)
	require.Equal(t, "fresh.txt", result.File.Name)
	require.Equal(t, "fresh.txt", (*calls)[0].Body["name"])
}

func TestService_Update(t *testing.T) {
	svc, calls := newTestService(t, map[string]any{
		"PATCH /files/f-1": map[string]any{
			"id": "f-1", "name": "renamed.txt", "mimeType": "text/plain", "size": "6",
		},
	})

	path := writeTempFile(t, "local.txt", "newer\n")
	result, err := svc.Update(context.Background(), "f-1", path, "renamed.txt")
	require.NoError(t, err)
	require.Equal(t, "update", result.Operation)
	require.Equal(t, "renamed.txt", result.File.Name)

	call := (*calls)[0]
	require.Equal(t, []string{"multipart"}, call.Query["uploadType"])
	require.Contains(t, call.RawBody, `"name":"renamed.txt"`)
	require.Contains(t, call.RawBody, "newer")
}
