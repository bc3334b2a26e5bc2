// Package drive implements file operations against the Drive REST API:
// multipart uploads, downloads with automatic export of Workspace-native
// files, folder management, sharing, and search.
package drive

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yaklabco/gsuite/pkg/googleapi"
)

const (
	defaultBaseURL       = "https://www.googleapis.com/drive/v3"
	defaultUploadBaseURL = "https://www.googleapis.com/upload/drive/v3"
)

const statusSuccess = "success"

// googleAppsPrefix marks Workspace-native files, which have no binary
// content and must be exported rather than downloaded.
const googleAppsPrefix = "application/vnd.google-apps."

const folderMIMEType = googleAppsPrefix + "folder"

// defaultPageSize caps list and search responses when the caller does not
// ask for a specific page size.
const defaultPageSize = 100

const listFields = "nextPageToken,files(id,name,mimeType,webViewLink,parents,createdTime,modifiedTime,size)"

// Service exposes the file operations.
type Service struct {
	// BaseURL is the metadata API root, overridable in tests.
	BaseURL string
	// UploadBaseURL is the root for content uploads, overridable in tests.
	UploadBaseURL string

	client *googleapi.Client
}

// NewService builds a Service on an authenticated transport.
func NewService(client *googleapi.Client) *Service {
	return &Service{
		BaseURL:       defaultBaseURL,
		UploadBaseURL: defaultUploadBaseURL,
		client:        client,
	}
}

func (s *Service) fileURL(fileID string) string {
	return fmt.Sprintf("%s/files/%s", s.BaseURL, fileID)
}

// File is the wire shape of a Drive file resource, limited to the fields
// the operations request.
type File struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	MimeType       string           `json:"mimeType"`
	WebViewLink    string           `json:"webViewLink"`
	WebContentLink string           `json:"webContentLink"`
	Parents        []string         `json:"parents"`
	CreatedTime    string           `json:"createdTime"`
	ModifiedTime   string           `json:"modifiedTime"`
	Size           string           `json:"size"`
	Description    string           `json:"description"`
	Starred        bool             `json:"starred"`
	Trashed        bool             `json:"trashed"`
	Owners         []fileOwner      `json:"owners"`
	Permissions    []filePermission `json:"permissions"`
}

type fileOwner struct {
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
}

type filePermission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress"`
}

// FileInfo is the file summary embedded in result payloads.
type FileInfo struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	MimeType       string   `json:"mime_type"`
	WebViewLink    string   `json:"web_view_link,omitempty"`
	WebContentLink string   `json:"web_content_link,omitempty"`
	Parents        []string `json:"parents,omitempty"`
	CreatedTime    string   `json:"created_time,omitempty"`
	ModifiedTime   string   `json:"modified_time,omitempty"`
	Size           string   `json:"size,omitempty"`
}

func fileInfoFrom(f File) FileInfo {
	return FileInfo{
		ID:             f.ID,
		Name:           f.Name,
		MimeType:       f.MimeType,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		CreatedTime:    f.CreatedTime,
		ModifiedTime:   f.ModifiedTime,
		Size:           f.Size,
	}
}

// UploadOptions tunes an upload. Empty fields fall back to the local file's
// name and sniffed MIME type, uploading into the Drive root.
type UploadOptions struct {
	Name     string
	FolderID string
	MimeType string
}

// UploadResult is the payload of an upload operation.
type UploadResult struct {
	Status    string   `json:"status"`
	Operation string   `json:"operation"`
	File      FileInfo `json:"file"`
}

// Upload sends a local file as a single multipart request carrying both
// metadata and content.
func (s *Service) Upload(ctx context.Context, filePath string, opts UploadOptions) (*UploadResult, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	name := opts.Name
	if name == "" {
		name = filepath.Base(filePath)
	}
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload.bin"
	}
	mimeType := opts.MimeType
	if mimeType == "" {
		mimeType = DetectMIMEType(filePath)
	}

	metadata := map[string]any{"name": name}
	if opts.FolderID != "" {
		metadata["parents"] = []string{opts.FolderID}
	}

	query := url.Values{
		"uploadType": {"multipart"},
		"fields":     {"id,name,mimeType,webViewLink,webContentLink,parents,createdTime,modifiedTime,size"},
	}

	var file File
	err := s.client.PostMultipart(ctx, s.UploadBaseURL+"/files", query,
		metadata, filePath, mimeType, name, &file)
	if err != nil {
		return nil, err
	}
	return &UploadResult{
		Status:    statusSuccess,
		Operation: "upload",
		File:      fileInfoFrom(file),
	}, nil
}

// DownloadResult is the payload of a download operation. A Workspace-native
// source flips the operation to "export" and records the chosen format.
type DownloadResult struct {
	Status         string `json:"status"`
	Operation      string `json:"operation"`
	FileID         string `json:"file_id"`
	OutputPath     string `json:"output_path"`
	Name           string `json:"name,omitempty"`
	MimeType       string `json:"mime_type,omitempty"`
	ExportMimeType string `json:"export_mime_type,omitempty"`
}

// Download fetches a file's content to outputPath. Workspace-native files
// (documents, spreadsheets, and friends) carry no binary content, so they
// are exported in a default format instead.
func (s *Service) Download(ctx context.Context, fileID, outputPath string) (*DownloadResult, error) {
	var meta File
	err := s.client.GetJSON(ctx, s.fileURL(fileID),
		url.Values{"fields": {"id,name,mimeType"}}, &meta)
	if err != nil {
		return nil, err
	}

	if strings.HasPrefix(meta.MimeType, googleAppsPrefix) {
		return s.export(ctx, fileID, outputPath, defaultExportMIME(meta.MimeType))
	}

	err = s.client.DownloadToFile(ctx, s.fileURL(fileID),
		url.Values{"alt": {"media"}}, outputPath)
	if err != nil {
		return nil, err
	}
	return &DownloadResult{
		Status:     statusSuccess,
		Operation:  "download",
		FileID:     fileID,
		OutputPath: outputPath,
		Name:       meta.Name,
		MimeType:   meta.MimeType,
	}, nil
}

// Export converts a Workspace-native file to the given format and writes it
// to outputPath. An empty exportMime picks a sensible default from the
// source type.
func (s *Service) Export(ctx context.Context, fileID, outputPath, exportMime string) (*DownloadResult, error) {
	if exportMime == "" {
		var meta File
		err := s.client.GetJSON(ctx, s.fileURL(fileID),
			url.Values{"fields": {"id,mimeType"}}, &meta)
		if err != nil {
			return nil, err
		}
		exportMime = defaultExportMIME(meta.MimeType)
	}
	return s.export(ctx, fileID, outputPath, exportMime)
}

func (s *Service) export(ctx context.Context, fileID, outputPath, exportMime string) (*DownloadResult, error) {
	err := s.client.DownloadToFile(ctx, s.fileURL(fileID)+"/export",
		url.Values{"mimeType": {exportMime}}, outputPath)
	if err != nil {
		return nil, err
	}
	return &DownloadResult{
		Status:         statusSuccess,
		Operation:      "export",
		FileID:         fileID,
		OutputPath:     outputPath,
		ExportMimeType: exportMime,
	}, nil
}

// defaultExportMIME picks the export format for a Workspace-native source
// type: documents and presentations become PDF, spreadsheets CSV, drawings
// PNG.
func defaultExportMIME(sourceMime string) string {
	switch sourceMime {
	case googleAppsPrefix + "spreadsheet":
		return "text/csv"
	case googleAppsPrefix + "drawing":
		return "image/png"
	default:
		return "application/pdf"
	}
}

// ListResult is the payload of list and search operations.
type ListResult struct {
	Status        string     `json:"status"`
	Operation     string     `json:"operation"`
	FolderID      string     `json:"folder_id,omitempty"`
	Query         string     `json:"query,omitempty"`
	Files         []FileInfo `json:"files"`
	NextPageToken string     `json:"next_page_token,omitempty"`
	Count         int        `json:"count"`
}

type fileListResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Files         []File `json:"files"`
}

// List enumerates non-trashed files, optionally scoped to one folder.
func (s *Service) List(ctx context.Context, folderID string, pageSize int64, pageToken string) (*ListResult, error) {
	clauses := []string{"trashed = false"}
	if folderID != "" {
		clauses = append(clauses, fmt.Sprintf("'%s' in parents", folderID))
	}

	resp, err := s.listFiles(ctx, strings.Join(clauses, " and "), pageSize, pageToken)
	if err != nil {
		return nil, err
	}
	result := listResultFrom(resp)
	result.Operation = "list"
	result.FolderID = folderID
	return result, nil
}

// Search runs a raw Drive query. Trashed files are excluded unless the
// query itself mentions trashed state.
func (s *Service) Search(ctx context.Context, query string, pageSize int64, pageToken string) (*ListResult, error) {
	fullQuery := query
	if !strings.Contains(query, "trashed") {
		fullQuery = query + " and trashed = false"
	}

	resp, err := s.listFiles(ctx, fullQuery, pageSize, pageToken)
	if err != nil {
		return nil, err
	}
	result := listResultFrom(resp)
	result.Operation = "search"
	result.Query = query
	return result, nil
}

func (s *Service) listFiles(ctx context.Context, query string, pageSize int64, pageToken string) (*fileListResponse, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	params := url.Values{
		"q":        {query},
		"pageSize": {strconv.FormatInt(pageSize, 10)},
		"fields":   {listFields},
	}
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	var resp fileListResponse
	if err := s.client.GetJSON(ctx, s.BaseURL+"/files", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func listResultFrom(resp *fileListResponse) *ListResult {
	files := make([]FileInfo, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, fileInfoFrom(f))
	}
	return &ListResult{
		Status:        statusSuccess,
		Files:         files,
		NextPageToken: resp.NextPageToken,
		Count:         len(files),
	}
}

// OwnerInfo identifies a file owner in metadata payloads.
type OwnerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// PermissionInfo describes one grant on a file.
type PermissionInfo struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

// FileMetadata is the extended file summary of a metadata operation.
type FileMetadata struct {
	FileInfo
	Description string           `json:"description,omitempty"`
	Starred     bool             `json:"starred"`
	Trashed     bool             `json:"trashed"`
	Owners      []OwnerInfo      `json:"owners"`
	Permissions []PermissionInfo `json:"permissions"`
}

// MetadataResult is the payload of a metadata operation.
type MetadataResult struct {
	Status    string       `json:"status"`
	Operation string       `json:"operation"`
	File      FileMetadata `json:"file"`
}

// Metadata fetches the full descriptive record of a file, including owners
// and permission grants.
func (s *Service) Metadata(ctx context.Context, fileID string) (*MetadataResult, error) {
	var file File
	err := s.client.GetJSON(ctx, s.fileURL(fileID), url.Values{
		"fields": {"id,name,mimeType,webViewLink,webContentLink,parents,createdTime,modifiedTime,size,description,starred,trashed,owners,permissions"},
	}, &file)
	if err != nil {
		return nil, err
	}

	owners := make([]OwnerInfo, 0, len(file.Owners))
	for _, o := range file.Owners {
		owners = append(owners, OwnerInfo{Email: o.EmailAddress, Name: o.DisplayName})
	}
	permissions := make([]PermissionInfo, 0, len(file.Permissions))
	for _, p := range file.Permissions {
		permissions = append(permissions, PermissionInfo{
			ID: p.ID, Type: p.Type, Role: p.Role, Email: p.EmailAddress,
		})
	}

	return &MetadataResult{
		Status:    statusSuccess,
		Operation: "get_metadata",
		File: FileMetadata{
			FileInfo:    fileInfoFrom(file),
			Description: file.Description,
			Starred:     file.Starred,
			Trashed:     file.Trashed,
			Owners:      owners,
			Permissions: permissions,
		},
	}, nil
}

// FolderResult is the payload of a create-folder operation.
type FolderResult struct {
	Status    string   `json:"status"`
	Operation string   `json:"operation"`
	Folder    FileInfo `json:"folder"`
}

// CreateFolder makes a folder, optionally nested under a parent.
func (s *Service) CreateFolder(ctx context.Context, name, parentID string) (*FolderResult, error) {
	metadata := map[string]any{
		"name":     name,
		"mimeType": folderMIMEType,
	}
	if parentID != "" {
		metadata["parents"] = []string{parentID}
	}

	var folder File
	err := s.client.PostJSON(ctx, s.BaseURL+"/files",
		url.Values{"fields": {"id,name,mimeType,webViewLink,parents,createdTime"}},
		metadata, &folder)
	if err != nil {
		return nil, err
	}
	return &FolderResult{
		Status:    statusSuccess,
		Operation: "create_folder",
		Folder:    fileInfoFrom(folder),
	}, nil
}

// MoveResult is the payload of a move operation.
type MoveResult struct {
	Status    string   `json:"status"`
	Operation string   `json:"operation"`
	File      FileInfo `json:"file"`
}

// Move reparents a file into folderID, detaching it from all current
// parents.
func (s *Service) Move(ctx context.Context, fileID, folderID string) (*MoveResult, error) {
	var current File
	err := s.client.GetJSON(ctx, s.fileURL(fileID),
		url.Values{"fields": {"parents"}}, &current)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"addParents":    {folderID},
		"removeParents": {strings.Join(current.Parents, ",")},
		"fields":        {"id,name,parents,webViewLink"},
	}
	var moved File
	err = s.client.PatchJSON(ctx, s.fileURL(fileID), query, map[string]any{}, &moved)
	if err != nil {
		return nil, err
	}
	return &MoveResult{
		Status:    statusSuccess,
		Operation: "move",
		File:      fileInfoFrom(moved),
	}, nil
}

// ShareResult is the payload of a share operation.
type ShareResult struct {
	Status         string         `json:"status"`
	Operation      string         `json:"operation"`
	Permission     PermissionInfo `json:"permission"`
	WebViewLink    string         `json:"web_view_link,omitempty"`
	WebContentLink string         `json:"web_content_link,omitempty"`
}

// Share grants access to a file. With an email the grant targets that user;
// without one it opens the file to anyone with the link. permissionType
// overrides the inferred grant type when non-empty.
func (s *Service) Share(ctx context.Context, fileID, email, role, permissionType string) (*ShareResult, error) {
	permType := permissionType
	if permType == "" {
		if email != "" {
			permType = "user"
		} else {
			permType = "anyone"
		}
	}

	permission := map[string]any{
		"type": permType,
		"role": role,
	}
	if email != "" && permType == "user" {
		permission["emailAddress"] = email
	}

	var created filePermission
	err := s.client.PostJSON(ctx, s.fileURL(fileID)+"/permissions",
		url.Values{"fields": {"id,type,role,emailAddress"}}, permission, &created)
	if err != nil {
		return nil, err
	}

	var file File
	err = s.client.GetJSON(ctx, s.fileURL(fileID),
		url.Values{"fields": {"webViewLink,webContentLink"}}, &file)
	if err != nil {
		return nil, err
	}

	return &ShareResult{
		Status:    statusSuccess,
		Operation: "share",
		Permission: PermissionInfo{
			ID: created.ID, Type: created.Type, Role: created.Role, Email: created.EmailAddress,
		},
		WebViewLink:    file.WebViewLink,
		WebContentLink: file.WebContentLink,
	}, nil
}

// DeleteResult is the payload of a delete operation.
type DeleteResult struct {
	Status    string `json:"status"`
	Operation string `json:"operation"`
	FileID    string `json:"file_id"`
	Permanent bool   `json:"permanent"`
}

// Delete moves a file to the trash, or removes it outright when permanent
// is set.
func (s *Service) Delete(ctx context.Context, fileID string, permanent bool) (*DeleteResult, error) {
	if permanent {
		if err := s.client.DeleteNoContent(ctx, s.fileURL(fileID), nil); err != nil {
			return nil, err
		}
	} else {
		err := s.client.PatchJSON(ctx, s.fileURL(fileID), nil,
			map[string]any{"trashed": true}, nil)
		if err != nil {
			return nil, err
		}
	}
	return &DeleteResult{
		Status:    statusSuccess,
		Operation: "delete",
		FileID:    fileID,
		Permanent: permanent,
	}, nil
}

// CopyResult is the payload of a copy operation.
type CopyResult struct {
	Status    string   `json:"status"`
	Operation string   `json:"operation"`
	File      FileInfo `json:"file"`
}

// Copy duplicates a file, optionally renaming it and placing the copy in a
// folder.
func (s *Service) Copy(ctx context.Context, fileID, name, folderID string) (*CopyResult, error) {
	metadata := map[string]any{}
	if name != "" {
		metadata["name"] = name
	}
	if folderID != "" {
		metadata["parents"] = []string{folderID}
	}

	var copied File
	err := s.client.PostJSON(ctx, s.fileURL(fileID)+"/copy",
		url.Values{"fields": {"id,name,mimeType,webViewLink,parents,createdTime"}},
		metadata, &copied)
	if err != nil {
		return nil, err
	}
	return &CopyResult{
		Status:    statusSuccess,
		Operation: "copy",
		File:      fileInfoFrom(copied),
	}, nil
}

// RenameResult is the payload of a rename operation.
type RenameResult struct {
	Status    string   `json:"status"`
	Operation string   `json:"operation"`
	File      FileInfo `json:"file"`
}

// Rename changes a file's display name without touching its content.
func (s *Service) Rename(ctx context.Context, fileID, name string) (*RenameResult, error) {
	var renamed File
	err := s.client.PatchJSON(ctx, s.fileURL(fileID),
		url.Values{"fields": {"id,name,mimeType,webViewLink"}},
		map[string]any{"name": name}, &renamed)
	if err != nil {
		return nil, err
	}
	return &RenameResult{
		Status:    statusSuccess,
		Operation: "rename",
		File:      fileInfoFrom(renamed),
	}, nil
}

// UpdateResult is the payload of an update operation.
type UpdateResult struct {
	Status    string   `json:"status"`
	Operation string   `json:"operation"`
	File      FileInfo `json:"file"`
}

// Update replaces a file's content with a local file, optionally renaming
// it in the same request.
func (s *Service) Update(ctx context.Context, fileID, filePath, name string) (*UpdateResult, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	metadata := map[string]any{}
	if name != "" {
		metadata["name"] = name
	}

	fileName := filepath.Base(filePath)
	if fileName == "" || fileName == "." {
		fileName = "file.bin"
	}

	query := url.Values{
		"uploadType": {"multipart"},
		"fields":     {"id,name,mimeType,webViewLink,modifiedTime,size"},
	}
	var updated File
	err := s.client.PatchMultipart(ctx, s.UploadBaseURL+"/files/"+fileID, query,
		metadata, filePath, DetectMIMEType(filePath), fileName, &updated)
	if err != nil {
		return nil, err
	}
	return &UpdateResult{
		Status:    statusSuccess,
		Operation: "update",
		File:      fileInfoFrom(updated),
	}, nil
}
