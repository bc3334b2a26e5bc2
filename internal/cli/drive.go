package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gsuite/pkg/drive"
	"github.com/yaklabco/gsuite/pkg/googleapi"
)

func newDriveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Google Drive operations",
		Long: `Upload, download, and manage Google Drive files and folders.

Workspace-native files (Docs, Sheets, Slides, Drawings) have no binary
content; downloading one exports it in a default format instead.`,
	}

	cmd.AddCommand(
		newDriveUploadCommand(),
		newDriveDownloadCommand(),
		newDriveExportCommand(),
		newDriveListCommand(),
		newDriveSearchCommand(),
		newDriveMetadataCommand(),
		newDriveCreateFolderCommand(),
		newDriveMoveCommand(),
		newDriveShareCommand(),
		newDriveDeleteCommand(),
		newDriveCopyCommand(),
		newDriveRenameCommand(),
		newDriveUpdateCommand(),
	)
	return cmd
}

// requireFlag rejects an empty required flag value with a stable error
// code like MISSING_FILE_ID.
func requireFlag(cmd *cobra.Command, value, code, message string) error {
	if value != "" {
		return nil
	}
	return failUsage(cmd.OutOrStdout(), &usageError{code: code, message: message})
}

func newDriveUploadCommand() *cobra.Command {
	var file, folderID, name, mimeType string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload a local file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, file, "MISSING_FILE", "Local file path required (--file)"); err != nil {
				return err
			}
			return runOperation(cmd, "upload", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Upload(ctx, file, drive.UploadOptions{
					Name: name, FolderID: folderID, MimeType: mimeType,
				})
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "local file path")
	cmd.Flags().StringVar(&folderID, "folder-id", "", "destination folder ID")
	cmd.Flags().StringVar(&name, "name", "", "name for the uploaded file")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "override MIME type")
	return cmd
}

func newDriveDownloadCommand() *cobra.Command {
	var fileID, output string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a file, auto-exporting Workspace-native types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			if err := requireFlag(cmd, output, "MISSING_OUTPUT", "Output path required (--output)"); err != nil {
				return err
			}
			return runOperation(cmd, "download", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Download(ctx, fileID, output)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&output, "output", "", "output file path")
	return cmd
}

func newDriveExportCommand() *cobra.Command {
	var fileID, output, mimeType string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a Workspace-native file to a chosen format",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			if err := requireFlag(cmd, output, "MISSING_OUTPUT", "Output path required (--output)"); err != nil {
				return err
			}
			return runOperation(cmd, "export", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Export(ctx, fileID, output, mimeType)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&output, "output", "", "output file path")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "export MIME type (default depends on source type)")
	return cmd
}

func newDriveListCommand() *cobra.Command {
	var folderID, pageToken string
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List files, optionally within a folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("max-results") {
				maxResults = configFromContext(cmd.Context()).Drive.PageSize
			}
			return runOperation(cmd, "list", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).List(ctx, folderID, maxResults, pageToken)
			})
		},
	}
	cmd.Flags().StringVar(&folderID, "folder-id", "", "restrict to one folder")
	cmd.Flags().Int64Var(&maxResults, "max-results", 100, "maximum results per page")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "continuation token from a previous page")
	return cmd
}

func newDriveSearchCommand() *cobra.Command {
	var query, pageToken string
	var maxResults int64

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search files with Drive query syntax",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, query, "MISSING_QUERY", "Search query required (--query)"); err != nil {
				return err
			}
			if !cmd.Flags().Changed("max-results") {
				maxResults = configFromContext(cmd.Context()).Drive.PageSize
			}
			return runOperation(cmd, "search", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Search(ctx, query, maxResults, pageToken)
			})
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "Drive query, e.g. \"name contains 'report'\"")
	cmd.Flags().Int64Var(&maxResults, "max-results", 100, "maximum results per page")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "continuation token from a previous page")
	return cmd
}

func newDriveMetadataCommand() *cobra.Command {
	var fileID string

	cmd := &cobra.Command{
		Use:   "get-metadata",
		Short: "Show a file's metadata, owners, and permissions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			return runOperation(cmd, "get_metadata", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Metadata(ctx, fileID)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	return cmd
}

func newDriveCreateFolderCommand() *cobra.Command {
	var name, parentID string

	cmd := &cobra.Command{
		Use:   "create-folder",
		Short: "Create a folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, name, "MISSING_NAME", "Folder name required (--name)"); err != nil {
				return err
			}
			return runOperation(cmd, "create_folder", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).CreateFolder(ctx, name, parentID)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "folder name")
	cmd.Flags().StringVar(&parentID, "parent-id", "", "parent folder ID")
	return cmd
}

func newDriveMoveCommand() *cobra.Command {
	var fileID, folderID string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a file into a folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			if err := requireFlag(cmd, folderID, "MISSING_FOLDER_ID", "Folder ID required (--folder-id)"); err != nil {
				return err
			}
			return runOperation(cmd, "move", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Move(ctx, fileID, folderID)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&folderID, "folder-id", "", "destination folder ID")
	return cmd
}

func newDriveShareCommand() *cobra.Command {
	var fileID, email, role, permType string

	cmd := &cobra.Command{
		Use:   "share",
		Short: "Share a file with a user or anyone with the link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			return runOperation(cmd, "share", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Share(ctx, fileID, email, role, permType)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&email, "email", "", "email address of the grantee (omit for a public link)")
	cmd.Flags().StringVar(&role, "role", "reader", "permission role: reader, writer, commenter")
	cmd.Flags().StringVar(&permType, "type", "", "permission type: user, anyone, domain")
	return cmd
}

func newDriveDeleteCommand() *cobra.Command {
	var fileID string
	var permanent bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Trash a file, or delete it permanently",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			return runOperation(cmd, "delete", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Delete(ctx, fileID, permanent)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().BoolVar(&permanent, "permanent", false, "permanently delete instead of trashing")
	return cmd
}

func newDriveCopyCommand() *cobra.Command {
	var fileID, name, folderID string

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			return runOperation(cmd, "copy", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Copy(ctx, fileID, name, folderID)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&name, "name", "", "name for the copy")
	cmd.Flags().StringVar(&folderID, "folder-id", "", "destination folder ID")
	return cmd
}

func newDriveRenameCommand() *cobra.Command {
	var fileID, name string

	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			if err := requireFlag(cmd, name, "MISSING_NAME", "New name required (--name)"); err != nil {
				return err
			}
			return runOperation(cmd, "rename", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Rename(ctx, fileID, name)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&name, "name", "", "new file name")
	return cmd
}

func newDriveUpdateCommand() *cobra.Command {
	var fileID, file, name string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Replace a file's content with a local file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag(cmd, fileID, "MISSING_FILE_ID", "File ID required (--file-id)"); err != nil {
				return err
			}
			if err := requireFlag(cmd, file, "MISSING_FILE", "Local file path required (--file)"); err != nil {
				return err
			}
			return runOperation(cmd, "update", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return drive.NewService(client).Update(ctx, fileID, file, name)
			})
		},
	}
	cmd.Flags().StringVar(&fileID, "file-id", "", "Drive file ID")
	cmd.Flags().StringVar(&file, "file", "", "local file path")
	cmd.Flags().StringVar(&name, "name", "", "rename the file while updating")
	return cmd
}
