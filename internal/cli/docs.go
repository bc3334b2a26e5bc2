package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gsuite/pkg/docs"
	"github.com/yaklabco/gsuite/pkg/googleapi"
)

func newDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Google Docs operations",
		Long: `Read, create, and edit Google Docs documents.

read and structure take the document ID as an argument; every other
operation reads a JSON request on stdin.`,
	}

	cmd.AddCommand(
		newDocsReadCommand(),
		newDocsStructureCommand(),
		newDocsInsertCommand(),
		newDocsAppendCommand(),
		newDocsReplaceCommand(),
		newDocsFormatCommand(),
		newDocsPageBreakCommand(),
		newDocsCreateCommand(),
		newDocsCreateFromMarkdownCommand(),
		newDocsInsertFromMarkdownCommand(),
		newDocsDeleteCommand(),
		newDocsInsertImageCommand(),
		newDocsInsertTableCommand(),
	)
	return cmd
}

func newDocsReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <document-id>",
		Short: "Read a document as plain text",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return failUsage(cmd.OutOrStdout(), &usageError{
					code: "MISSING_DOCUMENT_ID", message: "Document ID required",
				})
			}
			return runOperation(cmd, "read", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).Read(ctx, args[0])
			})
		},
	}
}

func newDocsStructureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "structure <document-id>",
		Short: "Show a document's heading outline with index ranges",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return failUsage(cmd.OutOrStdout(), &usageError{
					code: "MISSING_DOCUMENT_ID", message: "Document ID required",
				})
			}
			return runOperation(cmd, "structure", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).Structure(ctx, args[0])
			})
		},
	}
}

func newDocsInsertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert",
		Short: "Insert plain text at an index (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				Text       string `json:"text"`
				Index      *int64 `json:"index"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.Text == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "text"))
			}
			index := int64(1)
			if input.Index != nil {
				index = *input.Index
			}
			return runOperation(cmd, "insert", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).InsertText(ctx, input.DocumentID, input.Text, index)
			})
		},
	}
}

func newDocsAppendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "append",
		Short: "Append text to the end of the body (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				Text       string `json:"text"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.Text == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "text"))
			}
			return runOperation(cmd, "append", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).AppendText(ctx, input.DocumentID, input.Text)
			})
		},
	}
}

func newDocsReplaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replace",
		Short: "Replace every occurrence of a string (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				Find       string `json:"find"`
				Replace    string `json:"replace"`
				MatchCase  bool   `json:"match_case"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.Find == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "find", "replace"))
			}
			return runOperation(cmd, "replace", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).ReplaceText(ctx,
					input.DocumentID, input.Find, input.Replace, input.MatchCase)
			})
		},
	}
}

func newDocsFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Apply character styling over an index range (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				StartIndex *int64 `json:"start_index"`
				EndIndex   *int64 `json:"end_index"`
				Bold       *bool  `json:"bold"`
				Italic     *bool  `json:"italic"`
				Underline  *bool  `json:"underline"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.StartIndex == nil || input.EndIndex == nil {
				return failUsage(cmd.OutOrStdout(),
					missingFields("document_id", "start_index", "end_index"))
			}
			return runOperation(cmd, "format", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).FormatText(ctx,
					input.DocumentID, *input.StartIndex, *input.EndIndex,
					docs.Formatting{Bold: input.Bold, Italic: input.Italic, Underline: input.Underline})
			})
		},
	}
}

func newDocsPageBreakCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "page-break",
		Short: "Insert a page break at an index (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				Index      *int64 `json:"index"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.Index == nil {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "index"))
			}
			return runOperation(cmd, "page_break", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).InsertPageBreak(ctx, input.DocumentID, *input.Index)
			})
		},
	}
}

func newDocsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a document, optionally seeded with content (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				Title   string `json:"title"`
				Content string `json:"content"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.Title == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("title"))
			}
			return runOperation(cmd, "create", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).Create(ctx, input.Title, input.Content)
			})
		},
	}
}

func newDocsCreateFromMarkdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-from-markdown",
		Short: "Create a document rendered from markdown (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				Title    string `json:"title"`
				Markdown string `json:"markdown"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.Title == "" || input.Markdown == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("title", "markdown"))
			}
			return runOperation(cmd, "create_from_markdown", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).CreateFromMarkdown(ctx, input.Title, input.Markdown)
			})
		},
	}
}

func newDocsInsertFromMarkdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert-from-markdown",
		Short: "Render markdown into an existing document (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				Markdown   string `json:"markdown"`
				Index      *int64 `json:"index"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.Markdown == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "markdown"))
			}
			return runOperation(cmd, "insert_from_markdown", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).InsertFromMarkdown(ctx,
					input.DocumentID, input.Markdown, input.Index)
			})
		},
	}
}

func newDocsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete an index range from the body (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string `json:"document_id"`
				StartIndex *int64 `json:"start_index"`
				EndIndex   *int64 `json:"end_index"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.StartIndex == nil || input.EndIndex == nil {
				return failUsage(cmd.OutOrStdout(),
					missingFields("document_id", "start_index", "end_index"))
			}
			return runOperation(cmd, "delete", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).Delete(ctx,
					input.DocumentID, *input.StartIndex, *input.EndIndex)
			})
		},
	}
}

func newDocsInsertImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert-image",
		Short: "Insert an inline image from a public URL (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string   `json:"document_id"`
				ImageURL   string   `json:"image_url"`
				Index      *int64   `json:"index"`
				Width      *float64 `json:"width"`
				Height     *float64 `json:"height"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.ImageURL == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "image_url"))
			}
			return runOperation(cmd, "insert_image", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).InsertImage(ctx, input.DocumentID, input.ImageURL,
					docs.ImageOptions{Index: input.Index, Width: input.Width, Height: input.Height})
			})
		},
	}
}

func newDocsInsertTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "insert-table",
		Short: "Insert a table and populate it in one batch (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				DocumentID string     `json:"document_id"`
				Rows       int        `json:"rows"`
				Cols       int        `json:"cols"`
				Index      *int64     `json:"index"`
				Data       [][]string `json:"data"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.DocumentID == "" || input.Rows <= 0 || input.Cols <= 0 {
				return failUsage(cmd.OutOrStdout(), missingFields("document_id", "rows", "cols"))
			}
			return runOperation(cmd, "insert_table", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return docs.NewService(client).InsertTable(ctx,
					input.DocumentID, input.Rows, input.Cols, input.Index, input.Data)
			})
		},
	}
}
