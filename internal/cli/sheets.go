package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gsuite/pkg/googleapi"
	"github.com/yaklabco/gsuite/pkg/sheets"
)

func newSheetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Google Sheets operations",
		Long:  `Read, write, and restructure Google Sheets spreadsheets. Every operation reads a JSON request on stdin.`,
	}

	cmd.AddCommand(
		newSheetsCreateCommand(),
		newSheetsReadCommand(),
		newSheetsWriteCommand(),
		newSheetsAppendCommand(),
		newSheetsClearCommand(),
		newSheetsBatchReadCommand(),
		newSheetsBatchWriteCommand(),
		newSheetsMetadataCommand(),
		newSheetsAddSheetCommand(),
		newSheetsDeleteSheetCommand(),
		newSheetsRenameSheetCommand(),
		newSheetsFormatCommand(),
		newSheetsMergeCellsCommand(),
		newSheetsFreezeCommand(),
		newSheetsFindReplaceCommand(),
	)
	return cmd
}

// rangeInput is the request shape shared by the value operations.
type rangeInput struct {
	SpreadsheetID string  `json:"spreadsheet_id"`
	Range         string  `json:"range"`
	Values        [][]any `json:"values"`
}

func decodeRangeInput(cmd *cobra.Command, needValues bool) (*rangeInput, error) {
	var input rangeInput
	if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
		return nil, failUsage(cmd.OutOrStdout(), invalidInput(err))
	}
	if input.SpreadsheetID == "" || input.Range == "" {
		fields := []string{"spreadsheet_id", "range"}
		if needValues {
			fields = append(fields, "values")
		}
		return nil, failUsage(cmd.OutOrStdout(), missingFields(fields...))
	}
	if needValues && len(input.Values) == 0 {
		return nil, failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "range", "values"))
	}
	return &input, nil
}

func newSheetsCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a spreadsheet, optionally seeding the first sheet (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				Title  string   `json:"title"`
				Sheets []string `json:"sheets"`
				Data   [][]any  `json:"data"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.Title == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("title"))
			}
			return runOperation(cmd, "create", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Create(ctx, input.Title, input.Sheets, input.Data)
			})
		},
	}
}

func newSheetsReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Read the values of a range (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := decodeRangeInput(cmd, false)
			if err != nil {
				return err
			}
			return runOperation(cmd, "read", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Read(ctx, input.SpreadsheetID, input.Range)
			})
		},
	}
}

func newSheetsWriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "write",
		Short: "Overwrite the values of a range (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := decodeRangeInput(cmd, true)
			if err != nil {
				return err
			}
			return runOperation(cmd, "write", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Write(ctx, input.SpreadsheetID, input.Range, input.Values)
			})
		},
	}
}

func newSheetsAppendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "append",
		Short: "Append rows after the last data in a range (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := decodeRangeInput(cmd, true)
			if err != nil {
				return err
			}
			return runOperation(cmd, "append", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Append(ctx, input.SpreadsheetID, input.Range, input.Values)
			})
		},
	}
}

func newSheetsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the values of a range, keeping formatting (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := decodeRangeInput(cmd, false)
			if err != nil {
				return err
			}
			return runOperation(cmd, "clear", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Clear(ctx, input.SpreadsheetID, input.Range)
			})
		},
	}
}

func newSheetsBatchReadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-read",
		Short: "Read several ranges in one call (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string   `json:"spreadsheet_id"`
				Ranges        []string `json:"ranges"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || len(input.Ranges) == 0 {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "ranges"))
			}
			return runOperation(cmd, "batch-read", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).BatchRead(ctx, input.SpreadsheetID, input.Ranges)
			})
		},
	}
}

func newSheetsBatchWriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch-write",
		Short: "Overwrite several ranges in one call (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string            `json:"spreadsheet_id"`
				Data          []sheets.RangeData `json:"data"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || len(input.Data) == 0 {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "data"))
			}
			return runOperation(cmd, "batch-write", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).BatchWrite(ctx, input.SpreadsheetID, input.Data)
			})
		},
	}
}

func newSheetsMetadataCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get-metadata",
		Short: "Show spreadsheet properties and per-sheet grid sizes (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id"))
			}
			return runOperation(cmd, "get-metadata", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Metadata(ctx, input.SpreadsheetID)
			})
		},
	}
}

func newSheetsAddSheetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-sheet",
		Short: "Add a sheet to a spreadsheet (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
				Title         string `json:"title"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.Title == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "title"))
			}
			return runOperation(cmd, "add-sheet", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).AddSheet(ctx, input.SpreadsheetID, input.Title)
			})
		},
	}
}

func newSheetsDeleteSheetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-sheet",
		Short: "Delete a sheet by ID (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
				SheetID       *int64 `json:"sheet_id"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.SheetID == nil {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "sheet_id"))
			}
			return runOperation(cmd, "delete-sheet", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).DeleteSheet(ctx, input.SpreadsheetID, *input.SheetID)
			})
		},
	}
}

func newSheetsRenameSheetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-sheet",
		Short: "Rename a sheet (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
				SheetID       *int64 `json:"sheet_id"`
				Title         string `json:"title"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.SheetID == nil || input.Title == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "sheet_id", "title"))
			}
			return runOperation(cmd, "rename-sheet", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).RenameSheet(ctx, input.SpreadsheetID, *input.SheetID, input.Title)
			})
		},
	}
}

func newSheetsFormatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "format",
		Short: "Apply cell formatting over an A1 range (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
				SheetID       *int64 `json:"sheet_id"`
				Range         string `json:"range"`
				sheets.FormatOptions
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.SheetID == nil || input.Range == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "sheet_id", "range"))
			}
			return runOperation(cmd, "format", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Format(ctx,
					input.SpreadsheetID, *input.SheetID, input.Range, input.FormatOptions)
			})
		},
	}
}

func newSheetsMergeCellsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-cells",
		Short: "Merge the cells of an A1 range (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
				SheetID       *int64 `json:"sheet_id"`
				Range         string `json:"range"`
				MergeType     string `json:"merge_type"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.SheetID == nil || input.Range == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "sheet_id", "range"))
			}
			mergeType := input.MergeType
			if mergeType == "" {
				mergeType = "MERGE_ALL"
			}
			return runOperation(cmd, "merge-cells", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).MergeCells(ctx,
					input.SpreadsheetID, *input.SheetID, input.Range, mergeType)
			})
		},
	}
}

func newSheetsFreezeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "freeze",
		Short: "Freeze header rows or columns (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID string `json:"spreadsheet_id"`
				SheetID       *int64 `json:"sheet_id"`
				Rows          *int64 `json:"rows"`
				Cols          *int64 `json:"cols"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.SheetID == nil {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "sheet_id"))
			}
			return runOperation(cmd, "freeze", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).Freeze(ctx,
					input.SpreadsheetID, *input.SheetID, input.Rows, input.Cols)
			})
		},
	}
}

func newSheetsFindReplaceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-replace",
		Short: "Find and replace across a sheet or spreadsheet (JSON on stdin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input struct {
				SpreadsheetID   string `json:"spreadsheet_id"`
				Find            string `json:"find"`
				Replace         string `json:"replace"`
				SheetID         *int64 `json:"sheet_id"`
				MatchCase       bool   `json:"match_case"`
				MatchEntireCell bool   `json:"match_entire_cell"`
			}
			if err := decodeInput(cmd.InOrStdin(), &input); err != nil {
				return failUsage(cmd.OutOrStdout(), invalidInput(err))
			}
			if input.SpreadsheetID == "" || input.Find == "" {
				return failUsage(cmd.OutOrStdout(), missingFields("spreadsheet_id", "find", "replace"))
			}
			return runOperation(cmd, "find-replace", func(ctx context.Context, client *googleapi.Client) (any, error) {
				return sheets.NewService(client).FindReplace(ctx,
					input.SpreadsheetID, input.Find, input.Replace,
					input.SheetID, input.MatchCase, input.MatchEntireCell)
			})
		},
	}
}
