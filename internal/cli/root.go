// Package cli provides the Cobra command structure for gsuite.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gsuite/internal/configloader"
	"github.com/yaklabco/gsuite/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gsuite command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var color string
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "gsuite",
		Short: "Google Docs, Sheets, and Drive from the command line",
		Long: `gsuite drives the Google Docs, Sheets, and Drive APIs from the command
line. Mutating commands read a JSON request on stdin, and every command
writes a single JSON document to stdout, so the tool scripts cleanly.

Markdown content handed to the docs commands is compiled into positional
edit operations and applied as one atomic batch update.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			result, err := configloader.Load(ctx, configloader.LoadOptions{
				ExplicitPath: configPath,
			})
			if err != nil {
				return failUsage(cmd.OutOrStdout(), &usageError{
					code:    "INVALID_CONFIG",
					message: err.Error(),
				})
			}

			cfg := result.Config
			// Flags beat config-file and environment settings.
			if cmd.Flags().Changed("color") {
				cfg.Color = color
			}
			if debug {
				cfg.Debug = true
			}
			if cfg.Debug {
				logging.SetLevel("debug")
			}
			for _, path := range result.LoadedFrom {
				logging.Default().Debug("loaded config", logging.FieldPath, path)
			}

			cmd.SetContext(withConfig(ctx, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize help output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file path (default $XDG_CONFIG_HOME/gsuite/config.yaml)")

	// Add subcommands.
	rootCmd.AddCommand(newAuthCommand())
	rootCmd.AddCommand(newDocsCommand())
	rootCmd.AddCommand(newSheetsCommand())
	rootCmd.AddCommand(newDriveCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
