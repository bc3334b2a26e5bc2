package cli

import (
	"github.com/spf13/cobra"
)

func newVersionCommand(info BuildInfo) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of gsuite.`,
		Run: func(cmd *cobra.Command, _ []string) {
			printJSON(cmd.OutOrStdout(), map[string]any{
				"status":    "success",
				"operation": "version",
				"version":   info.Version,
				"commit":    info.Commit,
				"built":     info.Date,
			})
		},
	}

	return cmd
}
