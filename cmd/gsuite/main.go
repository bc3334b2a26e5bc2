// Package main is the entry point for the gsuite CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/gsuite/internal/cli"
	"github.com/yaklabco/gsuite/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Build and execute the root command.
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err != nil {
		// Commands print their own JSON error payloads before returning
		// an ExitError; anything else is a Cobra-level usage error.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
	}

	return cli.ExitCode(err)
}
