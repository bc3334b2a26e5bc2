package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// User is the user-level config path (e.g., ~/.config/gsuite/config.yaml).
	User string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// configFileNames are the file names we search for, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var configFileNames = []string{
	"config.yaml",
	"config.yml",
}

// DiscoverPaths finds the user configuration file under
// $XDG_CONFIG_HOME/gsuite (falling back to ~/.config/gsuite, or
// %AppData%/gsuite on Windows). A missing file is represented as an empty
// string, not an error.
func DiscoverPaths(ctx context.Context) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	return &ConfigPaths{User: findUserConfig()}, nil
}

func findUserConfig() string {
	configDir := userConfigDir()
	if configDir == "" {
		return ""
	}

	for _, name := range configFileNames {
		path := filepath.Join(configDir, "gsuite", name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("AppData")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
