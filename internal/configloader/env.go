package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/gsuite/pkg/config"
)

// envVarPrefix is the prefix for all gsuite environment variables.
const envVarPrefix = "GSUITE_"

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with GSUITE_ (e.g., GSUITE_COLOR).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv(envVarPrefix + "DEBUG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sDEBUG: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.Debug = b
	}
	if v := os.Getenv(envVarPrefix + "CREDENTIALS_FILE"); v != "" {
		cfg.CredentialsFile = v
	}
	if v := os.Getenv(envVarPrefix + "TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	}
	if v := os.Getenv(envVarPrefix + "DRIVE_PAGE_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %sDRIVE_PAGE_SIZE: %q", envVarPrefix, v)
		}
		cfg.Drive.PageSize = n
	}

	return nil
}
