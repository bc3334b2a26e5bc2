// Package config defines the user-facing settings model for the gsuite CLI.
// Settings come from a YAML config file, GSUITE_* environment variables, and
// command-line flags; internal/configloader resolves the precedence.
package config

// Color mode values accepted by the "color" setting.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default values applied before any config source is loaded.
const (
	DefaultColor         = ColorAuto
	DefaultDrivePageSize = 100
)

// Config is the resolved CLI configuration.
type Config struct {
	// Color controls ANSI color in help and diagnostics: auto, always, never.
	Color string `yaml:"color"`

	// Debug enables debug-level logging on stderr.
	Debug bool `yaml:"debug"`

	// CredentialsFile overrides the OAuth client secret location.
	CredentialsFile string `yaml:"credentials_file,omitempty"`

	// TokenFile overrides the stored token location.
	TokenFile string `yaml:"token_file,omitempty"`

	// Drive holds Drive-specific settings.
	Drive DriveConfig `yaml:"drive"`
}

// DriveConfig holds settings for Drive list and search operations.
type DriveConfig struct {
	// PageSize is the default number of results per listing request.
	PageSize int64 `yaml:"page_size"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Color: DefaultColor,
		Drive: DriveConfig{
			PageSize: DefaultDrivePageSize,
		},
	}
}

// Merge overlays non-zero fields from other onto c. Later sources win, so
// callers apply sources in ascending precedence order.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Color != "" {
		c.Color = other.Color
	}
	if other.Debug {
		c.Debug = true
	}
	if other.CredentialsFile != "" {
		c.CredentialsFile = other.CredentialsFile
	}
	if other.TokenFile != "" {
		c.TokenFile = other.TokenFile
	}
	if other.Drive.PageSize != 0 {
		c.Drive.PageSize = other.Drive.PageSize
	}
}
