package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gsuite/pkg/config"
)

// Drive caps pageSize at 1000; requests beyond it are rejected upstream.
const maxDrivePageSize = 1000

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "drive.page_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Validate checks a resolved configuration for invalid values.
func Validate(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	switch cfg.Color {
	case config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		return &ValidationError{
			Field:   "color",
			Value:   cfg.Color,
			Message: fmt.Sprintf("must be one of auto, always, never (got %q)", cfg.Color),
		}
	}

	if cfg.Drive.PageSize < 1 || cfg.Drive.PageSize > maxDrivePageSize {
		return &ValidationError{
			Field:   "drive.page_size",
			Value:   cfg.Drive.PageSize,
			Message: fmt.Sprintf("must be between 1 and %d (got %d)", maxDrivePageSize, cfg.Drive.PageSize),
		}
	}

	return nil
}
