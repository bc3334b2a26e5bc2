package cli

import (
	"context"

	"github.com/yaklabco/gsuite/internal/auth"
	"github.com/yaklabco/gsuite/pkg/config"
)

type configContextKey struct{}

// withConfig stores the resolved configuration in the context for
// subcommands to pick up.
func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

// configFromContext returns the resolved configuration, or defaults when
// the root command has not run (direct subcommand tests).
func configFromContext(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configContextKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return config.NewConfig()
}

// applyPathOverrides layers config-file path settings over the defaults.
// Environment variables already took effect inside auth.DefaultPaths.
func applyPathOverrides(paths auth.Paths, cfg *config.Config) auth.Paths {
	if cfg.CredentialsFile != "" {
		paths.Credentials = cfg.CredentialsFile
	}
	if cfg.TokenFile != "" {
		paths.Token = cfg.TokenFile
	}
	return paths
}
