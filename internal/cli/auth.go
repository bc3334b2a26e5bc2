package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gsuite/internal/auth"
	"github.com/yaklabco/gsuite/internal/logging"
)

func newAuthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth <code>",
		Short: "Complete authorization with a Google consent code",
		Long: `Exchange an authorization code for an access token and store it.

Run any command without a stored token to get the consent URL; visit it,
grant access, then pass the code Google shows you to this command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				return failUsage(out, &usageError{
					code:    "MISSING_CODE",
					message: "Authorization code required",
				})
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return completeAuth(ctx, cmd, args[0])
		},
	}
}

func completeAuth(ctx context.Context, cmd *cobra.Command, code string) error {
	out := cmd.OutOrStdout()

	paths, err := auth.DefaultPaths()
	if err != nil {
		return failAuth(out, err)
	}
	paths = applyPathOverrides(paths, configFromContext(ctx))
	cfg, err := auth.LoadClientConfig(paths.Credentials)
	if err != nil {
		return failAuth(out, err)
	}

	// Carry over a previous refresh token; Google omits it from repeat
	// exchanges unless consent is re-prompted.
	var existingRefresh string
	if stored, err := auth.LoadStoredToken(paths.Token); err == nil {
		existingRefresh = stored.RefreshToken
	}

	token, err := auth.Exchange(ctx, cfg, code, existingRefresh)
	if err != nil {
		return failAuth(out, err)
	}
	if err := auth.SaveStoredToken(ctx, paths.Token, token); err != nil {
		return failAuth(out, err)
	}

	logging.Default().Debug("token stored", logging.FieldPath, paths.Token)

	printJSON(out, map[string]any{
		"status":     "success",
		"message":    "Authorization complete. Token stored successfully.",
		"token_path": paths.Token,
		"scopes":     auth.SharedScopes,
	})
	return nil
}
