package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gsuite/internal/auth"
	"github.com/yaklabco/gsuite/internal/logging"
	"github.com/yaklabco/gsuite/pkg/googleapi"
)

const authRequiredMessage = "Authorization required. Please visit the URL and enter the code."

// authCommandHint is interpolated into the AUTH_REQUIRED instructions so
// the user knows how to finish the flow.
const authCommandHint = "gsuite"

// ensureClient resolves a usable access token and wraps it in an API
// client. When authorization is missing it writes the AUTH_REQUIRED
// payload, consent URL included, and returns the auth exit code.
func ensureClient(ctx context.Context, w io.Writer) (*googleapi.Client, error) {
	paths, err := auth.DefaultPaths()
	if err != nil {
		return nil, failAuth(w, err)
	}
	paths = applyPathOverrides(paths, configFromContext(ctx))

	state, err := auth.EnsureToken(ctx, paths, auth.SharedScopes)
	if err != nil {
		// The stored token is beyond repair. Hand the user a fresh
		// consent URL when the client secret allows building one.
		if cfg, cfgErr := auth.LoadClientConfig(paths.Credentials); cfgErr == nil {
			printJSON(w, auth.AuthRequiredPayload(
				auth.AuthURL(cfg, auth.SharedScopes), authRequiredMessage, authCommandHint))
			return nil, &ExitError{Code: ExitAuthError, Err: err}
		}
		return nil, failAuth(w, err)
	}
	if !state.Authorized() {
		printJSON(w, auth.AuthRequiredPayload(state.AuthURL, authRequiredMessage, authCommandHint))
		return nil, &ExitError{Code: ExitAuthError, Err: errors.New("authorization required")}
	}

	return googleapi.NewClient(state.Token.AccessToken), nil
}

// runOperation authorizes, runs fn, and writes either its payload or the
// matching error payload.
func runOperation(cmd *cobra.Command, operation string, fn func(ctx context.Context, client *googleapi.Client) (any, error)) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := ensureClient(ctx, out)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug("running operation", logging.FieldOperation, operation)

	payload, err := fn(ctx, client)
	if err != nil {
		var uerr *usageError
		if errors.As(err, &uerr) {
			return failUsage(out, uerr)
		}
		return failOperation(out, operation, err)
	}
	printJSON(out, payload)
	return nil
}
