package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// TokenState is the outcome of EnsureToken: either a usable token or the
// consent URL the user must visit first.
type TokenState struct {
	Token   *StoredToken
	AuthURL string
}

// Authorized reports whether the state carries a usable token.
func (s TokenState) Authorized() bool {
	return s.Token != nil
}

// AuthURL builds the offline-access consent URL for the out-of-band flow.
// prompt=consent forces Google to issue a refresh token even when the user
// has authorized this client before.
func AuthURL(cfg ClientConfig, scopes []string) string {
	return cfg.oauth2Config(scopes).AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Exchange trades an authorization code for a stored token. A refresh
// token from a previous authorization is carried over when the exchange
// response omits one.
func Exchange(ctx context.Context, cfg ClientConfig, code, existingRefreshToken string) (StoredToken, error) {
	tok, err := cfg.oauth2Config(SharedScopes).Exchange(ctx, code)
	if err != nil {
		return StoredToken{}, fmt.Errorf("token exchange: %w", friendlyOAuthError(err))
	}

	refreshToken := tok.RefreshToken
	if refreshToken == "" {
		refreshToken = existingRefreshToken
	}
	if refreshToken == "" {
		return StoredToken{}, errors.New("no refresh token received; re-run auth with the consent prompt")
	}

	return StoredToken{
		ClientID:             cfg.ClientID,
		AccessToken:          tok.AccessToken,
		RefreshToken:         refreshToken,
		Scope:                grantedScopes(tok),
		ExpirationTimeMillis: expirationMillis(tok),
	}, nil
}

// Refresh obtains a fresh access token using the stored refresh token and
// updates token in place.
func Refresh(ctx context.Context, cfg ClientConfig, token *StoredToken) error {
	if token.RefreshToken == "" {
		return errors.New("cannot refresh without a refresh token")
	}

	src := cfg.oauth2Config(SharedScopes).TokenSource(ctx, &oauth2.Token{
		RefreshToken: token.RefreshToken,
	})
	tok, err := src.Token()
	if err != nil {
		return fmt.Errorf("token refresh: %w", friendlyOAuthError(err))
	}

	token.AccessToken = tok.AccessToken
	token.ExpirationTimeMillis = expirationMillis(tok)
	if tok.RefreshToken != "" {
		token.RefreshToken = tok.RefreshToken
	}
	if scopes := grantedScopes(tok); len(scopes) > 0 {
		token.Scope = scopes
	}
	return nil
}

// EnsureToken returns a valid token, refreshing and re-persisting it when
// expired. When no usable token exists it returns the authorization URL
// instead; only refresh failures and persistence failures are errors.
func EnsureToken(ctx context.Context, paths Paths, scopes []string) (TokenState, error) {
	cfg, err := LoadClientConfig(paths.Credentials)
	if err != nil {
		return TokenState{}, err
	}

	token, err := LoadStoredToken(paths.Token)
	if err != nil {
		return TokenState{AuthURL: AuthURL(cfg, scopes)}, nil
	}

	if token.Expired(time.Now()) {
		if token.RefreshToken == "" {
			return TokenState{AuthURL: AuthURL(cfg, scopes)}, nil
		}
		if err := Refresh(ctx, cfg, &token); err != nil {
			return TokenState{}, err
		}
		if err := SaveStoredToken(ctx, paths.Token, token); err != nil {
			return TokenState{}, err
		}
	}
	return TokenState{Token: &token}, nil
}

// AuthRequiredPayload is the stable JSON body emitted when a command needs
// the user to authorize first.
func AuthRequiredPayload(authURL, message, commandHint string) map[string]any {
	return map[string]any{
		"status":     "error",
		"error_code": "AUTH_REQUIRED",
		"message":    message,
		"auth_url":   authURL,
		"instructions": []string{
			"1. Visit the authorization URL",
			"2. Grant access in your browser",
			"3. Copy the authorization code",
			fmt.Sprintf("4. Run: %s auth <code>", commandHint),
			"5. Retry the original command",
		},
	}
}

// friendlyOAuthError surfaces the server's error_description instead of
// the x/oauth2 default, which buries it inside a quoted response dump.
func friendlyOAuthError(err error) error {
	var rerr *oauth2.RetrieveError
	if !errors.As(err, &rerr) {
		return err
	}
	switch {
	case rerr.ErrorDescription != "":
		return errors.New(rerr.ErrorDescription)
	case rerr.ErrorCode != "":
		return errors.New(rerr.ErrorCode)
	default:
		return err
	}
}

func grantedScopes(tok *oauth2.Token) Scopes {
	raw, _ := tok.Extra("scope").(string)
	if raw == "" {
		return nil
	}
	return Scopes(strings.Fields(raw))
}

func expirationMillis(tok *oauth2.Token) int64 {
	if tok.Expiry.IsZero() {
		return time.Now().Add(time.Hour).UnixMilli()
	}
	return tok.Expiry.UnixMilli()
}
