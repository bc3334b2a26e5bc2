package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeSecretFile(t *testing.T, dir, tokenURI string) string {
	t.Helper()
	secret := map[string]any{
		"installed": map[string]any{
			"client_id":     "client-1",
			"client_secret": "shhh",
			"auth_uri":      "https://accounts.google.com/o/oauth2/auth",
			"token_uri":     tokenURI,
		},
	}
	raw, err := json.Marshal(secret)
	require.NoError(t, err)

	path := filepath.Join(dir, "client_secret.json")
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadClientConfig(t *testing.T) {
	path := writeSecretFile(t, t.TempDir(), "https://oauth2.googleapis.com/token")

	cfg, err := LoadClientConfig(path)
	require.NoError(t, err)
	require.Equal(t, "client-1", cfg.ClientID)
	require.Equal(t, "shhh", cfg.ClientSecret)
	require.Equal(t, "https://oauth2.googleapis.com/token", cfg.TokenURI)
}

func TestLoadClientConfig_WebSectionAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_secret.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"web": {"client_id": "w", "client_secret": "s"}}`), 0o600))

	cfg, err := LoadClientConfig(path)
	require.NoError(t, err)
	require.Equal(t, "w", cfg.ClientID)
	require.Equal(t, defaultAuthURI, cfg.AuthURI)
	require.Equal(t, defaultTokenURI, cfg.TokenURI)
}

func TestLoadClientConfig_MissingSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client_secret.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	_, err := LoadClientConfig(path)
	require.Error(t, err)
}

func TestAuthURL(t *testing.T) {
	cfg := ClientConfig{
		ClientID: "client-1",
		AuthURI:  "https://accounts.google.com/o/oauth2/auth",
	}
	raw := AuthURL(cfg, []string{ScopeDocs, ScopeDrive})

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	q := parsed.Query()
	require.Equal(t, "client-1", q.Get("client_id"))
	require.Equal(t, oobRedirectURI, q.Get("redirect_uri"))
	require.Equal(t, "code", q.Get("response_type"))
	require.Equal(t, ScopeDocs+" "+ScopeDrive, q.Get("scope"))
	require.Equal(t, "offline", q.Get("access_type"))
	require.Equal(t, "consent", q.Get("prompt"))
}

// tokenEndpoint serves the OAuth token endpoint and records the grant types
// it saw.
func tokenEndpoint(t *testing.T, response map[string]any) (*httptest.Server, *[]string) {
	t.Helper()
	var grants []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grants = append(grants, r.PostFormValue("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	t.Cleanup(srv.Close)
	return srv, &grants
}

func TestExchange(t *testing.T) {
	srv, grants := tokenEndpoint(t, map[string]any{
		"access_token":  "ya29.fresh",
		"refresh_token": "1//refresh",
		"expires_in":    3600,
		"scope":         ScopeDocs + " " + ScopeDrive,
		"token_type":    "Bearer",
	})
	cfg := ClientConfig{ClientID: "client-1", ClientSecret: "s", AuthURI: defaultAuthURI, TokenURI: srv.URL}

	token, err := Exchange(context.Background(), cfg, "auth-code", "")
	require.NoError(t, err)
	require.Equal(t, []string{"authorization_code"}, *grants)
	require.Equal(t, "client-1", token.ClientID)
	require.Equal(t, "ya29.fresh", token.AccessToken)
	require.Equal(t, "1//refresh", token.RefreshToken)
	require.Equal(t, Scopes{ScopeDocs, ScopeDrive}, token.Scope)
	require.False(t, token.Expired(time.Now()))
}

func TestExchange_KeepsExistingRefreshToken(t *testing.T) {
	srv, _ := tokenEndpoint(t, map[string]any{
		"access_token": "ya29.fresh",
		"expires_in":   3600,
		"token_type":   "Bearer",
	})
	cfg := ClientConfig{ClientID: "c", ClientSecret: "s", AuthURI: defaultAuthURI, TokenURI: srv.URL}

	token, err := Exchange(context.Background(), cfg, "auth-code", "1//old-refresh")
	require.NoError(t, err)
	require.Equal(t, "1//old-refresh", token.RefreshToken)
}

func TestExchange_NoRefreshTokenAnywhere(t *testing.T) {
	srv, _ := tokenEndpoint(t, map[string]any{
		"access_token": "ya29.fresh",
		"expires_in":   3600,
		"token_type":   "Bearer",
	})
	cfg := ClientConfig{ClientID: "c", ClientSecret: "s", AuthURI: defaultAuthURI, TokenURI: srv.URL}

	_, err := Exchange(context.Background(), cfg, "auth-code", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "refresh token")
}

func TestRefresh(t *testing.T) {
	srv, grants := tokenEndpoint(t, map[string]any{
		"access_token": "ya29.refreshed",
		"expires_in":   3600,
		"token_type":   "Bearer",
	})
	cfg := ClientConfig{ClientID: "c", ClientSecret: "s", AuthURI: defaultAuthURI, TokenURI: srv.URL}

	token := StoredToken{
		ClientID:             "c",
		AccessToken:          "ya29.stale",
		RefreshToken:         "1//refresh",
		ExpirationTimeMillis: time.Now().Add(-time.Hour).UnixMilli(),
	}
	require.NoError(t, Refresh(context.Background(), cfg, &token))
	require.Equal(t, []string{"refresh_token"}, *grants)
	require.Equal(t, "ya29.refreshed", token.AccessToken)
	require.Equal(t, "1//refresh", token.RefreshToken)
	require.False(t, token.Expired(time.Now()))
}

func TestRefresh_SurfacesServerErrorDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "invalid_grant", "error_description": "Token has been expired or revoked."}`))
	}))
	t.Cleanup(srv.Close)
	cfg := ClientConfig{ClientID: "c", ClientSecret: "s", AuthURI: defaultAuthURI, TokenURI: srv.URL}

	token := StoredToken{RefreshToken: "1//refresh"}
	err := Refresh(context.Background(), cfg, &token)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Token has been expired or revoked.")
}

func TestEnsureToken_NoTokenFileYieldsAuthURL(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Credentials: writeSecretFile(t, dir, defaultTokenURI),
		Token:       filepath.Join(dir, "token.json"),
	}

	state, err := EnsureToken(context.Background(), paths, SharedScopes)
	require.NoError(t, err)
	require.False(t, state.Authorized())
	require.Contains(t, state.AuthURL, "client_id=client-1")
}

func TestEnsureToken_ValidTokenPassesThrough(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Credentials: writeSecretFile(t, dir, defaultTokenURI),
		Token:       filepath.Join(dir, "token.json"),
	}
	token := StoredToken{
		ClientID:             "client-1",
		AccessToken:          "ya29.valid",
		RefreshToken:         "1//refresh",
		ExpirationTimeMillis: time.Now().Add(time.Hour).UnixMilli(),
	}
	require.NoError(t, SaveStoredToken(context.Background(), paths.Token, token))

	state, err := EnsureToken(context.Background(), paths, SharedScopes)
	require.NoError(t, err)
	require.True(t, state.Authorized())
	require.Equal(t, "ya29.valid", state.Token.AccessToken)
}

func TestEnsureToken_ExpiredTokenRefreshesAndPersists(t *testing.T) {
	srv, _ := tokenEndpoint(t, map[string]any{
		"access_token": "ya29.refreshed",
		"expires_in":   3600,
		"token_type":   "Bearer",
	})

	dir := t.TempDir()
	paths := Paths{
		Credentials: writeSecretFile(t, dir, srv.URL),
		Token:       filepath.Join(dir, "token.json"),
	}
	stale := StoredToken{
		ClientID:             "client-1",
		AccessToken:          "ya29.stale",
		RefreshToken:         "1//refresh",
		ExpirationTimeMillis: time.Now().Add(-time.Hour).UnixMilli(),
	}
	require.NoError(t, SaveStoredToken(context.Background(), paths.Token, stale))

	state, err := EnsureToken(context.Background(), paths, SharedScopes)
	require.NoError(t, err)
	require.True(t, state.Authorized())
	require.Equal(t, "ya29.refreshed", state.Token.AccessToken)

	persisted, err := LoadStoredToken(paths.Token)
	require.NoError(t, err)
	require.Equal(t, "ya29.refreshed", persisted.AccessToken)
}

func TestEnsureToken_ExpiredWithoutRefreshYieldsAuthURL(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Credentials: writeSecretFile(t, dir, defaultTokenURI),
		Token:       filepath.Join(dir, "token.json"),
	}
	expired := StoredToken{
		ClientID:             "client-1",
		AccessToken:          "ya29.stale",
		ExpirationTimeMillis: time.Now().Add(-time.Hour).UnixMilli(),
	}
	require.NoError(t, SaveStoredToken(context.Background(), paths.Token, expired))

	state, err := EnsureToken(context.Background(), paths, SharedScopes)
	require.NoError(t, err)
	require.False(t, state.Authorized())
	require.NotEmpty(t, state.AuthURL)
}

func TestAuthRequiredPayload(t *testing.T) {
	payload := AuthRequiredPayload("https://example.com/auth", "Authorization required", "gsuite")
	require.Equal(t, "AUTH_REQUIRED", payload["error_code"])
	require.Equal(t, "https://example.com/auth", payload["auth_url"])

	instructions, ok := payload["instructions"].([]string)
	require.True(t, ok)
	require.Len(t, instructions, 5)
	require.Equal(t, "4. Run: gsuite auth <code>", instructions[3])
}
