// Package auth manages the OAuth 2.0 installed-app lifecycle: client
// secret loading, consent URL construction, code exchange, refresh, and
// the persisted token store.
package auth

import (
	"os"
	"path/filepath"
)

// Google API scopes requested during authorization. All commands share one
// token, so consent is asked once for the full set.
const (
	ScopeDocs     = "https://www.googleapis.com/auth/documents"
	ScopeDrive    = "https://www.googleapis.com/auth/drive"
	ScopeSheets   = "https://www.googleapis.com/auth/spreadsheets"
	ScopeCalendar = "https://www.googleapis.com/auth/calendar"
	ScopeContacts = "https://www.googleapis.com/auth/contacts"
	ScopeGmail    = "https://www.googleapis.com/auth/gmail.modify"
)

// SharedScopes is the scope set used by every command.
var SharedScopes = []string{
	ScopeDrive,
	ScopeSheets,
	ScopeDocs,
	ScopeCalendar,
	ScopeContacts,
	ScopeGmail,
}

// Environment overrides for the credential and token locations.
const (
	EnvCredentialsFile = "GSUITE_CREDENTIALS_FILE"
	EnvTokenFile       = "GSUITE_TOKEN_FILE"
)

// Paths locates the client secret and the persisted token on disk.
type Paths struct {
	Credentials string
	Token       string
}

// DefaultPaths resolves the standard locations under the user's home
// directory, honoring the environment overrides.
func DefaultPaths() (Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, err
	}
	return PathsFromHome(home), nil
}

// PathsFromHome builds Paths rooted at an explicit home directory.
func PathsFromHome(home string) Paths {
	p := Paths{
		Credentials: filepath.Join(home, ".claude", ".google", "client_secret.json"),
		Token:       filepath.Join(home, ".claude", ".google", "token.json"),
	}
	if v := os.Getenv(EnvCredentialsFile); v != "" {
		p.Credentials = v
	}
	if v := os.Getenv(EnvTokenFile); v != "" {
		p.Token = v
	}
	return p
}
