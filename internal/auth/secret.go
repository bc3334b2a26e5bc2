package auth

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
)

const (
	defaultAuthURI  = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURI = "https://oauth2.googleapis.com/token"

	// oobRedirectURI is the out-of-band redirect: Google shows the
	// authorization code in the browser for the user to paste back.
	oobRedirectURI = "urn:ietf:wg:oauth:2.0:oob"
)

// ClientConfig is the OAuth client identity loaded from a client secret
// file downloaded from the Google Cloud console.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	AuthURI      string
	TokenURI     string
}

// LoadClientConfig reads a client secret JSON file. Both the "installed"
// and "web" layouts are accepted; missing endpoint URIs fall back to the
// Google defaults.
func LoadClientConfig(path string) (ClientConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ClientConfig{}, fmt.Errorf("read credentials file: %w", err)
	}

	var file struct {
		Installed *secretSection `json:"installed"`
		Web       *secretSection `json:"web"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return ClientConfig{}, fmt.Errorf("parse credentials file %s: %w", path, err)
	}

	section := file.Installed
	if section == nil {
		section = file.Web
	}
	if section == nil {
		return ClientConfig{}, fmt.Errorf("credentials file %s has neither an installed nor a web section", path)
	}

	cfg := ClientConfig{
		ClientID:     section.ClientID,
		ClientSecret: section.ClientSecret,
		AuthURI:      section.AuthURI,
		TokenURI:     section.TokenURI,
	}
	if cfg.AuthURI == "" {
		cfg.AuthURI = defaultAuthURI
	}
	if cfg.TokenURI == "" {
		cfg.TokenURI = defaultTokenURI
	}
	return cfg, nil
}

type secretSection struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AuthURI      string `json:"auth_uri"`
	TokenURI     string `json:"token_uri"`
}

// oauth2Config adapts the client identity to the x/oauth2 flow types.
func (c ClientConfig) oauth2Config(scopes []string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  oobRedirectURI,
		Scopes:       scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  c.AuthURI,
			TokenURL: c.TokenURI,
		},
	}
}
