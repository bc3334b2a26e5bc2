package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gsuite/pkg/fsutil"
)

// expirySkew is subtracted from the stored expiration when deciding
// whether a token is still usable, so a request started just before the
// deadline does not race the server-side expiry.
const expirySkew = 60 * time.Second

// StoredToken is the persisted authorization state for one OAuth client.
type StoredToken struct {
	ClientID             string `json:"client_id" yaml:"client_id"`
	AccessToken          string `json:"access_token" yaml:"access_token"`
	RefreshToken         string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Scope                Scopes `json:"scope,omitempty" yaml:"scope,omitempty"`
	ExpirationTimeMillis int64  `json:"expiration_time_millis" yaml:"expiration_time_millis"`
}

// Expired reports whether the access token is past (or within the skew
// window of) its recorded expiration.
func (t StoredToken) Expired(now time.Time) bool {
	return now.UnixMilli() >= t.ExpirationTimeMillis-expirySkew.Milliseconds()
}

// Scopes is a scope list that tolerates the single-string form older token
// files use. It always serializes back as a list.
type Scopes []string

func (s *Scopes) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = Scopes{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("scope must be a string or a list of strings: %w", err)
	}
	*s = Scopes(many)
	return nil
}

func (s *Scopes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*s = Scopes{node.Value}
		return nil
	}
	var many []string
	if err := node.Decode(&many); err != nil {
		return fmt.Errorf("scope must be a string or a list of strings: %w", err)
	}
	*s = Scopes(many)
	return nil
}

// LoadStoredToken reads a token file. Two formats are accepted: a bare
// JSON token, and the canonical YAML store where a `default` key holds
// either a JSON payload string or an inline mapping.
func LoadStoredToken(path string) (StoredToken, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return StoredToken{}, fmt.Errorf("read token file: %w", err)
	}

	var direct StoredToken
	if err := json.Unmarshal(raw, &direct); err == nil && direct.AccessToken != "" {
		return direct, nil
	}

	var store struct {
		Default yaml.Node `yaml:"default"`
	}
	if err := yaml.Unmarshal(raw, &store); err != nil {
		return StoredToken{}, fmt.Errorf("parse token file %s: %w", path, err)
	}

	var token StoredToken
	switch store.Default.Kind {
	case yaml.ScalarNode:
		if err := json.Unmarshal([]byte(store.Default.Value), &token); err != nil {
			return StoredToken{}, fmt.Errorf("parse token payload in %s: %w", path, err)
		}
	case yaml.MappingNode:
		if err := store.Default.Decode(&token); err != nil {
			return StoredToken{}, fmt.Errorf("parse token mapping in %s: %w", path, err)
		}
	default:
		return StoredToken{}, fmt.Errorf("token file %s has no default entry", path)
	}
	return token, nil
}

// SaveStoredToken persists the token in the canonical store format: a YAML
// mapping whose `default` key holds the JSON-encoded token. The write is
// atomic and the file is private to the user.
func SaveStoredToken(ctx context.Context, path string, token StoredToken) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token directory: %w", err)
		}
	}

	payload, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token payload: %w", err)
	}
	serialized, err := yaml.Marshal(map[string]string{"default": string(payload)})
	if err != nil {
		return fmt.Errorf("encode token store: %w", err)
	}
	return fsutil.WriteAtomic(ctx, path, serialized, 0o600)
}
