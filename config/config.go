// Package config loads catalog API credentials.
//
// Credentials come from an optional YAML secrets file and are overridden by
// the environment (a .env file in the working directory is loaded first).
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSecretsFile = "secrets.yaml"

	DefaultAccountsURL = "https://accounts.spotify.com"
	DefaultAPIURL      = "https://api.spotify.com"

	envClientID     = "SPOTIFY_CLIENT_ID"
	envClientSecret = "SPOTIFY_CLIENT_SECRET"
	envUserToken    = "SPOTIFY_USER_TOKEN"
)

// Credentials models the secrets file.
type Credentials struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// User access token with playlist-modify scope. Only the playlist command needs it.
	UserToken   string `yaml:"user_token,omitempty"`
	AccountsURL string `yaml:"accounts_url,omitempty"`
	APIURL      string `yaml:"api_url,omitempty"`
}

// Load reads the secrets file at path, if it exists, then applies environment overrides.
func Load(path string) (*Credentials, error) {
	creds := &Credentials{}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, creds); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	creds.ClientID = firstNonEmpty(os.Getenv(envClientID), creds.ClientID)
	creds.ClientSecret = firstNonEmpty(os.Getenv(envClientSecret), creds.ClientSecret)
	creds.UserToken = firstNonEmpty(os.Getenv(envUserToken), creds.UserToken)
	creds.AccountsURL = firstNonEmpty(creds.AccountsURL, DefaultAccountsURL)
	creds.APIURL = firstNonEmpty(creds.APIURL, DefaultAPIURL)
	return creds, nil
}

// Validate reports missing client credentials.
func (c *Credentials) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client_id ("+envClientID+")")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret ("+envClientSecret+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
