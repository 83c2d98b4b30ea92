package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func clearEnv(t *testing.T) {
	t.Setenv(envClientID, "")
	t.Setenv(envClientSecret, "")
	t.Setenv(envUserToken, "")
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeSecrets(t, "client_id: abc\nclient_secret: shh\napi_url: http://localhost:9999\n")

	creds, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "abc", creds.ClientID)
	require.Equal(t, "shh", creds.ClientSecret)
	require.Equal(t, "http://localhost:9999", creds.APIURL)
	require.Equal(t, DefaultAccountsURL, creds.AccountsURL)
	require.NoError(t, creds.Validate())
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(envClientSecret, "from-env")
	t.Setenv(envUserToken, "user")
	path := writeSecrets(t, "client_id: abc\nclient_secret: shh\n")

	creds, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "abc", creds.ClientID)
	require.Equal(t, "from-env", creds.ClientSecret)
	require.Equal(t, "user", creds.UserToken)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	creds, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultAPIURL, creds.APIURL)
	require.ErrorContains(t, creds.Validate(), "client_id")
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeSecrets(t, "client_id: [unterminated\n"))
	require.Error(t, err)
}
