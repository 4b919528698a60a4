package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Restore.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Restore.Interval)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
base_url: https://catalog.example.com
api_token: file-token
restore:
  max_retries: 8
  interval: 500ms
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.example.com", cfg.BaseURL)
	assert.Equal(t, "file-token", cfg.APIToken)
	assert.Equal(t, 8, cfg.Restore.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Restore.Interval)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "base_url: https://file.example.com\napi_token: file-token\n")
	t.Setenv(EnvBaseURL, "https://env.example.com")
	t.Setenv(EnvAPIToken, "env-token")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.BaseURL)
	assert.Equal(t, "env-token", cfg.APIToken)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative retries", "restore:\n  max_retries: -1\n"},
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestIdentityFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "abc-123", "username": "ada"})
	id, err := IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada", id.Username)
	assert.Equal(t, "abc-123", id.Subject)
}

func TestIdentityFromToken_ServiceToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "service/apikey-9f2"})
	id, err := IdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "apikey-9f2", id.Username, "falls back to the subject's last segment")
}

func TestIdentityFromToken_Invalid(t *testing.T) {
	_, err := IdentityFromToken("not-a-jwt")
	assert.Error(t, err)

	_, err = IdentityFromToken("")
	assert.Error(t, err)
}
