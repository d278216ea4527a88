package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := filepath.Join(dir, "config.json")

	jsonBody := `{
		"app": {
			"hash_algorithm": "sha-256",
			"pbkdf2_iterations": 2000,
			"workers": 8,
			"log_level": "error"
		},
		"policy": {
			"protected_actions": ["manage"]
		},
		"vault": {
			"path": "/data/vault.json",
			"base_url": "https://example.com/graphql"
		}
	}`

	require.NoError(t, os.WriteFile(p, []byte(jsonBody), 0o600))

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sha-256", cfg.App.HashAlgorithm)
	assert.Equal(t, 2000, cfg.App.Iterations)
	assert.Equal(t, 8, cfg.App.Workers)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, []string{"manage"}, cfg.Policy.ProtectedActions)
	assert.Equal(t, "/data/vault.json", cfg.Vault.Path)
	assert.Equal(t, "https://example.com/graphql", cfg.Vault.BaseURL)
	assert.Empty(t, cfg.JSONFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON(filepath.Join(t.TempDir(), "missing.json"))

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {`), 0o600))

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestParseJSON_WrongType(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"app": {"pbkdf2_iterations": "many"}}`), 0o600))

	_, err := parseJSON(p)

	assert.Error(t, err)
}

func TestParseJSON_EmptyObject(t *testing.T) {
	p := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(p, []byte(`{}`), 0o600))

	cfg, err := parseJSON(p)

	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}
