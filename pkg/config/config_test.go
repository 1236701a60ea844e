package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakeio/dlstore/pkg/transport"
)

// ============================================================================
// Test Helper Functions
// ============================================================================

func validConfig() *Config {
	cfg := GetDefaultConfig()
	cfg.Service.URL = "https://account.dls.example.net/myfs"
	return cfg
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))
	return configPath
}

// ============================================================================
// Load Tests
// ============================================================================

func TestLoad(t *testing.T) {
	t.Run("LoadsYAMLFile", func(t *testing.T) {
		configPath := writeConfigFile(t, `
logging:
  level: debug
service:
  url: https://account.dls.example.net/myfs
  auth:
    type: bearer
    bearer:
      token: secret
journal:
  enabled: true
  dir: /var/lib/dlstore/journal
`)

		cfg, err := Load(configPath)
		require.NoError(t, err)

		assert.Equal(t, "DEBUG", cfg.Logging.Level)
		assert.Equal(t, "https://account.dls.example.net/myfs", cfg.Service.URL)
		assert.Equal(t, "bearer", cfg.Service.Auth.Type)
		assert.True(t, cfg.Journal.Enabled)
		assert.Equal(t, "/var/lib/dlstore/journal", cfg.Journal.Dir)
	})

	t.Run("FailsWithoutServiceURL", func(t *testing.T) {
		configPath := writeConfigFile(t, "logging:\n  level: info\n")

		_, err := Load(configPath)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "Service.URL"), "unexpected error: %v", err)
	})
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidate(t *testing.T) {
	t.Run("AcceptsValidConfig", func(t *testing.T) {
		require.NoError(t, Validate(validConfig()))
	})

	t.Run("RejectsInvalidLogLevel", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Level = "VERBOSE"

		err := Validate(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "oneof")
	})

	t.Run("RejectsInvalidURL", func(t *testing.T) {
		cfg := validConfig()
		cfg.Service.URL = "not a url"
		require.Error(t, Validate(cfg))
	})

	t.Run("RejectsJournalWithoutDir", func(t *testing.T) {
		cfg := validConfig()
		cfg.Journal.Enabled = true
		cfg.Journal.Dir = ""
		require.Error(t, Validate(cfg))
	})

	t.Run("RejectsBearerWithoutSection", func(t *testing.T) {
		cfg := validConfig()
		cfg.Service.Auth.Type = "bearer"
		cfg.Service.Auth.Bearer = nil
		require.Error(t, Validate(cfg))
	})
}

// ============================================================================
// Defaults Tests
// ============================================================================

func TestApplyDefaults(t *testing.T) {
	t.Run("FillsMissingValues", func(t *testing.T) {
		var cfg Config
		ApplyDefaults(&cfg)

		assert.Equal(t, "INFO", cfg.Logging.Level)
		assert.Equal(t, 64, cfg.Logging.MaxSizeMB)
		assert.Equal(t, "none", cfg.Service.Auth.Type)
	})

	t.Run("NormalizesLogLevel", func(t *testing.T) {
		cfg := Config{Logging: LoggingConfig{Level: "warn"}}
		ApplyDefaults(&cfg)
		assert.Equal(t, "WARN", cfg.Logging.Level)
	})
}

// ============================================================================
// Factory Tests
// ============================================================================

func TestNewAuthorizer(t *testing.T) {
	t.Run("NoneYieldsNil", func(t *testing.T) {
		authorizer, err := NewAuthorizer(ServiceConfig{Auth: AuthConfig{Type: "none"}})
		require.NoError(t, err)
		assert.Nil(t, authorizer)
	})

	t.Run("BearerDecodesToken", func(t *testing.T) {
		authorizer, err := NewAuthorizer(ServiceConfig{Auth: AuthConfig{
			Type:   "bearer",
			Bearer: map[string]any{"token": "secret"},
		}})
		require.NoError(t, err)
		assert.Equal(t, transport.BearerToken("secret"), authorizer)
	})

	t.Run("BearerRequiresToken", func(t *testing.T) {
		_, err := NewAuthorizer(ServiceConfig{Auth: AuthConfig{
			Type:   "bearer",
			Bearer: map[string]any{},
		}})
		require.Error(t, err)
	})

	t.Run("RejectsUnknownType", func(t *testing.T) {
		_, err := NewAuthorizer(ServiceConfig{Auth: AuthConfig{Type: "kerberos"}})
		require.Error(t, err)
	})
}

func TestNewJournal(t *testing.T) {
	t.Run("DisabledYieldsNilStore", func(t *testing.T) {
		store, err := NewJournal(JournalConfig{Enabled: false})
		require.NoError(t, err)
		assert.Nil(t, store)
	})

	t.Run("SingleOpenServesClientAndPendingListing", func(t *testing.T) {
		store, err := NewJournal(JournalConfig{Enabled: true, Dir: t.TempDir()})
		require.NoError(t, err)
		require.NotNil(t, store)
		defer store.Close()

		// The same store backs the client's token persistence and the
		// pending listing; Badger's directory lock forbids a second open.
		client, err := NewClient(validConfig(), store)
		require.NoError(t, err)
		require.NotNil(t, client)

		require.NoError(t, store.Record("delete", "raw/landing", "tok1"))

		pending, err := store.Pending()
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "delete", pending[0].Operation)
		assert.Equal(t, "raw/landing", pending[0].Path)
		assert.Equal(t, "tok1", pending[0].Token)
	})
}

func TestNewClient(t *testing.T) {
	t.Run("NilStoreDisablesPersistence", func(t *testing.T) {
		client, err := NewClient(validConfig(), nil)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("RejectsInvalidAuth", func(t *testing.T) {
		cfg := validConfig()
		cfg.Service.Auth.Type = "kerberos"
		_, err := NewClient(cfg, nil)
		require.Error(t, err)
	})
}
