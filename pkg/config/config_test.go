package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, "innovia_articles", cfg.ContentKey)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "/media/", cfg.MediaURL)
	assert.False(t, cfg.GithubEnabled())
	assert.Nil(t, cfg.OAuth())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("GITHUB_CLIENT_ID", "client")
	t.Setenv("GITHUB_ALLOWED_USERS", "alice,bob")
	t.Setenv("APP_URL", "https://cms.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"alice", "bob"}, cfg.GithubAllowedUsers)

	oauth := cfg.OAuth()
	require.NotNil(t, oauth)
	assert.Equal(t, "https://cms.example.com/auth/callback", oauth.RedirectURL)
}

func TestLoadRejectsDefaultSecretInRelease(t *testing.T) {
	t.Setenv("GIN_MODE", "release")

	_, err := Load()
	assert.ErrorContains(t, err, "SESSION_SECRET")

	t.Setenv("SESSION_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Production())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			StorageDriver: DriverMemory,
			ContentKey:    "k",
			SessionTTL:    time.Hour,
			MediaURL:      "/media/",
			ExportFormat:  "yaml",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "empty key", mutate: func(c *Config) { c.ContentKey = " " }, wantErr: "CONTENT_KEY"},
		{name: "zero ttl", mutate: func(c *Config) { c.SessionTTL = 0 }, wantErr: "SESSION_TTL"},
		{name: "unknown export format", mutate: func(c *Config) { c.ExportFormat = "xml" }, wantErr: "EXPORT_FORMAT"},
		{name: "relative media url", mutate: func(c *Config) { c.MediaURL = "media" }, wantErr: "MEDIA_URL"},
		{name: "default secret in release", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionSecret = DefaultSessionSecret
		}, wantErr: "SESSION_SECRET"},
		{name: "empty secret in release", mutate: func(c *Config) { c.GinMode = "release" }, wantErr: "SESSION_SECRET"},
		{name: "custom secret in release", mutate: func(c *Config) {
			c.GinMode = "release"
			c.SessionSecret = "s3cret"
		}},
		{name: "default secret in debug", mutate: func(c *Config) { c.SessionSecret = DefaultSessionSecret }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warning"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "bogus"}).SlogLevel())
}
