package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// DefaultSessionSecret is the SESSION_SECRET fallback, refused in release mode.
const DefaultSessionSecret = "change-me-in-production"

// Storage drivers understood by storage.Open.
const (
	DriverMemory    = "memory"
	DriverFile      = "file"
	DriverSQLite    = "sqlite"
	DriverRedis     = "redis"
	DriverMemcached = "memcached"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	AppURL   string `env:"APP_URL" envDefault:"http://localhost:8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"debug"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Session settings
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"change-me-in-production"`
	SessionName   string        `env:"SESSION_NAME" envDefault:"innovia_session"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// Password sign-in. The hash is bcrypt.
	AdminUser         string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// GitHub sign-in is enabled only when a client id is set.
	GithubClientID     string   `env:"GITHUB_CLIENT_ID"`
	GithubClientSecret string   `env:"GITHUB_CLIENT_SECRET"`
	GithubRedirectURL  string   `env:"GITHUB_REDIRECT_URL"`
	GithubAllowedUsers []string `env:"GITHUB_ALLOWED_USERS" envSeparator:","`

	// Storage settings
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"file"`
	StoragePath    string        `env:"STORAGE_PATH" envDefault:"./data"`
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	MemcachedAddr  string        `env:"MEMCACHED_ADDR" envDefault:"127.0.0.1:11211"`
	ContentKey     string        `env:"CONTENT_KEY" envDefault:"innovia_articles"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	StorageTimeout time.Duration `env:"STORAGE_TIMEOUT" envDefault:"3s"`
	SeedDemo       bool          `env:"SEED_DEMO_CONTENT" envDefault:"false"`

	// Media settings
	MediaDir string `env:"MEDIA_DIR" envDefault:"./data/media"`
	MediaURL string `env:"MEDIA_URL" envDefault:"/media/"`

	// Markdown export settings
	ExportDir    string `env:"EXPORT_DIR" envDefault:"./data/export"`
	ExportFormat string `env:"EXPORT_FORMAT" envDefault:"yaml"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverMemory, DriverFile, DriverSQLite, DriverRedis, DriverMemcached:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if strings.TrimSpace(c.ContentKey) == "" {
		return fmt.Errorf("CONTENT_KEY must not be empty")
	}
	if c.Production() && (c.SessionSecret == "" || c.SessionSecret == DefaultSessionSecret) {
		return fmt.Errorf("SESSION_SECRET must be set in release mode")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	switch c.ExportFormat {
	case "yaml", "toml", "json":
	default:
		return fmt.Errorf("unknown EXPORT_FORMAT %q", c.ExportFormat)
	}
	if !strings.HasPrefix(c.MediaURL, "/") {
		return fmt.Errorf("MEDIA_URL must start with /")
	}
	return nil
}

func (c *Config) Production() bool {
	return c.GinMode == "release"
}

func (c *Config) GithubEnabled() bool {
	return c.GithubClientID != ""
}

// OAuth returns the GitHub OAuth config, or nil when GitHub sign-in is disabled.
func (c *Config) OAuth() *oauth2.Config {
	if !c.GithubEnabled() {
		return nil
	}
	redirectURL := c.GithubRedirectURL
	if redirectURL == "" {
		redirectURL = strings.TrimRight(c.AppURL, "/") + "/auth/callback"
	}
	return &oauth2.Config{
		ClientID:     c.GithubClientID,
		ClientSecret: c.GithubClientSecret,
		Scopes:       []string{"read:user"},
		Endpoint:     github.Endpoint,
		RedirectURL:  redirectURL,
	}
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
