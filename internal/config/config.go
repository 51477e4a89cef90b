package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	Env      string `env:"APP_ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	SiteName string `env:"SITE_NAME, default=Newsroom"`
	// SiteURL is the public origin used in the sitemap and feed.
	SiteURL string `env:"SITE_URL, default=http://localhost:8080"`

	// LoginURL is where unauthenticated users are sent by the auth gate.
	LoginURL string `env:"LOGIN_URL, default=/login/"`
	PageSize int    `env:"PAGE_SIZE, default=2"`

	// MediaRoot holds uploaded photos.
	MediaRoot      string `env:"MEDIA_ROOT, default=media"`
	SeedCategories bool   `env:"SEED_CATEGORIES, default=true"`

	// RateLimitPerMinute bounds form submissions per client IP on login,
	// register and contacts. Zero disables the limiter.
	RateLimitPerMinute int `env:"RATE_LIMIT_PER_MINUTE, default=20"`

	Session  SessionConfig
	Database DatabaseConfig
	Mail     MailConfig
}

type SessionConfig struct {
	Secret string `env:"SESSION_SECRET, default=secret_key_change_me"`
	Name   string `env:"SESSION_NAME, default=newsroom_session"`
	MaxAge int    `env:"SESSION_MAX_AGE, default=1209600"`
}

type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `env:"DB_DRIVER, default=postgres"`
	URL    string `env:"DATABASE_URL, default=host=localhost user=postgres password=postgres dbname=newsroom port=5432 sslmode=disable TimeZone=UTC"`
}

type MailConfig struct {
	Host     string   `env:"SMTP_HOST"`
	Port     string   `env:"SMTP_PORT, default=587"`
	Username string   `env:"SMTP_USER"`
	Password string   `env:"SMTP_PASS"`
	From     string   `env:"MAIL_FROM, default=newsroom@localhost"`
	To       []string `env:"CONTACT_RECIPIENTS"`
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port != "" && m.From != "" && len(m.To) > 0
}

func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// Load reads an optional .env file and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("config: PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	return &cfg, nil
}
