// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"LAWSITE_DB_PATH" envDefault:"./data/lawsite.db"`
	ServerHost string `env:"LAWSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"LAWSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"LAWSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"LAWSITE_LOG_LEVEL" envDefault:"info"`
	SiteURL    string `env:"LAWSITE_SITE_URL" envDefault:"http://localhost:8080"`

	// Notion content source
	NotionToken    string `env:"LAWSITE_NOTION_TOKEN,required"`
	NotionRootPage string `env:"LAWSITE_NOTION_ROOT_PAGE,required"`

	// Endpoint secrets
	RevalidateToken string `env:"LAWSITE_REVALIDATE_TOKEN"`
	CronSecret      string `env:"LAWSITE_CRON_SECRET"`
	CSRFKey         string `env:"LAWSITE_CSRF_KEY"`

	// Cache configuration
	RedisURL    string `env:"LAWSITE_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix string `env:"LAWSITE_CACHE_PREFIX" envDefault:"lawsite:"` // Redis key prefix
	CacheTTL    int    `env:"LAWSITE_CACHE_TTL" envDefault:"3600"`        // Posts cache TTL in seconds

	// Locale configuration
	DefaultLocale string `env:"LAWSITE_DEFAULT_LOCALE" envDefault:"ru"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Notion accepts page ids with or without dashes; both must parse as a UUID.
	if _, err := uuid.Parse(NormalizePageID(cfg.NotionRootPage)); err != nil {
		return nil, fmt.Errorf("LAWSITE_NOTION_ROOT_PAGE is not a valid page id: %w", err)
	}

	// The revalidation and cron endpoints are reachable from the internet in
	// production and must not run unguarded there.
	if !cfg.IsDevelopment() {
		if cfg.RevalidateToken == "" {
			return nil, fmt.Errorf("LAWSITE_REVALIDATE_TOKEN is required outside development")
		}
		if cfg.CronSecret == "" {
			return nil, fmt.Errorf("LAWSITE_CRON_SECRET is required outside development")
		}
	}

	if !isSupportedLocale(cfg.DefaultLocale) {
		return nil, fmt.Errorf("LAWSITE_DEFAULT_LOCALE must be one of ru, en, be; got %q", cfg.DefaultLocale)
	}

	return cfg, nil
}

// NormalizePageID re-inserts dashes into a bare 32-character Notion id so both
// spellings parse as the same UUID. Ids that are not 32 hex characters are
// returned unchanged.
func NormalizePageID(id string) string {
	s := strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(s) != 32 {
		return strings.TrimSpace(id)
	}
	return s[0:8] + "-" + s[8:12] + "-" + s[12:16] + "-" + s[16:20] + "-" + s[20:32]
}

func isSupportedLocale(code string) bool {
	switch code {
	case "ru", "en", "be":
		return true
	}
	return false
}
