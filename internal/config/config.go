// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Public URLs. BackendURL is used to build the OAuth callback;
	// FrontendURL is where the OAuth flow lands with the token.
	BackendURL  string `env:"BACKEND_URL" envDefault:"http://localhost:8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	// Database (MongoDB)
	DatabaseURL  string `env:"DATABASE_URL,required"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"sentinelai"`

	// Cache (Redis)
	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Token signing
	JWTSecret string        `env:"JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// GitHub OAuth app credentials. Empty values disable the OAuth flow.
	GitHubClientID     string `env:"GITHUB_CLIENT_ID" envDefault:""`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET" envDefault:""`

	// News aggregation
	// Comma-separated list of RSS/Atom feed URLs.
	NewsFeeds           string        `env:"NEWS_FEEDS" envDefault:""`
	NewsCacheTTL        time.Duration `env:"NEWS_CACHE_TTL" envDefault:"10m"`
	NewsRefreshInterval time.Duration `env:"NEWS_REFRESH_INTERVAL" envDefault:"5m"`

	// Static assets (sample report PDF)
	StaticDir string `env:"STATIC_DIR" envDefault:"./static"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting for credential endpoints (signup/login)
	RateLimitAuthEnabled bool `env:"RATE_LIMIT_AUTH_ENABLED" envDefault:"true"`
	RateLimitAuthRPS     int  `env:"RATE_LIMIT_AUTH_RPS" envDefault:"5"`
	RateLimitAuthBurst   int  `env:"RATE_LIMIT_AUTH_BURST" envDefault:"10"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://sentinelai.dev,https://app.sentinelai.dev")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`
}

// defaultFeeds are the feeds aggregated when NEWS_FEEDS is not set.
var defaultFeeds = []string{
	"https://thehackernews.com/feeds/posts/default",
	"https://krebsonsecurity.com/feed/",
	"https://www.darkreading.com/rss.xml",
	"https://feeds.feedburner.com/OpenAIBlog",
	"https://www.schneier.com/feed/atom/",
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GitHubOAuthEnabled reports whether GitHub OAuth credentials are configured.
func (c *Config) GitHubOAuthEnabled() bool {
	return c.GitHubClientID != "" && c.GitHubClientSecret != ""
}

// GetNewsFeeds parses the comma-separated feed list, falling back to the defaults.
func (c *Config) GetNewsFeeds() []string {
	feeds := splitTrimmed(c.NewsFeeds)
	if len(feeds) == 0 {
		return defaultFeeds
	}
	return feeds
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	return splitTrimmed(c.CORSAllowedOrigins)
}

func splitTrimmed(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
