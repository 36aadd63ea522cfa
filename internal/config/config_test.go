package config

import (
	"os"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	os.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	os.Setenv("JWT_SECRET", "test-secret")
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("JWT_SECRET")
	})
}

func TestLoad_WithRequiredVars(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.DatabaseURL != "mongodb://localhost:27017" {
		t.Errorf("expected DatabaseURL to be set, got %s", cfg.DatabaseURL)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected JWTSecret to be set, got %s", cfg.JWTSecret)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.Port != 8080 {
		t.Errorf("expected default Port 8080, got %d", cfg.Port)
	}

	if cfg.DatabaseName != "sentinelai" {
		t.Errorf("expected default DatabaseName 'sentinelai', got %s", cfg.DatabaseName)
	}

	if cfg.NewsCacheTTL != 10*time.Minute {
		t.Errorf("expected default NewsCacheTTL 10m, got %s", cfg.NewsCacheTTL)
	}

	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default TokenTTL 24h, got %s", cfg.TokenTTL)
	}

	if cfg.GitHubOAuthEnabled() {
		t.Error("expected GitHub OAuth to be disabled without credentials")
	}
}

func TestConfig_GetNewsFeeds(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	feeds := cfg.GetNewsFeeds()
	if len(feeds) != 5 {
		t.Errorf("expected 5 default feeds, got %d", len(feeds))
	}

	os.Setenv("NEWS_FEEDS", " https://a.example/rss , ,https://b.example/atom ")
	defer os.Unsetenv("NEWS_FEEDS")

	cfg, err = Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	feeds = cfg.GetNewsFeeds()
	if len(feeds) != 2 {
		t.Fatalf("expected 2 configured feeds, got %d", len(feeds))
	}
	if feeds[0] != "https://a.example/rss" || feeds[1] != "https://b.example/atom" {
		t.Errorf("unexpected feeds: %v", feeds)
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	setRequired(t)
	os.Setenv("CORS_ALLOWED_ORIGINS", "https://sentinelai.dev, https://app.sentinelai.dev")
	defer os.Unsetenv("CORS_ALLOWED_ORIGINS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(origins))
	}
	if origins[1] != "https://app.sentinelai.dev" {
		t.Errorf("expected trimmed origin, got %q", origins[1])
	}
}
