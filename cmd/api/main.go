// Package main is the entrypoint for the SentinelAI API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sentinelai/sentinel/internal/auth"
	"github.com/sentinelai/sentinel/internal/cache"
	"github.com/sentinelai/sentinel/internal/config"
	"github.com/sentinelai/sentinel/internal/github"
	"github.com/sentinelai/sentinel/internal/handler"
	"github.com/sentinelai/sentinel/internal/metrics"
	"github.com/sentinelai/sentinel/internal/middleware"
	"github.com/sentinelai/sentinel/internal/news"
	"github.com/sentinelai/sentinel/internal/repository"
	"github.com/sentinelai/sentinel/internal/server"
	"github.com/sentinelai/sentinel/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close(ctx)
	logger.Info("connected to database", "database", cfg.DatabaseName)

	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Error("failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize shared components
	metricsRecorder := metrics.NewInMemory()
	signer := auth.NewTokenSigner(cfg.JWTSecret, cfg.TokenTTL)
	ghClient := github.NewClient()

	var oauth *github.OAuth
	if cfg.GitHubOAuthEnabled() {
		oauth = github.NewOAuth(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.BackendURL)
		logger.Info("github oauth enabled")
	} else {
		logger.Warn("github oauth disabled, GITHUB_CLIENT_ID/SECRET not set")
	}

	// Initialize services
	accountService := service.NewAccountService(repo, signer, oauth, ghClient, metricsRecorder)
	repoService := service.NewRepoService(repo, ghClient, logger, metricsRecorder)
	newsService := news.NewService(
		news.NewFetcher(logger),
		cacheClient,
		cfg.GetNewsFeeds(),
		cfg.NewsCacheTTL,
		logger,
		metricsRecorder,
	)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(accountService, cfg.FrontendURL, logger)
	newsHandler := handler.NewNewsHandler(newsService, logger)
	repoHandler := handler.NewRepoHandler(repoService, logger)
	waitlistHandler := handler.NewWaitlistHandler(accountService, logger)
	reportHandler := handler.NewReportHandler(cfg.StaticDir)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)

	// Setup router
	r := setupRouter(routerDeps{
		cfg:             cfg,
		logger:          logger,
		signer:          signer,
		cache:           cacheClient,
		healthHandler:   healthHandler,
		authHandler:     authHandler,
		newsHandler:     newsHandler,
		repoHandler:     repoHandler,
		waitlistHandler: waitlistHandler,
		reportHandler:   reportHandler,
		metricsHandler:  metricsHandler,
	})

	// Create server
	srv := server.New(
		r,
		cfg.Port,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	// Background news refresher keeps the cache warm
	refresherCtx, stopRefresher := context.WithCancel(ctx)
	refresher := news.NewRefresher(newsService, logger, cfg.NewsRefreshInterval)
	go func() {
		if err := refresher.Run(refresherCtx); err != nil && refresherCtx.Err() == nil {
			logger.Error("news refresher stopped", "error", err)
		}
	}()
	srv.OnShutdown("news-refresher", func(ctx context.Context) error {
		stopRefresher()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.Port,
		"backend_url", cfg.BackendURL,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type routerDeps struct {
	cfg             *config.Config
	logger          *slog.Logger
	signer          *auth.TokenSigner
	cache           *cache.Cache
	healthHandler   *handler.HealthHandler
	authHandler     *handler.AuthHandler
	newsHandler     *handler.NewsHandler
	repoHandler     *handler.RepoHandler
	waitlistHandler *handler.WaitlistHandler
	reportHandler   *handler.ReportHandler
	metricsHandler  *handler.MetricsHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))

	securityCfg := middleware.DefaultSecurityConfig()
	securityCfg.IsDevelopment = d.cfg.IsDevelopment()
	r.Use(middleware.Security(securityCfg))
	r.Use(middleware.MaxBodySize(securityCfg.MaxRequestBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", d.healthHandler.Healthz)
	r.Get("/readyz", d.healthHandler.Readyz)
	r.Get("/metrics", d.metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", handler.Hello)

	requireAuth := middleware.RequireAuth(d.signer, d.logger)

	r.Route("/api", func(r chi.Router) {
		// Credential endpoints get IP rate limiting
		r.Group(func(r chi.Router) {
			if d.cfg.RateLimitAuthEnabled {
				r.Use(middleware.RateLimitAuth(d.cache, d.cfg.RateLimitAuthRPS, d.cfg.RateLimitAuthBurst, d.logger))
			}
			r.Post("/auth/signup", d.authHandler.Signup)
			r.Post("/auth/login", d.authHandler.Login)
		})

		// GitHub OAuth flow
		r.Get("/auth/github/login", d.authHandler.GitHubLogin)
		r.Get("/auth/github/callback", d.authHandler.GitHubCallback)

		// Public product endpoints
		r.Get("/news", d.newsHandler.List)
		r.Post("/waitlist", d.waitlistHandler.Join)
		r.Get("/report", d.reportHandler.Get)

		// Bearer-protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/auth/me", d.authHandler.Me)
			r.Post("/repos/connect", d.repoHandler.Connect)
			r.Get("/repos", d.repoHandler.List)
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
