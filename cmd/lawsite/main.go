// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/pidlozhevich/lawsite/internal/blog"
	"github.com/pidlozhevich/lawsite/internal/cache"
	"github.com/pidlozhevich/lawsite/internal/config"
	"github.com/pidlozhevich/lawsite/internal/handler"
	"github.com/pidlozhevich/lawsite/internal/i18n"
	"github.com/pidlozhevich/lawsite/internal/logging"
	"github.com/pidlozhevich/lawsite/internal/middleware"
	"github.com/pidlozhevich/lawsite/internal/notion"
	"github.com/pidlozhevich/lawsite/internal/render"
	"github.com/pidlozhevich/lawsite/internal/scheduler"
	"github.com/pidlozhevich/lawsite/internal/service"
	"github.com/pidlozhevich/lawsite/internal/store"
	"github.com/pidlozhevich/lawsite/internal/version"
	"github.com/pidlozhevich/lawsite/web"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "lawsite - law practice website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_NOTION_TOKEN       Notion integration token (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_NOTION_ROOT_PAGE   Notion page id holding blog posts (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_DB_PATH            SQLite database path (default: ./data/lawsite.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_SITE_URL           Canonical site URL for sitemap links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_REVALIDATE_TOKEN   Token for the cache invalidation endpoint\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_CRON_SECRET        Secret for the weekly stats endpoint\n")
		_, _ = fmt.Fprintf(os.Stderr, "  LAWSITE_REDIS_URL          Redis URL for distributed caching (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("lawsite %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the events table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Translations
	translator, err := i18n.New()
	if err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n initialized",
		"locales", i18n.SupportedLocales,
		"messages", translator.TranslationCount(i18n.DefaultLocale),
	)

	// Posts cache backend: Redis when configured, in-memory otherwise
	cacheBackend := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:         1000,
		CleanupInterval: time.Minute,
	})
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// Blog content source
	source := notion.NewClient(cfg.NotionToken)
	blogService := blog.NewService(
		source,
		config.NormalizePageID(cfg.NotionRootPage),
		cacheBackend,
		time.Duration(cfg.CacheTTL)*time.Second,
	)

	// Template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Translator:  translator,
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Static markdown pages (privacy policy)
	contentFS, err := fs.Sub(web.Content, "content")
	if err != nil {
		return fmt.Errorf("getting content fs: %w", err)
	}
	staticPages, err := handler.LoadStaticPages(contentFS)
	if err != nil {
		return fmt.Errorf("loading static pages: %w", err)
	}

	// Weekly stats job
	statsService := service.NewStatsService(db, blogService)
	sched := scheduler.New(func(ctx context.Context) error {
		_, err := statsService.Record(ctx)
		return err
	}, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Handlers
	frontend := handler.NewFrontend(renderer, blogService, translator, staticPages, cfg.SiteURL)
	callbackHandler := handler.NewCallbackHandler(db, translator)
	revalidateHandler := handler.NewRevalidateHandler(cfg.RevalidateToken, blogService)
	cronHandler := handler.NewCronHandler(cfg.CronSecret, cfg.IsDevelopment(), statsService)
	healthHandler := handler.NewHealthHandler(db)

	// Router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.Locale(translator, cfg.DefaultLocale))

	// The invalidation and cron endpoints authenticate with tokens, not
	// browser sessions, so browsers never call them cross-origin.
	r.Use(middleware.SkipCSRF("/api/revalidate", "/api/cron/weekly-stats"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.CSRFKey), cfg.IsDevelopment())))

	r.Get("/", frontend.Home)
	r.Get("/blog", frontend.BlogIndex)
	r.Get("/blog/{slug}", frontend.BlogPost)
	r.Get("/contacts", frontend.Contacts)
	r.Get("/privacy", frontend.Privacy)
	r.Get("/sitemap.xml", frontend.Sitemap)
	r.Get("/robots.txt", frontend.Robots)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		r.With(middleware.RateLimitByIP(1, 3)).Post("/callback", callbackHandler.Submit)
		r.Get("/revalidate", revalidateHandler.Revalidate)
		r.Get("/cron/weekly-stats", cronHandler.WeeklyStats)
	})

	// Static assets
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.NotFound(frontend.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
