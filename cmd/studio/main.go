// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command studio serves the architecture studio website API and admin panel.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/studio-go/internal/auth"
	"github.com/olegiv/studio-go/internal/cache"
	"github.com/olegiv/studio-go/internal/config"
	"github.com/olegiv/studio-go/internal/handler"
	"github.com/olegiv/studio-go/internal/handler/api"
	"github.com/olegiv/studio-go/internal/identity"
	"github.com/olegiv/studio-go/internal/logging"
	"github.com/olegiv/studio-go/internal/middleware"
	"github.com/olegiv/studio-go/internal/render"
	"github.com/olegiv/studio-go/internal/service"
	"github.com/olegiv/studio-go/internal/session"
	"github.com/olegiv/studio-go/internal/storage"
	"github.com/olegiv/studio-go/internal/store"
	"github.com/olegiv/studio-go/internal/version"
	"github.com/olegiv/studio-go/web"
)

// Build-time variables injected via ldflags.
var (
	appVersion   = ""
	appGitCommit = ""
	appBuildTime = ""
)

// tokenIssuer is the iss claim of access and refresh tokens.
const tokenIssuer = "studio"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "studio - architecture studio website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SESSION_SECRET    Session and token signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_DB_PATH           SQLite database path (default: ./data/studio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_UPLOADS_DIR       Upload bucket directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_REDIS_URL         Redis URL for the content cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ADMIN_PASSWORD    Password of the seeded admin (first start only)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.New(appVersion, appGitCommit, appBuildTime)
	if *showVersion {
		_, _ = fmt.Printf("studio %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.SlogLevel())
	slog.SetDefault(logger)
	slog.Info("starting studio", "version", info.String(), "env", cfg.Env)

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	stores := store.NewStores(db)

	if err := store.Seed(context.Background(), stores, store.SeedAdmin{
		Username: cfg.SeedAdminUsername,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
	}, auth.HashPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}
	slog.Info("database ready")

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	contentCache := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheDuration(),
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	bucket, err := storage.NewLocalBucket(cfg.UploadsDir, cfg.PublicBaseURL)
	if err != nil {
		return fmt.Errorf("opening upload bucket: %w", err)
	}

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(templatesFS)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	slog.Info("template renderer initialized")

	tokens := auth.NewTokenService(cfg.SessionSecret, tokenIssuer)
	resolver := auth.NewSessionResolver(sessionManager, tokens)
	authenticator := auth.NewAuthenticator(stores.Admins, logger)
	registrar := service.NewRegistrar(identity.NewSQLDirectory(stores.Identities), stores.Admins, logger)

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	defer loginProtection.Stop()
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	// 1 submission every 10s per client with a burst of 3
	collaborateLimiter := middleware.NewClientRateLimiter(0.1, 3)

	metrics := middleware.NewMetrics("studio")

	apiHandler := api.NewHandler(api.Config{
		Stores:             stores,
		Cache:              cache.NewContent(contentCache, cfg.CacheDuration(), logger),
		Bucket:             bucket,
		Sessions:           sessionManager,
		Tokens:             tokens,
		Checker:            resolver,
		Authenticator:      authenticator,
		Registrar:          registrar,
		Logger:             logger,
		CollaborateLimiter: collaborateLimiter,
		LoginProtection:    loginProtection,
		IsDev:              cfg.IsDevelopment(),
		OpenRegistration:   cfg.OpenRegistration,
		UploadMaxMemory:    cfg.UploadMaxMemory,
	})
	authHandler := handler.NewAuthHandler(renderer, sessionManager, authenticator, loginProtection, logger, cfg.IsDevelopment())
	adminHandler := handler.NewAdminHandler(renderer, sessionManager, stores, logger)
	healthHandler := handler.NewHealthHandler(db, resolver, cfg.UploadsDir, info)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(metrics.Middleware)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment())

	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.SessionGuard(resolver))

	// The JSON API is exempt from the form CSRF check.
	r.Use(middleware.SkipCSRF("/api/"))
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Mount("/api", apiHandler.Routes())

	r.Get(middleware.LoginPath, authHandler.LoginForm)
	r.With(loginProtection.Middleware).Post(middleware.LoginPath, authHandler.Login)
	r.Post("/admin/logout", authHandler.Logout)
	r.Get(middleware.AdminPath, adminHandler.Dashboard)

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFS)))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(bucket.Root()))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads
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
