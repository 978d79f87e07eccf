// Package main is the entrypoint for the Listling API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/listling/listling/internal/config"
	"github.com/listling/listling/internal/database"
	"github.com/listling/listling/internal/handler"
	"github.com/listling/listling/internal/mailer"
	"github.com/listling/listling/internal/metrics"
	"github.com/listling/listling/internal/middleware"
	"github.com/listling/listling/internal/repository"
	"github.com/listling/listling/internal/server"
	"github.com/listling/listling/internal/service"
	"github.com/listling/listling/internal/session"
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

	// Apply schema migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations",
			slog.String("error", err.Error()),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("database schema up to date")

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("error", err.Error()),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize session store
	sessions, err := session.New(ctx, cfg.RedisURL, cfg.SessionMaxAge)
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.String("error", err.Error()),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer sessions.Close()
	logger.Info("connected to Redis")

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewPrometheus(registry)

	// Outbound mail
	var m mailer.Mailer
	if cfg.MailEnabled {
		m = mailer.NewSMTP(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
	} else {
		m = mailer.NewLog(logger)
	}

	// Initialize services
	authService := service.NewAuthService(repo, repo, m, cfg.BaseURL, recorder, logger)
	listService := service.NewListService(repo, repo, recorder, logger)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(repo, sessions)
	authHandler := handler.NewAuthHandler(authService, sessions, logger, cfg.SessionMaxAge, cfg.IsProduction())
	listHandler := handler.NewListHandler(listService, logger)

	// Setup router
	r := setupRouter(healthHandler, authHandler, listHandler, authService, sessions, registry, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
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

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	listHandler *handler.ListHandler,
	authService *service.AuthService,
	sessions *session.Store,
	registry *prometheus.Registry,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	r.Use(middleware.CurrentUser(logger, sessions, authService))

	// Health and metrics endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Passwordless login flow
	r.Post("/auth/send-login-email", authHandler.SendLoginEmail)
	r.Get("/login", authHandler.Login)
	r.Post("/auth/logout", authHandler.Logout)

	// Lists API
	r.Route("/api", func(r chi.Router) {
		r.Route("/lists", func(r chi.Router) {
			r.Post("/", listHandler.CreateList)
			r.Get("/{listID}", listHandler.GetList)
			r.Post("/{listID}/items", listHandler.AddItem)
			r.Post("/{listID}/share", listHandler.ShareList)
		})
		r.Get("/my/lists", listHandler.MyLists)
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// redactURL strips credentials from a connection URL before logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	if u.User == nil {
		return u.String()
	}
	name := u.User.Username()
	u.User = nil
	redacted := u.String()
	return strings.Replace(redacted, "://", "://"+name+":***@", 1)
}
