package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/finance_core/internal/adapters/ofx"
	"github.com/SscSPs/finance_core/internal/audit"
	"github.com/SscSPs/finance_core/internal/core/posting"
	"github.com/SscSPs/finance_core/internal/core/services"
	"github.com/SscSPs/finance_core/internal/handlers"
	"github.com/SscSPs/finance_core/internal/middleware"
	"github.com/SscSPs/finance_core/internal/observability/metrics"
	"github.com/SscSPs/finance_core/internal/platform/config"
	"github.com/SscSPs/finance_core/internal/platform/rules"
	"github.com/SscSPs/finance_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_core/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const (
	shutdownTimeout = 15 * time.Second
	redriveInterval = time.Minute
	redriveBatch    = 100
)

// @title Finance Core API
// @version 1.0
// @description Draft intake, validation, approvals, posting, reconciliation and period close.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ruleBook := rules.Default()
	if cfg.RulesFile != "" {
		loaded, err := rules.Load(cfg.RulesFile)
		if err != nil {
			logger.Warn("Using built-in rule book", slog.String("rules_file", cfg.RulesFile), slog.String("error", err.Error()))
		} else {
			ruleBook = loaded
		}
	}

	if cfg.MetricsEnabled {
		metrics.Init()
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	dispatcher := audit.NewDispatcher(repos.AuditRepo, repos.AuditRepo, audit.Options{
		QueueSize:   cfg.AuditQueueSize,
		Workers:     cfg.AuditWorkers,
		MaxAttempts: cfg.AuditMaxAttempts,
		RetryBase:   cfg.AuditRetryBase,
	}, logger.With(slog.String("component", "audit")))
	dispatcher.Start()
	go redriveDeadLetters(ctx, dispatcher, logger)

	serviceContainer := services.NewServiceContainer(repos, posting.NewPgxStore(dbPool), ruleBook, ofx.NewParser(), dispatcher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	// Requests are done; flush what they emitted.
	if err := dispatcher.Close(shutdownCtx); err != nil {
		logger.Error("Audit dispatcher did not drain", slog.String("error", err.Error()))
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func runMigrations(logger *slog.Logger, cfg *config.Config) error {
	logger.Info("Running database migrations...")
	migrationDB, err := database.OpenMigrationDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// redriveDeadLetters periodically retries abandoned audit events until ctx ends.
func redriveDeadLetters(ctx context.Context, dispatcher *audit.Dispatcher, logger *slog.Logger) {
	ticker := time.NewTicker(redriveInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := dispatcher.Redrive(ctx, redriveBatch)
			if err != nil {
				logger.Warn("Audit redrive failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				logger.Info("Audit dead letters redelivered", slog.Int("count", n))
			}
		}
	}
}
