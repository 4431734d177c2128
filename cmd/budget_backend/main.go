package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/SscSPs/budget_tracker_app/cmd/docs"
	portsrepo "github.com/SscSPs/budget_tracker_app/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker_app/internal/core/services"
	"github.com/SscSPs/budget_tracker_app/internal/handlers"
	"github.com/SscSPs/budget_tracker_app/internal/middleware"
	"github.com/SscSPs/budget_tracker_app/internal/platform/config"
	"github.com/SscSPs/budget_tracker_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/budget_tracker_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/budget_tracker_app/internal/repositories/memory"
	"github.com/SscSPs/budget_tracker_app/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title Budget Tracker API
// @version 1.0
// @description Personal finance tracker: income and expense transactions with filtering and statistics.

// @host localhost:2000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	repos, err := newRepositoryProvider(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize transaction store",
			slog.String("driver", cfg.StoreDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repos.Close()
	logger.Info("Transaction store ready", slog.String("driver", cfg.StoreDriver))

	serviceContainer, closeServices := services.NewServiceContainer(cfg, repos)
	defer closeServices()

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register request validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rateLimiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to initialize rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), middleware.CORS(cfg.ClientURL))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("version", handlers.Version))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newRepositoryProvider opens the store selected by cfg.StoreDriver, applying migrations when enabled.
func newRepositoryProvider(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		if cfg.RunMigrations {
			if err := database.RunPostgresMigrations(cfg.DatabaseURL); err != nil {
				return portsrepo.RepositoryProvider{}, err
			}
		}
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(dbPool), nil

	case config.StoreDriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		if cfg.RunMigrations {
			if err := database.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
				db.Close()
				return portsrepo.RepositoryProvider{}, err
			}
		}
		return sqlite.NewRepositoryProvider(db), nil

	case config.StoreDriverMemory:
		return memory.NewRepositoryProvider(), nil

	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
