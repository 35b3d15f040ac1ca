package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/cod_ledger/internal/adapters/directory"
	portsrepo "github.com/SscSPs/cod_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cod_ledger/internal/core/services"
	"github.com/SscSPs/cod_ledger/internal/handlers"
	"github.com/SscSPs/cod_ledger/internal/middleware"
	"github.com/SscSPs/cod_ledger/internal/platform/config"
	"github.com/SscSPs/cod_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/cod_ledger/internal/repositories/memory"
	"github.com/SscSPs/cod_ledger/internal/utils"
	"github.com/SscSPs/cod_ledger/pkg/database"
	"github.com/gin-gonic/gin"
)

// @title COD Ledger API
// @version 1.0
// @description Cash-on-delivery collection, deposit and remittance reconciliation.

// @host localhost:8080
// @BasePath /api/v1

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

	var repos portsrepo.RepositoryProvider
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repos = memory.NewRepositoryProvider(memory.NewStore())
	default:
		dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)
		logger.Info("Database connection pool established.")

		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos = pgsql.NewRepositoryProvider(dbPool)
	}
	repos.Parties = directory.NewCachedPartyDirectory(repos.Parties, cfg.DirectoryCacheSize, cfg.DirectoryCacheTTL)

	serviceContainer := services.NewServiceContainer(cfg, repos)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
