package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/gitala/gitala_branch/internal/core/services"
	"github.com/gitala/gitala_branch/internal/handlers"
	"github.com/gitala/gitala_branch/internal/middleware"
	"github.com/gitala/gitala_branch/internal/platform/config"
	"github.com/gitala/gitala_branch/internal/platform/notify"
	"github.com/gitala/gitala_branch/internal/platform/sms"
	"github.com/gitala/gitala_branch/internal/repositories/database/pgsql"
	"github.com/gitala/gitala_branch/internal/repositories/localstore"
	"github.com/gitala/gitala_branch/pkg/database"

	portsrepo "github.com/gitala/gitala_branch/internal/core/ports/repositories"
)

// @title Gitala Branch API
// @version 1.0
// @description Loan management backend for the Gitala branch.

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

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize record store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	gateway := sms.NewEgoSMSGateway(cfg.SMSAPIURL, cfg.SMSUsername, cfg.SMSPassword, cfg.SMSSenderID)
	feed := notify.NewFeed(logger, 100)

	container := services.NewServiceContainer(cfg, repos, gateway, feed)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, feed)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories selects the record-store backend: the JSON file store
// for offline single-machine use, or PostgreSQL for the hosted deployment.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.UseLocalStore {
		store, err := localstore.NewStore(cfg.LocalStoreDir)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using local file record store", slog.String("dir", cfg.LocalStoreDir))
		return localstore.NewRepositoryProvider(store), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		database.ClosePgxPool(dbPool)
		return portsrepo.RepositoryProvider{}, nil, err
	}

	cleanup := func() { database.ClosePgxPool(dbPool) }
	return pgsql.NewRepositoryProvider(dbPool), cleanup, nil
}

// runMigrations applies pending up migrations through a short-lived
// database/sql connection.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
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

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}
