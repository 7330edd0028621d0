package main

import (
	"context"
	"fmt"
	"os"

	"finance/internal/config"
	"finance/internal/database"
	"finance/internal/logger"
	"finance/internal/middleware"
	"finance/internal/quote"
	"finance/internal/routes"
	"finance/internal/session"
)

// @title           Finance API
// @version         1.0
// @description     Paper trading against live stock quotes: look up prices, buy and sell shares with virtual cash, and review the ledger.

// @host      localhost:8080
// @BasePath  /api

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() { _ = dbManager.Close() }()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Session store
	var store session.Store
	if appConfig.RedisAddr != "" {
		rdb, err := session.DialRedis(context.Background(), appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = rdb.Close() }()
		store = session.NewRedisStore(rdb)
		log.Infof("Using redis session store at %s", appConfig.RedisAddr)
	} else {
		store = session.NewMemoryStore()
		log.Info("Using in-memory session store")
	}
	sessions := middleware.NewSessionManager(store, session.NewCodec(appConfig.SessionSecret), appConfig.SessionTTL, appConfig.SessionCookieSecure)

	// Price oracle
	provider, err := quote.New(appConfig.QuoteProvider, quote.NewHTTPClient(appConfig.QuoteTimeout), appConfig.QuoteBaseURL, appConfig.APIKey, appConfig.QuoteTimeout)
	if err != nil {
		return err
	}
	log.Infow("Using quote provider", "provider", appConfig.QuoteProvider)

	router := routes.New(routes.Deps{
		DB:       dbManager.DB(),
		Quotes:   provider,
		SeedCash: appConfig.SeedCash,
		Sessions: sessions,
	})

	log.Infof("Starting finance server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
