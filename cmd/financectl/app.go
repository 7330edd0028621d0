package main

import (
	"errors"
	"fmt"

	"finance/internal/config"
	"finance/internal/database"
	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/quote"
	"finance/internal/services"

	"gorm.io/gorm"
)

// app bundles the services a subcommand needs.
type app struct {
	db        *database.Manager
	users     services.UserServicer
	quotes    services.QuoteServicer
	portfolio services.PortfolioServicer
	ledger    services.LedgerServicer
	audit     services.AuditServicer
}

// openApp loads configuration, opens the database and applies migrations.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	dbConfig, err := database.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, err
	}
	if err := manager.RunMigrations(); err != nil {
		_ = manager.Close()
		return nil, err
	}

	provider, err := quote.New(cfg.QuoteProvider, quote.NewHTTPClient(cfg.QuoteTimeout), cfg.QuoteBaseURL, cfg.APIKey, cfg.QuoteTimeout)
	if err != nil {
		_ = manager.Close()
		return nil, err
	}

	db := manager.DB()
	users := services.NewUserService(db, cfg.SeedCash)
	quotes := services.NewQuoteService(provider)
	return &app{
		db:        manager,
		users:     users,
		quotes:    quotes,
		portfolio: services.NewPortfolioService(db, users, quotes),
		ledger:    services.NewLedgerService(db),
		audit:     services.NewAuditService(db),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// lookupUser resolves a username to its account.
func lookupUser(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
