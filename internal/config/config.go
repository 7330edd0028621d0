package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Price oracle
	QuoteProvider string
	APIKey        string
	QuoteBaseURL  string
	QuoteTimeout  time.Duration

	// Accounts
	SeedCash decimal.Decimal

	// Sessions
	SessionSecret       string
	SessionTTL          time.Duration
	SessionCookieSecure bool

	// Redis session store; empty RedisAddr selects the in-memory store
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

var appConfig *Config

// Load loads configuration from environment variables. It fails when
// API_KEY is missing, since no page can be served without quotes.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		QuoteProvider: getEnv("QUOTE_PROVIDER", "iex"),
		APIKey:        os.Getenv("API_KEY"),
		QuoteBaseURL:  getEnv("QUOTE_BASE_URL", ""),

		SessionSecret: getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}

	if config.APIKey == "" {
		return nil, fmt.Errorf("API_KEY not set")
	}
	switch config.QuoteProvider {
	case "iex", "yahoo":
	default:
		return nil, fmt.Errorf("unsupported QUOTE_PROVIDER %q (use iex or yahoo)", config.QuoteProvider)
	}

	var err error
	if config.QuoteTimeout, err = parseDuration("QUOTE_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if config.SessionTTL, err = parseDuration("SESSION_TTL", "24h"); err != nil {
		return nil, err
	}

	config.SeedCash, err = decimal.NewFromString(getEnv("SEED_CASH", "10000.00"))
	if err != nil || config.SeedCash.IsNegative() {
		return nil, fmt.Errorf("invalid SEED_CASH value %q", os.Getenv("SEED_CASH"))
	}

	if config.SessionCookieSecure, err = strconv.ParseBool(getEnv("SESSION_COOKIE_SECURE", "false")); err != nil {
		return nil, fmt.Errorf("invalid SESSION_COOKIE_SECURE value: %w", err)
	}
	if config.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
