package services

import (
	"context"
	"time"

	"finance/internal/models"
	"finance/internal/pagination"
	"finance/internal/quote"

	"github.com/shopspring/decimal"
)

// UserServicer defines the contract for registration and credential checks.
type UserServicer interface {
	Register(username, password, confirmation string) (*models.User, error)
	Authenticate(username, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	ChangePassword(userID, current, password, confirmation string) error
}

// QuoteServicer defines the contract for symbol lookups.
type QuoteServicer interface {
	Quote(ctx context.Context, symbol string) (*quote.Quote, error)
}

// Holding is a symbol the user currently owns, derived from the ledger.
type Holding struct {
	Symbol string `json:"symbol"`
	Shares int64  `json:"shares"`
}

// PricedHolding is a holding valued at the latest quote.
type PricedHolding struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}

// Portfolio is the user's cash plus every holding at current prices.
type Portfolio struct {
	Cash     decimal.Decimal `json:"cash"`
	Holdings []PricedHolding `json:"holdings"`
	Total    decimal.Decimal `json:"total"`
}

// PortfolioServicer defines the contract for portfolio views.
type PortfolioServicer interface {
	CurrentHoldings(userID string) ([]Holding, error)
	AccountValue(ctx context.Context, userID string) (*Portfolio, error)
}

// TradeResult is the outcome of a committed trade.
type TradeResult struct {
	Transaction *models.Transaction `json:"transaction"`
	Cash        decimal.Decimal     `json:"cash"`
}

// TradeServicer defines the contract for market buy and sell orders. Shares
// are passed as entered so that parsing failures surface as INVALID_SHARES.
type TradeServicer interface {
	Buy(ctx context.Context, userID, symbol, shares string) (*TradeResult, error)
	Sell(ctx context.Context, userID, symbol, shares string) (*TradeResult, error)
}

// HistoryEntry is one ledger row prepared for display.
type HistoryEntry struct {
	ID        string           `json:"id"`
	Symbol    string           `json:"symbol"`
	Kind      models.TradeKind `json:"kind"`
	Shares    int64            `json:"shares"`
	Price     decimal.Decimal  `json:"price"`
	Total     decimal.Decimal  `json:"total"`
	Timestamp time.Time        `json:"timestamp"`
}

// LedgerServicer defines the contract for reading the transaction ledger.
type LedgerServicer interface {
	History(userID string) ([]HistoryEntry, error)
	HistoryPage(userID string, page pagination.PageRequest) (*pagination.PageResponse[HistoryEntry], error)
	SellableSymbols(userID string) ([]string, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
	Recent(userID string, limit int) ([]models.AuditLog, error)
}
