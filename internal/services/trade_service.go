package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	apperrors "finance/internal/errors"
	"finance/internal/models"
	"finance/internal/quote"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// tradeService executes market orders against the user's cash and ledger.
type tradeService struct {
	db     *gorm.DB
	quotes QuoteServicer
}

// NewTradeService creates a new TradeServicer.
func NewTradeService(db *gorm.DB, quotes QuoteServicer) TradeServicer {
	return &tradeService{db: db, quotes: quotes}
}

// ParseShares accepts only a positive base-10 integer.
func ParseShares(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return 0, apperrors.ErrInvalidShares
	}
	return n, nil
}

// prepare validates the order and prices it. The oracle is consulted before
// any database transaction is opened so no lock is held across network I/O.
func (s *tradeService) prepare(ctx context.Context, symbol, rawShares string) (*quote.Quote, int64, error) {
	q, err := s.quotes.Quote(ctx, symbol)
	if err != nil {
		return nil, 0, err
	}
	shares, err := ParseShares(rawShares)
	if err != nil {
		return nil, 0, err
	}
	return q, shares, nil
}

// Buy purchases shares at the current price.
func (s *tradeService) Buy(ctx context.Context, userID, symbol, rawShares string) (*TradeResult, error) {
	q, shares, err := s.prepare(ctx, symbol, rawShares)
	if err != nil {
		return nil, err
	}
	cost := q.Price.Mul(decimal.NewFromInt(shares))

	var result *TradeResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}
		if user.Cash.LessThan(cost) {
			return apperrors.ErrInsufficientFunds
		}

		entry, err := commitTrade(tx, user, user.Cash.Sub(cost), q, shares)
		if err != nil {
			return err
		}
		result = &TradeResult{Transaction: entry, Cash: user.Cash}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return result, nil
}

// Sell disposes of shares at the current price.
func (s *tradeService) Sell(ctx context.Context, userID, symbol, rawShares string) (*TradeResult, error) {
	q, shares, err := s.prepare(ctx, symbol, rawShares)
	if err != nil {
		return nil, err
	}
	proceeds := q.Price.Mul(decimal.NewFromInt(shares))

	var result *TradeResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, userID)
		if err != nil {
			return err
		}

		held, err := netShares(tx, userID, q.Symbol)
		if err != nil {
			return err
		}
		if shares > held {
			return apperrors.ErrInsufficientShares
		}

		entry, err := commitTrade(tx, user, user.Cash.Add(proceeds), q, -shares)
		if err != nil {
			return err
		}
		result = &TradeResult{Transaction: entry, Cash: user.Cash}
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}
	return result, nil
}

// lockUser loads the user row with FOR UPDATE so concurrent trades by the
// same user serialise. SQLite ignores the clause; its single connection
// already serialises transactions.
func lockUser(tx *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// commitTrade writes the new cash balance and the ledger entry. It must run
// inside the transaction holding the user lock.
func commitTrade(tx *gorm.DB, user *models.User, cash decimal.Decimal, q *quote.Quote, signedShares int64) (*models.Transaction, error) {
	if cash.IsNegative() {
		return nil, apperrors.ErrInsufficientFunds
	}
	if err := tx.Model(user).Update("cash", cash).Error; err != nil {
		return nil, err
	}
	user.Cash = cash

	entry := &models.Transaction{
		UserID: user.ID,
		Symbol: q.Symbol,
		Shares: signedShares,
		Price:  q.Price,
	}
	if err := tx.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}
