package services

import (
	"context"

	apperrors "finance/internal/errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// portfolioService derives holdings from the ledger and values them.
type portfolioService struct {
	db     *gorm.DB
	users  UserServicer
	quotes QuoteServicer
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB, users UserServicer, quotes QuoteServicer) PortfolioServicer {
	return &portfolioService{db: db, users: users, quotes: quotes}
}

// CurrentHoldings returns open positions ordered by symbol.
func (s *portfolioService) CurrentHoldings(userID string) ([]Holding, error) {
	holdings, err := holdingsQuery(s.db, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holdings, nil
}

// AccountValue prices every holding. A single failed quote fails the whole
// valuation; there is no partial pricing.
func (s *portfolioService) AccountValue(ctx context.Context, userID string) (*Portfolio, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.CurrentHoldings(userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Cash:     user.Cash,
		Holdings: make([]PricedHolding, 0, len(holdings)),
		Total:    user.Cash,
	}
	for _, h := range holdings {
		q, err := s.quotes.Quote(ctx, h.Symbol)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
		}
		value := q.Price.Mul(decimal.NewFromInt(h.Shares))
		portfolio.Holdings = append(portfolio.Holdings, PricedHolding{
			Symbol: h.Symbol,
			Name:   q.Name,
			Shares: h.Shares,
			Price:  q.Price,
			Value:  value,
		})
		portfolio.Total = portfolio.Total.Add(value)
	}

	return portfolio, nil
}
