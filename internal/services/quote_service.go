package services

import (
	"context"
	"errors"

	apperrors "finance/internal/errors"
	"finance/internal/logger"
	"finance/internal/quote"
	"finance/internal/validator"
)

// quoteService turns price oracle answers into application errors.
type quoteService struct {
	provider quote.Provider
}

// NewQuoteService creates a new QuoteServicer.
func NewQuoteService(provider quote.Provider) QuoteServicer {
	return &quoteService{provider: provider}
}

// Quote looks up symbol. Unknown or malformed symbols are INVALID_SYMBOL;
// any other oracle failure is QUOTE_UNAVAILABLE.
func (s *quoteService) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	symbol = quote.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidSymbol, "Must provide symbol")
	}
	if !validator.IsTicker(symbol) {
		return nil, apperrors.ErrInvalidSymbol
	}

	q, err := s.provider.Lookup(ctx, symbol)
	if errors.Is(err, quote.ErrNotFound) {
		return nil, apperrors.ErrInvalidSymbol
	}
	if err != nil {
		logger.Get().Warnw("quote lookup failed", "symbol", symbol, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrQuoteUnavailable, err)
	}
	return q, nil
}
