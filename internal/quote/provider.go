// Package quote looks up current stock prices from an external price service.
package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the price service does not know the symbol.
// Any other error from a Provider means the service could not be reached
// or returned something unusable.
var ErrNotFound = errors.New("symbol not found")

// Quote is a single price observation.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Provider fetches the current quote for a ticker symbol.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// NormalizeSymbol trims and upper-cases a user-entered ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewHTTPClient returns a client whose requests give up after timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// New returns the provider named by kind ("iex" or "yahoo"). An empty
// baseURL selects the provider's public endpoint.
func New(kind string, httpClient *http.Client, baseURL, apiKey string, timeout time.Duration) (Provider, error) {
	switch kind {
	case "iex":
		return NewIEXProvider(httpClient, baseURL, apiKey, timeout), nil
	case "yahoo":
		return NewYahooProvider(httpClient, baseURL, timeout), nil
	default:
		return nil, fmt.Errorf("unknown quote provider %q", kind)
	}
}
