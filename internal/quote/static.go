package quote

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
)

// StaticProvider serves quotes from an in-memory table. It backs tests and
// offline demos; Fail makes every lookup return the given error.
type StaticProvider struct {
	mu     sync.RWMutex
	quotes map[string]Quote
	err    error
	calls  int
}

// NewStaticProvider creates a provider that knows the given prices.
func NewStaticProvider(prices map[string]string) *StaticProvider {
	p := &StaticProvider{quotes: make(map[string]Quote, len(prices))}
	for symbol, price := range prices {
		p.Set(symbol, price)
	}
	return p
}

// Set adds or replaces the price for symbol.
func (p *StaticProvider) Set(symbol, price string) {
	symbol = NormalizeSymbol(symbol)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[symbol] = Quote{
		Symbol: symbol,
		Name:   symbol + " Inc.",
		Price:  decimal.RequireFromString(price),
	}
}

// Fail makes subsequent lookups return err; nil restores normal behaviour.
func (p *StaticProvider) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Calls reports how many lookups have been made.
func (p *StaticProvider) Calls() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.calls
}

// Lookup returns the configured quote or ErrNotFound.
func (p *StaticProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	q, ok := p.quotes[NormalizeSymbol(symbol)]
	if !ok {
		return nil, ErrNotFound
	}
	return &q, nil
}
