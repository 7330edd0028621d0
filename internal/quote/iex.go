package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const defaultIEXBaseURL = "https://cloud.iexapis.com/stable"

// iexQuoteResponse is the subset of the IEX Cloud quote payload we use.
type iexQuoteResponse struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// IEXProvider fetches quotes from an IEX-Cloud-compatible REST endpoint.
type IEXProvider struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	timeout    time.Duration
}

// NewIEXProvider creates a provider. An empty baseURL selects IEX Cloud.
// timeout bounds every lookup even when the caller's context has no deadline.
func NewIEXProvider(httpClient *http.Client, baseURL, apiKey string, timeout time.Duration) *IEXProvider {
	if baseURL == "" {
		baseURL = defaultIEXBaseURL
	}
	return &IEXProvider{httpClient: httpClient, baseURL: baseURL, apiKey: apiKey, timeout: timeout}
}

// Lookup fetches the latest price for symbol.
func (p *IEXProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrNotFound
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	addr := fmt.Sprintf("%s/stock/%s/quote?token=%s",
		p.baseURL, url.PathEscape(symbol), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body iexQuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if body.Symbol == "" || !body.LatestPrice.IsPositive() {
		return nil, ErrNotFound
	}

	return &Quote{
		Symbol: NormalizeSymbol(body.Symbol),
		Name:   body.CompanyName,
		Price:  body.LatestPrice,
	}, nil
}
