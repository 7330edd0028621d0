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

const (
	defaultYahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA             = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the subset of the v8 chart payload we use.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string          `json:"symbol"`
				Currency           string          `json:"currency"`
				LongName           string          `json:"longName"`
				ShortName          string          `json:"shortName"`
				RegularMarketPrice decimal.Decimal `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches quotes from the Yahoo Finance chart endpoint. It
// needs no API key and only accepts USD listings.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewYahooProvider creates a provider. An empty baseURL selects Yahoo Finance.
func NewYahooProvider(httpClient *http.Client, baseURL string, timeout time.Duration) *YahooProvider {
	if baseURL == "" {
		baseURL = defaultYahooBaseURL
	}
	return &YahooProvider{httpClient: httpClient, baseURL: baseURL, timeout: timeout}
}

// Lookup fetches the latest regular-market price for symbol.
func (p *YahooProvider) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrNotFound
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	addr := p.baseURL + "/" + url.PathEscape(symbol) + "?interval=1d&range=1d"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Unknown tickers come back as 404 with a chart error body.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if body.Chart.Error != nil || len(body.Chart.Result) == 0 {
		return nil, ErrNotFound
	}

	meta := body.Chart.Result[0].Meta
	if meta.Currency != "" && meta.Currency != "USD" {
		return nil, ErrNotFound
	}
	if !meta.RegularMarketPrice.IsPositive() {
		return nil, ErrNotFound
	}

	name := meta.LongName
	if name == "" {
		name = meta.ShortName
	}
	if name == "" {
		name = NormalizeSymbol(meta.Symbol)
	}

	return &Quote{
		Symbol: NormalizeSymbol(meta.Symbol),
		Name:   name,
		Price:  meta.RegularMarketPrice,
	}, nil
}
