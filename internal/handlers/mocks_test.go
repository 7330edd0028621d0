package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance/internal/middleware"
	"finance/internal/models"
	"finance/internal/pagination"
	"finance/internal/quote"
	"finance/internal/services"
	"finance/internal/session"
	"finance/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// --- mock services ---

type mockUserService struct {
	registerFn       func(username, password, confirmation string) (*models.User, error)
	authenticateFn   func(username, password string) (*models.User, error)
	getUserByIDFn    func(id string) (*models.User, error)
	changePasswordFn func(userID, current, password, confirmation string) error
}

func (m *mockUserService) Register(username, password, confirmation string) (*models.User, error) {
	if m.registerFn != nil {
		return m.registerFn(username, password, confirmation)
	}
	return &models.User{Base: models.Base{ID: "user-1"}, Username: username}, nil
}

func (m *mockUserService) Authenticate(username, password string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(username, password)
	}
	return &models.User{Base: models.Base{ID: "user-1"}, Username: username}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) ChangePassword(userID, current, password, confirmation string) error {
	if m.changePasswordFn != nil {
		return m.changePasswordFn(userID, current, password, confirmation)
	}
	return nil
}

type mockQuoteService struct {
	quoteFn func(ctx context.Context, symbol string) (*quote.Quote, error)
}

func (m *mockQuoteService) Quote(ctx context.Context, symbol string) (*quote.Quote, error) {
	if m.quoteFn != nil {
		return m.quoteFn(ctx, symbol)
	}
	return &quote.Quote{Symbol: symbol, Name: symbol + " Inc.", Price: decimal.NewFromInt(50)}, nil
}

type mockPortfolioService struct {
	currentHoldingsFn func(userID string) ([]services.Holding, error)
	accountValueFn    func(ctx context.Context, userID string) (*services.Portfolio, error)
}

func (m *mockPortfolioService) CurrentHoldings(userID string) ([]services.Holding, error) {
	if m.currentHoldingsFn != nil {
		return m.currentHoldingsFn(userID)
	}
	return []services.Holding{}, nil
}

func (m *mockPortfolioService) AccountValue(ctx context.Context, userID string) (*services.Portfolio, error) {
	if m.accountValueFn != nil {
		return m.accountValueFn(ctx, userID)
	}
	return &services.Portfolio{Cash: decimal.NewFromInt(10000), Holdings: []services.PricedHolding{}, Total: decimal.NewFromInt(10000)}, nil
}

type mockTradeService struct {
	buyFn  func(ctx context.Context, userID, symbol, shares string) (*services.TradeResult, error)
	sellFn func(ctx context.Context, userID, symbol, shares string) (*services.TradeResult, error)
}

func (m *mockTradeService) Buy(ctx context.Context, userID, symbol, shares string) (*services.TradeResult, error) {
	if m.buyFn != nil {
		return m.buyFn(ctx, userID, symbol, shares)
	}
	return okTrade(symbol, 1), nil
}

func (m *mockTradeService) Sell(ctx context.Context, userID, symbol, shares string) (*services.TradeResult, error) {
	if m.sellFn != nil {
		return m.sellFn(ctx, userID, symbol, shares)
	}
	return okTrade(symbol, -1), nil
}

type mockLedgerService struct {
	historyFn         func(userID string) ([]services.HistoryEntry, error)
	historyPageFn     func(userID string, page pagination.PageRequest) (*pagination.PageResponse[services.HistoryEntry], error)
	sellableSymbolsFn func(userID string) ([]string, error)
}

func (m *mockLedgerService) History(userID string) ([]services.HistoryEntry, error) {
	if m.historyFn != nil {
		return m.historyFn(userID)
	}
	return []services.HistoryEntry{}, nil
}

func (m *mockLedgerService) HistoryPage(userID string, page pagination.PageRequest) (*pagination.PageResponse[services.HistoryEntry], error) {
	if m.historyPageFn != nil {
		return m.historyPageFn(userID, page)
	}
	resp := pagination.NewPageResponse([]services.HistoryEntry{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockLedgerService) SellableSymbols(userID string) ([]string, error) {
	if m.sellableSymbolsFn != nil {
		return m.sellableSymbolsFn(userID)
	}
	return []string{}, nil
}

type auditEntry struct {
	userID, action string
}

type mockAuditService struct {
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, _, _, _ string, _ map[string]interface{}) {
	m.entries = append(m.entries, auditEntry{userID: userID, action: action})
}

func (m *mockAuditService) Recent(string, int) ([]models.AuditLog, error) {
	return []models.AuditLog{}, nil
}

// verify interface compliance
var (
	_ services.UserServicer      = (*mockUserService)(nil)
	_ services.QuoteServicer     = (*mockQuoteService)(nil)
	_ services.PortfolioServicer = (*mockPortfolioService)(nil)
	_ services.TradeServicer     = (*mockTradeService)(nil)
	_ services.LedgerServicer    = (*mockLedgerService)(nil)
	_ services.AuditServicer     = (*mockAuditService)(nil)
)

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
}

func okTrade(symbol string, shares int64) *services.TradeResult {
	return &services.TradeResult{
		Transaction: &models.Transaction{ID: "tx-1", Symbol: symbol, Shares: shares, Price: decimal.NewFromInt(50)},
		Cash:        decimal.NewFromInt(9950),
	}
}

func newTestSessions() *middleware.SessionManager {
	return middleware.NewSessionManager(session.NewMemoryStore(), session.NewCodec("test"), time.Hour, false)
}

// newTestRouter returns an engine with the real page templates loaded.
func newTestRouter() *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	return r
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func doForm(r *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %q, got %q", location, got)
	}
}

func newGet(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}
