package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance/internal/logger"
	"finance/internal/middleware"
	"finance/internal/quote"
	"finance/internal/routes"
	"finance/internal/session"
	"finance/internal/testutil"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
	Quotes *quote.StaticProvider
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test", "")
}

// setupApp creates a full application stack backed by an isolated in-memory
// SQLite database and a static price table.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	quotes := quote.NewStaticProvider(map[string]string{"AAA": "50.00"})
	sessions := middleware.NewSessionManager(session.NewMemoryStore(), session.NewCodec("integration"), time.Hour, false)

	router := routes.New(routes.Deps{
		DB:       db,
		Quotes:   quotes,
		SeedCash: decimal.NewFromInt(10000),
		Sessions: sessions,
	})
	return &testApp{DB: db, Router: router, Quotes: quotes}
}

// browser replays cookies between requests like a user agent would.
type browser struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (app *testApp) browser() *browser {
	return &browser{app: app, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.app.Router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *browser) hasSession() bool {
	_, ok := b.cookies[middleware.SessionCookieName]
	return ok
}

// register signs up a user through the register page, which also logs in.
func (b *browser) register(t *testing.T, username, password string) {
	t.Helper()
	rec := b.post("/register", url.Values{
		"username":     {username},
		"password":     {password},
		"confirmation": {password},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
}

func (b *browser) trade(t *testing.T, path, symbol string, shares int) {
	t.Helper()
	rec := b.post(path, url.Values{"symbol": {symbol}, "shares": {fmt.Sprint(shares)}})
	if rec.Code != http.StatusFound {
		t.Fatalf("%s %s x%d failed: %d %s", path, symbol, shares, rec.Code, rec.Body.String())
	}
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	errObj, ok := parseJSON(t, rec)["error"].(map[string]interface{})
	if !ok || errObj["code"] != code {
		t.Errorf("expected error code %s, got %s", code, rec.Body.String())
	}
}

// jsonDecimal reads a decimal string field from a JSON object.
func jsonDecimal(t *testing.T, obj map[string]interface{}, key string) decimal.Decimal {
	t.Helper()
	raw, ok := obj[key].(string)
	if !ok {
		t.Fatalf("expected string field %q in %v", key, obj)
	}
	return decimal.RequireFromString(raw)
}
