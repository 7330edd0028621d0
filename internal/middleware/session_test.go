package middleware

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance/internal/session"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestManager() (*SessionManager, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return NewSessionManager(store, session.NewCodec("test-secret"), time.Hour, false), store
}

// newSessionRouter wires login, logout and a protected page and API route.
func newSessionRouter(m *SessionManager) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New(ApologyTemplate).Parse("{{.Status}} {{.Message}}")))
	r.Use(m.Middleware())

	r.POST("/login", func(c *gin.Context) {
		if err := m.Start(c, c.PostForm("user")); err != nil {
			WriteError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/logout", func(c *gin.Context) {
		m.End(c)
		c.Status(http.StatusNoContent)
	})

	authed := r.Group("/", RequireUser())
	authed.GET("/", func(c *gin.Context) {
		id, _ := UserID(c)
		c.String(http.StatusOK, id)
	})
	authed.GET("/api/v1/portfolio", func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user": id})
	})
	return r
}

// sessionCookie returns the last session cookie set by the response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookieName {
			found = c
		}
	}
	return found
}

func do(r http.Handler, method, path string, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireUser_Anonymous(t *testing.T) {
	m, _ := newTestManager()
	r := newSessionRouter(m)

	t.Run("page_redirects_to_login", func(t *testing.T) {
		w := do(r, http.MethodGet, "/", nil, "")
		if w.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Errorf("expected redirect to /login, got %q", loc)
		}
	})

	t.Run("api_returns_401", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/portfolio", nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `"UNAUTHORIZED"`) {
			t.Errorf("expected UNAUTHORIZED code, got %s", w.Body.String())
		}
	})

	t.Run("garbage_cookie_is_cleared", func(t *testing.T) {
		w := do(r, http.MethodGet, "/", &http.Cookie{Name: SessionCookieName, Value: "junk"}, "")
		if w.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d", w.Code)
		}
		if c := sessionCookie(t, w); c == nil || c.MaxAge >= 0 {
			t.Errorf("expected cookie to be cleared, got %+v", c)
		}
	})
}

func TestSessionLifecycle(t *testing.T) {
	m, store := newTestManager()
	r := newSessionRouter(m)

	w := do(r, http.MethodPost, "/login", nil, "user=user-42")
	if w.Code != http.StatusNoContent {
		t.Fatalf("login: expected 204, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("expected session cookie")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}

	w = do(r, http.MethodGet, "/", cookie, "")
	if w.Code != http.StatusOK || w.Body.String() != "user-42" {
		t.Fatalf("expected user-42, got %d %q", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/logout", cookie, "")
	if c := sessionCookie(t, w); c == nil || c.MaxAge >= 0 {
		t.Error("expected logout to clear the cookie")
	}

	// the old token no longer resolves once the server-side session is gone
	w = do(r, http.MethodGet, "/", cookie, "")
	if w.Code != http.StatusFound {
		t.Errorf("expected redirect after logout, got %d", w.Code)
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, err := store.Get(t.Context(), id); err == nil {
		t.Error("expected session destroyed in store")
	}
}

func TestSessionStart_ReplacesExisting(t *testing.T) {
	m, store := newTestManager()
	r := newSessionRouter(m)

	first := sessionCookie(t, do(r, http.MethodPost, "/login", nil, "user=alice"))
	second := sessionCookie(t, do(r, http.MethodPost, "/login", first, "user=bob"))
	if second == nil || second.Value == first.Value {
		t.Fatal("expected a fresh session cookie")
	}

	oldID, _ := m.codec.Decode(first.Value)
	if _, err := store.Get(t.Context(), oldID); err == nil {
		t.Error("previous session should be destroyed on new login")
	}

	w := do(r, http.MethodGet, "/", second, "")
	if w.Body.String() != "bob" {
		t.Errorf("expected bob, got %q", w.Body.String())
	}
}
