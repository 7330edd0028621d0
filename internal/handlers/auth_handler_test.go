package handlers

import (
	"net/http"
	"strings"
	"testing"

	apperrors "finance/internal/errors"
	"finance/internal/middleware"
	"finance/internal/models"
	"finance/internal/services"

	"github.com/gin-gonic/gin"
)

func setupAuthRouter(handler *AuthHandler, sessions *middleware.SessionManager) *gin.Engine {
	r := newTestRouter()
	r.Use(sessions.Middleware())
	r.GET("/login", handler.LoginForm)
	r.POST("/login", handler.Login)
	r.GET("/register", handler.RegisterForm)
	r.POST("/register", handler.Register)
	r.GET("/logout", handler.Logout)
	authed := r.Group("/", middleware.RequireUser())
	authed.GET("/password", handler.PasswordForm)
	authed.POST("/password", handler.ChangePassword)
	return r
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success sets session cookie and redirects home", func(t *testing.T) {
		audit := &mockAuditService{}
		sessions := newTestSessions()
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, sessions, audit), sessions)

		rec := doForm(r, "/login", "username=alice&password=pw")

		assertRedirect(t, rec, "/")
		if c := findCookie(rec, middleware.SessionCookieName); c == nil || c.Value == "" {
			t.Error("expected session cookie")
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditActionLogin {
			t.Errorf("expected login audit entry, got %v", audit.entries)
		}
	})

	t.Run("wrong password renders 403 without a session", func(t *testing.T) {
		users := &mockUserService{
			authenticateFn: func(_, _ string) (*models.User, error) {
				return nil, apperrors.ErrInvalidCredentials
			},
		}
		sessions := newTestSessions()
		r := setupAuthRouter(NewAuthHandler(users, sessions, &mockAuditService{}), sessions)

		rec := doForm(r, "/login", "username=alice&password=wrong")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Invalid username and/or password") {
			t.Errorf("expected apology message, got %s", rec.Body.String())
		}
		if c := findCookie(rec, middleware.SessionCookieName); c != nil && c.Value != "" {
			t.Error("no session cookie should be issued")
		}
	})

	t.Run("login form clears an existing session", func(t *testing.T) {
		sessions := newTestSessions()
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}, sessions, &mockAuditService{}), sessions)

		cookie := findCookie(doForm(r, "/login", "username=alice&password=pw"), middleware.SessionCookieName)

		req := newGet("/login", cookie)
		rec := serve(r, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if c := findCookie(rec, middleware.SessionCookieName); c == nil || c.MaxAge >= 0 {
			t.Error("expected session cookie to be cleared")
		}

		rec = serve(r, newGet("/password", cookie))
		assertRedirect(t, rec, "/login")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("success logs in and flashes", func(t *testing.T) {
		var got [3]string
		users := &mockUserService{
			registerFn: func(username, password, confirmation string) (*models.User, error) {
				got = [3]string{username, password, confirmation}
				return &models.User{Base: models.Base{ID: "user-7"}, Username: username}, nil
			},
		}
		audit := &mockAuditService{}
		sessions := newTestSessions()
		r := setupAuthRouter(NewAuthHandler(users, sessions, audit), sessions)

		rec := doForm(r, "/register", "username=bob&password=pw&confirmation=pw")

		assertRedirect(t, rec, "/")
		if got != [3]string{"bob", "pw", "pw"} {
			t.Errorf("unexpected form values: %v", got)
		}
		if findCookie(rec, middleware.SessionCookieName) == nil {
			t.Error("expected session cookie")
		}
		if findCookie(rec, "finance_flash") == nil {
			t.Error("expected flash cookie")
		}
		if len(audit.entries) != 1 || audit.entries[0] != (auditEntry{"user-7", services.AuditActionRegister}) {
			t.Errorf("unexpected audit entries: %v", audit.entries)
		}
	})

	t.Run("duplicate username renders 409", func(t *testing.T) {
		users := &mockUserService{
			registerFn: func(_, _, _ string) (*models.User, error) {
				return nil, apperrors.ErrDuplicateUsername
			},
		}
		sessions := newTestSessions()
		r := setupAuthRouter(NewAuthHandler(users, sessions, &mockAuditService{}), sessions)

		rec := doForm(r, "/register", "username=bob&password=pw&confirmation=pw")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		if findCookie(rec, middleware.SessionCookieName) != nil {
			t.Error("no session should be opened")
		}
	})
}

func TestAuthHandler_LogoutAndPassword(t *testing.T) {
	var changed []string
	users := &mockUserService{
		changePasswordFn: func(userID, current, password, confirmation string) error {
			if current != "old" {
				return apperrors.ErrInvalidCredentials
			}
			changed = append(changed, userID)
			return nil
		},
	}
	audit := &mockAuditService{}
	sessions := newTestSessions()
	r := setupAuthRouter(NewAuthHandler(users, sessions, audit), sessions)

	cookie := findCookie(doForm(r, "/login", "username=alice&password=pw"), middleware.SessionCookieName)

	rec := doForm(r, "/password", "current=bad&password=new&confirmation=new", cookie)
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong current password, got %d", rec.Code)
	}

	rec = doForm(r, "/password", "current=old&password=new&confirmation=new", cookie)
	assertRedirect(t, rec, "/")
	if len(changed) != 1 || changed[0] != "user-1" {
		t.Errorf("expected password change for user-1, got %v", changed)
	}

	rec = serve(r, newGet("/logout", cookie))
	assertRedirect(t, rec, "/")

	rec = serve(r, newGet("/password", cookie))
	assertRedirect(t, rec, "/login")

	last := audit.entries[len(audit.entries)-1]
	if last.action != services.AuditActionLogout {
		t.Errorf("expected logout audit entry, got %v", last)
	}
}

func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	audit := &mockAuditService{}
	sessions := newTestSessions()
	r := setupAuthRouter(NewAuthHandler(&mockUserService{}, sessions, audit), sessions)

	rec := serve(r, newGet("/logout"))
	assertRedirect(t, rec, "/")
	if findCookie(rec, middleware.SessionCookieName) != nil {
		t.Error("expected no cookie to be touched")
	}
	if len(audit.entries) != 0 {
		t.Errorf("expected no audit entries, got %v", audit.entries)
	}
}
