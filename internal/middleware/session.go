package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "finance/internal/errors"
	"finance/internal/logger"
	"finance/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie holding the signed session token.
const SessionCookieName = "finance_session"

const (
	userIDKey    = "userID"
	sessionIDKey = "sessionID"
)

// SessionManager resolves session cookies into user ids and opens and
// closes sessions on login and logout.
type SessionManager struct {
	store  session.Store
	codec  *session.Codec
	ttl    time.Duration
	secure bool
}

// NewSessionManager creates a SessionManager. secure marks the cookie
// HTTPS-only.
func NewSessionManager(store session.Store, codec *session.Codec, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{store: store, codec: codec, ttl: ttl, secure: secure}
}

// Middleware attaches the authenticated user id, if any, to the request.
// Requests without a valid session continue anonymously.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err == nil && token != "" {
			if sess := m.resolve(c, token); sess != nil {
				c.Set(sessionIDKey, sess.ID)
				c.Set(userIDKey, sess.UserID)
			} else {
				m.clearCookie(c)
			}
		}
		c.Next()
	}
}

func (m *SessionManager) resolve(c *gin.Context, token string) *session.Session {
	id, err := m.codec.Decode(token)
	if err != nil {
		return nil
	}
	sess, err := m.store.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			logger.Get().Warnw("session lookup failed", "error", err)
		}
		return nil
	}
	return sess
}

// Start binds a new session to userID and sets the cookie. Any session the
// browser already had is destroyed first.
func (m *SessionManager) Start(c *gin.Context, userID string) error {
	m.End(c)

	sess, err := m.store.Create(c.Request.Context(), userID, m.ttl)
	if err != nil {
		return err
	}
	token, err := m.codec.Encode(sess)
	if err != nil {
		_ = m.store.Destroy(c.Request.Context(), sess.ID)
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	c.Set(sessionIDKey, sess.ID)
	c.Set(userIDKey, userID)
	return nil
}

// End destroys the current session, if any, and clears the cookie.
func (m *SessionManager) End(c *gin.Context) {
	if id := c.GetString(sessionIDKey); id != "" {
		if err := m.store.Destroy(c.Request.Context(), id); err != nil {
			logger.Get().Warnw("failed to destroy session", "error", err)
		}
	}
	delete(c.Keys, sessionIDKey)
	delete(c.Keys, userIDKey)

	if _, err := c.Cookie(SessionCookieName); err == nil {
		m.clearCookie(c)
	}
}

func (m *SessionManager) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", m.secure, true)
}

// UserID returns the authenticated user id for the request.
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	return id, id != ""
}

// RequireUser rejects anonymous requests. Pages redirect to the login form;
// API calls get a 401 JSON error.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); ok {
			c.Next()
			return
		}
		if IsAPIRequest(c) {
			WriteError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// IsAPIRequest reports whether the request targets the JSON API.
func IsAPIRequest(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/")
}
