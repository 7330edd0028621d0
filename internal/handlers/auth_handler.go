package handlers

import (
	"net/http"

	apperrors "finance/internal/errors"
	"finance/internal/middleware"
	"finance/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login, logout and password changes.
type AuthHandler struct {
	userService  services.UserServicer
	sessions     *middleware.SessionManager
	auditService services.AuditServicer
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userService services.UserServicer, sessions *middleware.SessionManager, auditService services.AuditServicer) *AuthHandler {
	return &AuthHandler{userService: userService, sessions: sessions, auditService: auditService}
}

type credentialsForm struct {
	Username     string `form:"username"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

type passwordForm struct {
	Current      string `form:"current"`
	Password     string `form:"password"`
	Confirmation string `form:"confirmation"`
}

// LoginForm shows the login page. Visiting it forgets any current session.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.sessions.End(c)
	render(c, "login.html", "Log In", nil)
}

// Login authenticates the user and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	h.sessions.End(c)

	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Authenticate(form.Username, form.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionLogin, "session", "", c.ClientIP(), nil)
	c.Redirect(http.StatusFound, "/")
}

// Logout ends the session, if any, and returns to the index.
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, err := getUserID(c); err == nil {
		h.auditService.Log(userID, services.AuditActionLogout, "session", "", c.ClientIP(), nil)
	}
	h.sessions.End(c)
	c.Redirect(http.StatusFound, "/")
}

// RegisterForm shows the registration page.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	render(c, "register.html", "Register", nil)
}

// Register creates an account and logs the new user in.
func (h *AuthHandler) Register(c *gin.Context) {
	var form credentialsForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.Register(form.Username, form.Password, form.Confirmation)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	h.auditService.Log(user.ID, services.AuditActionRegister, "user", user.ID, c.ClientIP(),
		map[string]interface{}{"username": user.Username})
	redirectWithFlash(c, "/", "Registered!")
}

// PasswordForm shows the change password page.
func (h *AuthHandler) PasswordForm(c *gin.Context) {
	render(c, "password.html", "Change Password", nil)
}

// ChangePassword replaces the current user's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var form passwordForm
	if err := c.ShouldBind(&form); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.userService.ChangePassword(userID, form.Current, form.Password, form.Confirmation); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.AuditActionChangePassword, "user", userID, c.ClientIP(), nil)
	redirectWithFlash(c, "/", "Password changed!")
}
