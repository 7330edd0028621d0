package middleware

import (
	"errors"

	apperrors "finance/internal/errors"
	"finance/internal/logger"

	"github.com/gin-gonic/gin"
)

// ApologyTemplate is the page rendered for errors on HTML routes.
const ApologyTemplate = "apology.html"

// WriteError renders err for the client. API routes get a JSON body of the
// form {"error":{"code","message"}}; pages get the apology template. Errors
// that are not AppErrors are logged and reported as a generic internal error.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	if IsAPIRequest(c) {
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	_, loggedIn := UserID(c)
	c.HTML(appErr.StatusCode, ApologyTemplate, gin.H{
		"Title":    "Apology",
		"Status":   appErr.StatusCode,
		"Message":  appErr.Message,
		"LoggedIn": loggedIn,
	})
}

// ErrorHandler returns a Gin middleware that renders errors set on the Gin
// context with c.Error when the handler did not write a response itself.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		WriteError(c, c.Errors.Last().Err)
	}
}

// Recovery converts panics into a 500 response without exposing the
// panic value or stack to the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Get().Errorw("panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		WriteError(c, apperrors.ErrInternalServer)
		c.Abort()
	})
}

// NotFound renders a 404 for unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		WriteError(c, apperrors.ErrNotFound)
	}
}
