package handlers

import (
	"net/http"

	apperrors "finance/internal/errors"
	"finance/internal/middleware"
	"finance/internal/web"

	"github.com/gin-gonic/gin"
)

// getUserID is the guard every protected handler calls first. It returns
// the authenticated user ID or ErrUnauthorized.
func getUserID(c *gin.Context) (string, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// respondWithError writes err as JSON on API routes and as the apology page
// everywhere else. Unexpected errors are logged and reported generically.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// render writes an HTML page with the values every page needs.
func render(c *gin.Context, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	_, loggedIn := middleware.UserID(c)
	data["Title"] = title
	data["LoggedIn"] = loggedIn
	data["Flash"] = web.TakeFlash(c)
	c.HTML(http.StatusOK, name, data)
}

// redirectWithFlash sends the browser to path with a message for the next page.
func redirectWithFlash(c *gin.Context, path, message string) {
	web.SetFlash(c, message)
	c.Redirect(http.StatusFound, path)
}
