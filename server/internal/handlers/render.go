package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Aryanthe1/Goal-Sync/server/internal/models"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"
	"github.com/Aryanthe1/Goal-Sync/server/views"
	"github.com/Aryanthe1/Goal-Sync/server/views/components"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys shared with the router middleware.
const (
	ContextUserKey      = "user"
	ContextCSRFTokenKey = "csrf_token"
	ContextNonceKey     = "csp_nonce"
	SessionUserIDKey    = "userID"
)

var errFutureDate = errors.New("cannot record days in the future")

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// currentUser returns the user loaded by the auth middleware.
func currentUser(c *gin.Context) *models.User {
	if u, ok := c.Get(ContextUserKey); ok {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}

func csrfToken(c *gin.Context) string {
	return c.GetString(ContextCSRFTokenKey)
}

func cspNonce(c *gin.Context) string {
	return c.GetString(ContextNonceKey)
}

// userToday is the current calendar date in the user's time zone.
func userToday(user *models.User) (time.Time, *time.Location) {
	loc := utils.LoadLocation(user.TimeZone)
	return utils.Today(loc), loc
}

// render writes component bare for HTMX requests and inside the page layout
// otherwise.
func render(c *gin.Context, log *zap.Logger, status int, title string, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")

	var err error
	if isHTMX(c) {
		err = component.Render(c.Request.Context(), c.Writer)
	} else {
		layout := views.Layout(title, currentUser(c) != nil, csrfToken(c), cspNonce(c))
		err = layout.Render(templ.WithChildren(c.Request.Context(), component), c.Writer)
	}
	if err != nil {
		log.Error("Failed to render page", zap.String("title", title), zap.Error(err))
	}
}

// renderAlert writes a bare alert fragment, used as the response to HTMX form
// posts.
func renderAlert(c *gin.Context, log *zap.Logger, message, kind string) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := components.Alert(message, kind).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render alert", zap.Error(err))
	}
}

// redirect sends HTMX clients an HX-Redirect and everyone else a 303.
func redirect(c *gin.Context, location string) {
	if isHTMX(c) {
		c.Header("HX-Redirect", location)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusSeeOther, location)
}
