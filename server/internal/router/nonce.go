package router

import (
	"fmt"
	"net/http"

	"github.com/Aryanthe1/Goal-Sync/server/internal/handlers"
	"github.com/Aryanthe1/Goal-Sync/server/internal/utils"

	"github.com/gin-gonic/gin"
)

// NonceMiddleware creates a fresh CSP nonce for every request and exposes it
// to the views.
func NonceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		nonce, err := utils.GenerateSecureToken(32)
		if err != nil {
			c.AbortWithError(http.StatusInternalServerError, fmt.Errorf("failed to generate CSP nonce: %w", err))
			return
		}
		c.Set(handlers.ContextNonceKey, nonce)
		c.Next()
	}
}

// ContentSecurityPolicy allows scripts only from the CDNs the layout uses and
// inline scripts carrying the request's nonce. HTMX fragments inherit the
// policy of the page that loaded them.
func ContentSecurityPolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("HX-Request") != "true" {
			csp := fmt.Sprintf(
				"default-src 'self'; script-src 'self' https://unpkg.com https://cdn.jsdelivr.net 'nonce-%s'; style-src 'self' https://fonts.googleapis.com 'unsafe-inline'; font-src 'self' https://fonts.gstatic.com",
				c.GetString(handlers.ContextNonceKey),
			)
			c.Header("Content-Security-Policy", csp)
		}
		c.Next()
	}
}
