// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/config"
)

const (
	SessionIDKey     = "session_id"
	SessionIDHeader  = "X-Session-ID"
	sessionCookieKey = "session_cookie"
)

// Session reads the shopper session id from the cookie or the X-Session-ID header
func Session(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			id = c.GetHeader(SessionIDHeader)
		}
		c.Set(SessionIDKey, id)
		c.Set(sessionCookieKey, cfg)
		c.Next()
	}
}

// GetSessionID returns the session id the request carries, or ""
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

// SetSessionID records the session id the response belongs to and refreshes the cookie
func SetSessionID(c *gin.Context, id string) {
	c.Set(SessionIDKey, id)
	c.Header(SessionIDHeader, id)

	v, ok := c.Get(sessionCookieKey)
	if !ok {
		return
	}
	cfg := v.(config.SessionConfig)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.CookieName, id, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}
