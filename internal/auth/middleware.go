package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "sid"

// TokenFromRequest returns the session token from the cookie or, failing
// that, from an "Authorization: Bearer <token>" header.
func TokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookieName); err == nil && v != "" {
		return v
	}

	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// ResolveSession attaches the session's principal to the context when the
// request carries a valid session. It never aborts: anonymous requests pass
// through and downstream handlers decide what anonymity means.
func ResolveSession(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		p, err := m.Resolve(c.Request.Context(), token)
		switch {
		case err == nil:
			SetPrincipal(c, *p)
		case errors.Is(err, ErrNoSession):
		default:
			zap.L().Warn("session lookup failed", zap.Error(err))
		}

		c.Next()
	}
}

// AuthRequired aborts with 401 unless ResolveSession attached a principal.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "unauthorized",
			})
			return
		}
		c.Next()
	}
}

// CookieOptions controls the session cookie attributes.
// Production sets SameSite=None and Secure so a separately hosted client can send it.
type CookieOptions struct {
	Production bool
}

// SetSessionCookie writes the session token cookie.
func SetSessionCookie(c *gin.Context, opts CookieOptions, token string, maxAge int) {
	if opts.Production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", opts.Production, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, opts CookieOptions) {
	SetSessionCookie(c, opts, "", -1)
}
