package auth

import "github.com/gin-gonic/gin"

const principalKey = "principal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SetPrincipal attaches p to the request context.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// GetPrincipal returns the authenticated principal, or nil for anonymous requests.
func GetPrincipal(c *gin.Context) *Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return &p
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if p := GetPrincipal(c); p != nil {
		return p.ID
	}
	return ""
}
