package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/car-rental-backend/internal/auth"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/car-rental-backend/internal/pkg/response"
	"github.com/nekogravitycat/car-rental-backend/internal/user"
)

var (
	errNotSignedIn = apperror.New(http.StatusUnauthorized, "unauthorized")
	errAdminOnly   = apperror.New(http.StatusForbidden, "system admin access required")
)

// RequireSystemAdmin passes only active system admins. Run it after auth.AuthRequired.
// The admin flag comes from the users table on every request, not from the session.
func RequireSystemAdmin(users user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := auth.GetUserID(c)
		if id == "" {
			abortWith(c, errNotSignedIn)
			return
		}

		u, err := users.GetByID(c.Request.Context(), id)
		switch {
		case errors.Is(err, user.ErrNotFound):
			abortWith(c, errNotSignedIn)
		case err != nil:
			abortWith(c, err)
		case !u.IsActive || !u.IsSystemAdmin:
			abortWith(c, errAdminOnly)
		default:
			c.Next()
		}
	}
}

func abortWith(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
