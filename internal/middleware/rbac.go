package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/studentres/resources-api/internal/models"
	appErrors "github.com/studentres/resources-api/pkg/errors"
	"github.com/studentres/resources-api/pkg/response"
)

type adminChecker interface {
	IsAdmin(ctx context.Context, uid string) bool
}

// RequireAdmin gates moderation routes on the profile's admin flag. It must
// run after JWT.
func RequireAdmin(profiles adminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}
		claims, ok := value.(*models.JWTClaims)
		if !ok || claims.UserID == "" {
			response.Error(c, appErrors.ErrUnauthenticated)
			c.Abort()
			return
		}

		if !profiles.IsAdmin(c.Request.Context(), claims.UserID) {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "moderator rights required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
