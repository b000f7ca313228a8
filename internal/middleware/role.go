package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studyshare/internal/domain/auth"
	"studyshare/internal/pkg/response"
)

// AdminOnly composes after JWTAuth and rejects non-admin identities.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := auth.FromContext(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		if !identity.IsAdmin {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
