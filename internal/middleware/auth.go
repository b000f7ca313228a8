package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studyshare/internal/domain/auth"
	"studyshare/internal/pkg/jwt"
	"studyshare/internal/pkg/response"
)

// IdentityLoader resolves a verified token subject to the acting user.
type IdentityLoader interface {
	Identity(ctx context.Context, userID int64) (auth.Identity, error)
}

// JWTAuth gates every protected endpoint: it extracts the bearer token,
// verifies it, loads the account it names and attaches the Identity to
// the request context. A missing token is 401; a bad or expired token
// is 403; a token whose account no longer exists is 404.
func JWTAuth(tokens *jwt.Service, ids IdentityLoader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header format must be Bearer <token>")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
			c.Abort()
			return
		}

		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, http.StatusForbidden, "TOKEN_EXPIRED", "Invalid or expired token")
			} else {
				response.Error(c, http.StatusForbidden, "TOKEN_INVALID", "Invalid or expired token")
			}
			c.Abort()
			return
		}

		identity, err := ids.Identity(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) {
				response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
			} else {
				logger.Error("identity load failed", zap.Int64("user_id", userID), zap.Error(err))
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(auth.ContextUserKey, identity)
		c.Set("user_id", identity.ID)

		c.Next()
	}
}
