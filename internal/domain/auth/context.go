package auth

import "github.com/gin-gonic/gin"

// ContextUserKey is where the auth middleware stores the Identity.
const ContextUserKey = "user"

// FromContext returns the acting user attached by the auth middleware.
func FromContext(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
