package profile

import "github.com/gin-gonic/gin"

// RegisterRoutes registers profile routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	u := r.Group("/users")
	{
		u.GET("/profile", h.Get)
		u.POST("/profile-image", h.SetImage)
	}
}
