package files

import "github.com/gin-gonic/gin"

// RegisterRoutes registers file routes under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	f := r.Group("/files")
	{
		f.GET("", h.List)
		f.POST("/upload", h.Upload)
		f.GET("/download/:id", h.Download)
		f.DELETE("/:id", h.Delete)
	}
}
