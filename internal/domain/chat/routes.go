package chat

import "github.com/gin-gonic/gin"

// RegisterRoutes registers chat routes under the protected group. The
// websocket route authenticates itself from the token query parameter,
// so it is registered on the public group.
func RegisterRoutes(protected *gin.RouterGroup, h *Handler) {
	ch := protected.Group("/chat")
	{
		ch.GET("/messages", h.List)
		ch.POST("/send", h.Send)
		ch.DELETE("/messages/:id", h.Delete)
	}
}

func RegisterWSRoutes(public *gin.RouterGroup, h *WSHandler) {
	public.GET("/chat/ws", h.Handle)
}
