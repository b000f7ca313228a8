package chat

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"studyshare/internal/domain/auth"
	"studyshare/internal/pkg/jwt"
	"studyshare/internal/pkg/response"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // configure in prod
}

// IdentityLoader mirrors the auth middleware's loader so deleted
// accounts are rejected before the upgrade.
type IdentityLoader interface {
	Identity(ctx context.Context, userID int64) (auth.Identity, error)
}

// WSHandler upgrades GET /chat/ws?token=... connections and keeps them
// subscribed to new-message events. Browsers cannot set headers on
// websocket requests, so the token travels as a query parameter.
type WSHandler struct {
	hub    *Hub
	tokens *jwt.Service
	ids    IdentityLoader
	logger *zap.Logger
}

func NewWSHandler(hub *Hub, tokens *jwt.Service, ids IdentityLoader, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, tokens: tokens, ids: ids, logger: logger}
}

func (h *WSHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "TOKEN_REQUIRED", "Access token required")
		return
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		response.Error(c, http.StatusForbidden, "TOKEN_INVALID", "Invalid or expired token")
		return
	}

	identity, err := h.ids.Identity(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Authentication failed")
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &connection{
		userID: identity.ID,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
	h.hub.register(client)
	h.logger.Info("websocket connected", zap.Int64("user_id", identity.ID))

	go h.writeLoop(client)
	h.readLoop(client)
}

func (h *WSHandler) writeLoop(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop drains client frames; messages are sent over the REST
// endpoint, the socket is push-only.
func (h *WSHandler) readLoop(c *connection) {
	defer func() {
		h.hub.unregister(c)
		c.conn.Close()
		h.logger.Info("websocket disconnected", zap.Int64("user_id", c.userID))
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				h.logger.Warn("websocket read error", zap.Int64("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}
