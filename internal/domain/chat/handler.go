package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"studyshare/internal/domain/auth"
	"studyshare/internal/pkg/response"
)

type Handler struct {
	service *Service
	hub     *Hub
}

func NewHandler(service *Service, hub *Hub) *Handler {
	return &Handler{service: service, hub: hub}
}

type sendRequest struct {
	Message string `json:"message" binding:"required"`
}

// List godoc
// @Summary List all chat messages, oldest first
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /chat/messages [get]
func (h *Handler) List(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch messages")
		return
	}
	response.Success(c, http.StatusOK, messages)
}

// Send godoc
// @Summary Post a message to the shared room
// @Tags Chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /chat/send [post]
func (h *Handler) Send(c *gin.Context) {
	actor, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req sendRequest
	// bind errors fall through to the trim check in the service
	_ = c.ShouldBindJSON(&req)

	msg, err := h.service.Send(c.Request.Context(), actor, req.Message)
	if err != nil {
		if errors.Is(err, ErrEmptyMessage) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to send message")
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(&Event{
			Type: EventNewMessage,
			Payload: &MessageWithAuthor{
				Message:       *msg,
				Username:      actor.Username,
				AuthorIsAdmin: actor.IsAdmin,
			},
		})
	}

	response.Success(c, http.StatusCreated, gin.H{"message_id": msg.ID})
}

// Delete godoc
// @Summary Delete a message (owner or admin)
// @Tags Chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403,404 {object} map[string]interface{}
// @Router /chat/messages/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := auth.FromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrMessageNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Message not found")
		case errors.Is(err, ErrNotMessageOwner):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete message")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Message deleted successfully"})
}
