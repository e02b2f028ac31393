package controller

import (
	"net/http"
	"strconv"

	"github.com/chinazagideon/alx-travel-app/internal/service"
	"github.com/gin-gonic/gin"
)

type MessageController struct {
	service *service.MessageService
}

func NewMessageController(service *service.MessageService) *MessageController {
	return &MessageController{service: service}
}

type sendMessageRequest struct {
	RecipientID int64  `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// Send обрабатывает POST /messages
func (ctrl *MessageController) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	message, err := ctrl.service.SendMessage(c.Request.Context(), actorID(c), req.RecipientID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// Conversation обрабатывает GET /messages/conversation?user_id=N
func (ctrl *MessageController) Conversation(c *gin.Context) {
	raw := c.Query("user_id")
	otherID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || otherID <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "user_id parameter is required"})
		return
	}

	messages, err := ctrl.service.GetConversation(c.Request.Context(), actorID(c), otherID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
