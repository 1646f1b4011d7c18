// internal/interfaces/http/handlers/chatbot.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/workshop-backend/internal/config"
	"github.com/your-org/workshop-backend/internal/domain/chatbot"
)

// ChatbotHandler handles the client chat endpoint
type ChatbotHandler struct {
	chatbotService *chatbot.Service
	config         *config.Config
}

// NewChatbotHandler creates a new chatbot handler
func NewChatbotHandler(cfg *config.Config) *ChatbotHandler {
	return &ChatbotHandler{
		chatbotService: chatbot.NewService(cfg),
		config:         cfg,
	}
}

// Ask answers a single chat message
func (h *ChatbotHandler) Ask(c *gin.Context) {
	var req chatbot.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reply := h.chatbotService.Ask(req.Message)

	c.JSON(http.StatusOK, gin.H{
		"data": reply,
	})
}
