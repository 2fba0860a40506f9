package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Answerer answers a contract question, reporting whether the fallback text
// was used. Implemented by service.AIService.
type Answerer interface {
	AnswerContractQuestion(ctx context.Context, message string) (response string, degraded bool, err error)
}

// ChatRequest is the payload for POST /ai-chat.
type ChatRequest struct {
	Message string `json:"message"`
}

type ChatHandler struct {
	ai Answerer
}

func NewChatHandler(ai Answerer) *ChatHandler {
	return &ChatHandler{ai: ai}
}

// Chat handles POST /ai-chat. Upstream failures never surface as errors
// here: the adapter substitutes fallback text and the endpoint still answers
// with success, flagging the response as degraded.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Message is required and must be a string",
		})
		return
	}

	response, degraded, err := h.ai.AnswerContractQuestion(c.Request.Context(), req.Message)
	if err != nil {
		respondServiceError(c, err, "Internal server error while processing AI chat")
		return
	}

	message := "AI response generated successfully"
	if degraded {
		message += " (fallback)"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"data": gin.H{
			"response":  response,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"degraded":  degraded,
		},
	})
}
