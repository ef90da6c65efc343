package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifehub-backend/internal/assistant/usecase"
)

// AssistantHandler handles voice-command HTTP requests
type AssistantHandler struct {
	assistantUsecase usecase.AssistantUsecase
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantUsecase usecase.AssistantUsecase) *AssistantHandler {
	return &AssistantHandler{assistantUsecase: assistantUsecase}
}

type commandRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// HandleCommand classifies a transcript and runs the matching operation
// POST /api/assistant/command
func (h *AssistantHandler) HandleCommand(c *gin.Context) {
	userID := c.GetString("userID")

	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.assistantUsecase.HandleCommand(c.Request.Context(), userID, req.Transcript)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Assistant is unavailable right now"})
		return
	}

	c.JSON(http.StatusOK, result)
}
