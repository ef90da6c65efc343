package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifehub-backend/internal/goal/domain"
	"lifehub-backend/internal/goal/usecase"
)

type GoalHandler struct {
	goalUsecase usecase.GoalUsecase
}

func NewGoalHandler(goalUsecase usecase.GoalUsecase) *GoalHandler {
	return &GoalHandler{goalUsecase: goalUsecase}
}

type createGoalRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	TargetDate  *string `json:"target_date"`
}

// GET /api/goals?status=active
func (h *GoalHandler) GetGoals(c *gin.Context) {
	userID := c.GetString("userID")

	status := c.Query("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	goals, err := h.goalUsecase.GetUserGoals(userID, statusPtr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if goals == nil {
		goals = []*domain.Goal{}
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// POST /api/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID := c.GetString("userID")

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalUsecase.CreateGoal(userID, req.Title, req.Description, req.TargetDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// PUT /api/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID := c.GetString("userID")

	var updates usecase.GoalUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.goalUsecase.UpdateGoal(userID, c.Param("id"), updates)
	if err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// DELETE /api/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.goalUsecase.DeleteGoal(userID, c.Param("id")); err != nil {
		respondGoalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

func respondGoalError(c *gin.Context, err error) {
	switch err.Error() {
	case "goal not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
