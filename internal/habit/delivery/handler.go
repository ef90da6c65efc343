package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifehub-backend/internal/habit/domain"
	"lifehub-backend/internal/habit/usecase"
)

// HabitHandler handles habit-related HTTP requests
type HabitHandler struct {
	habitUsecase usecase.HabitUsecase
}

// NewHabitHandler creates a new HabitHandler
func NewHabitHandler(habitUsecase usecase.HabitUsecase) *HabitHandler {
	return &HabitHandler{habitUsecase: habitUsecase}
}

type createHabitRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Frequency   string `json:"frequency"`
}

type logEntryRequest struct {
	EntryDate string `json:"entry_date"`
	Completed *bool  `json:"completed"`
	Note      string `json:"note"`
}

// GetHabits returns all habits for the authenticated user
// GET /api/habits
func (h *HabitHandler) GetHabits(c *gin.Context) {
	userID := c.GetString("userID")

	habits, err := h.habitUsecase.GetUserHabits(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if habits == nil {
		habits = []*domain.Habit{}
	}
	c.JSON(http.StatusOK, gin.H{"habits": habits})
}

// CreateHabit creates a new habit
// POST /api/habits
func (h *HabitHandler) CreateHabit(c *gin.Context) {
	userID := c.GetString("userID")

	var req createHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.habitUsecase.CreateHabit(userID, req.Name, req.Description, req.Frequency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

// UpdateHabit updates a habit's details
// PUT /api/habits/:id
func (h *HabitHandler) UpdateHabit(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	var updates usecase.HabitUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	habit, err := h.habitUsecase.UpdateHabit(userID, habitID, updates)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// DeleteHabit deletes a habit and its entries
// DELETE /api/habits/:id
func (h *HabitHandler) DeleteHabit(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	if err := h.habitUsecase.DeleteHabit(userID, habitID); err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}

// LogEntry records a day's completion for a habit
// POST /api/habits/:id/entries
func (h *HabitHandler) LogEntry(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	var req logEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completed := true
	if req.Completed != nil {
		completed = *req.Completed
	}

	habit, err := h.habitUsecase.LogEntry(userID, habitID, req.EntryDate, completed, req.Note)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

// GetEntries returns all entries for a habit
// GET /api/habits/:id/entries
func (h *HabitHandler) GetEntries(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")

	entries, err := h.habitUsecase.GetEntries(userID, habitID)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	if entries == nil {
		entries = []*domain.HabitEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// DeleteEntry removes a day's entry and recomputes streaks
// DELETE /api/habits/:id/entries/:date
func (h *HabitHandler) DeleteEntry(c *gin.Context) {
	userID := c.GetString("userID")
	habitID := c.Param("id")
	entryDate := c.Param("date")

	habit, err := h.habitUsecase.DeleteEntry(userID, habitID, entryDate)
	if err != nil {
		respondHabitError(c, err)
		return
	}

	c.JSON(http.StatusOK, habit)
}

func respondHabitError(c *gin.Context, err error) {
	switch err.Error() {
	case "habit not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Habit not found"})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case "entry_date must be YYYY-MM-DD":
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
