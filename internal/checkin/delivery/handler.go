package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifehub-backend/internal/checkin/domain"
	"lifehub-backend/internal/checkin/usecase"
)

type CheckinHandler struct {
	checkinUsecase usecase.CheckinUsecase
}

func NewCheckinHandler(checkinUsecase usecase.CheckinUsecase) *CheckinHandler {
	return &CheckinHandler{checkinUsecase: checkinUsecase}
}

// PUT /api/checkins?date=2026-08-29
// Merge-writes today's (or the given date's) check-in.
func (h *CheckinHandler) UpsertCheckin(c *gin.Context) {
	userID := c.GetString("userID")
	date := c.Query("date")

	var req usecase.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checkin, err := h.checkinUsecase.Upsert(userID, date, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checkin)
}

// GET /api/checkins/today
func (h *CheckinHandler) GetToday(c *gin.Context) {
	userID := c.GetString("userID")

	checkin, err := h.checkinUsecase.GetByDate(userID, "")
	if err != nil {
		if err.Error() == "checkin not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No check-in for today yet"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, checkin)
}

// GET /api/checkins?limit=30
func (h *CheckinHandler) GetHistory(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	checkins, err := h.checkinUsecase.GetHistory(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if checkins == nil {
		checkins = []*domain.DailyCheckin{}
	}
	c.JSON(http.StatusOK, gin.H{"checkins": checkins})
}

// DELETE /api/checkins/:date
func (h *CheckinHandler) DeleteCheckin(c *gin.Context) {
	userID := c.GetString("userID")
	date := c.Param("date")

	if err := h.checkinUsecase.Delete(userID, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Check-in deleted successfully"})
}
