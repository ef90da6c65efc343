package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lifehub-backend/internal/dashboard/usecase"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GetDashboard returns the aggregated dashboard for the authenticated user
// GET /api/dashboard
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID := c.GetString("userID")

	dash, err := h.dashboardUsecase.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dash)
}
