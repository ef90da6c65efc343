package delivery

import (
	"net/http"
	"strings"

	"lifehub-backend/internal/syncer/usecase"

	"github.com/gin-gonic/gin"
)

type SyncHandler struct {
	syncUsecase usecase.SyncUsecase
	// authToken gates the automated batch endpoint; empty disables the check
	authToken string
}

func NewSyncHandler(syncUsecase usecase.SyncUsecase, authToken string) *SyncHandler {
	return &SyncHandler{
		syncUsecase: syncUsecase,
		authToken:   authToken,
	}
}

// SyncNow reconciles all of the requesting user's accounts
// POST /api/sync
func (h *SyncHandler) SyncNow(c *gin.Context) {
	userID := c.GetString("userID")

	results, err := h.syncUsecase.SyncUserAccounts(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SyncAccount reconciles one of the requesting user's accounts
// POST /api/sync/accounts/:id
func (h *SyncHandler) SyncAccount(c *gin.Context) {
	userID := c.GetString("userID")
	result := h.syncUsecase.SyncAccount(c.Request.Context(), userID, c.Param("id"))
	c.JSON(http.StatusOK, result)
}

// SyncAll reconciles every active account; intended for a cron caller and
// gated by a static bearer token rather than a user session
// POST /api/sync/auto
func (h *SyncHandler) SyncAll(c *gin.Context) {
	if h.authToken != "" {
		header := c.GetHeader("Authorization")
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] != h.authToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid sync token"})
			return
		}
	}

	results, err := h.syncUsecase.SyncAllAccounts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}
