package delivery

import (
	"net/http"

	"lifehub-backend/internal/account/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
	}
}

// GetAccounts lists the user's connected accounts
// GET /api/accounts
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	userID := c.GetString("userID")

	accounts, err := h.accountUsecase.ListAccounts(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// ConnectGoogle returns the consent-screen URL for connecting a new account
// GET /api/accounts/google/connect
func (h *AccountHandler) ConnectGoogle(c *gin.Context) {
	state := uuid.New().String()
	c.JSON(http.StatusOK, gin.H{
		"url":   h.accountUsecase.ConnectURL(state),
		"state": state,
	})
}

type callbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleCallback completes the connect flow with the authorization code
// POST /api/accounts/google/callback
func (h *AccountHandler) GoogleCallback(c *gin.Context) {
	userID := c.GetString("userID")

	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountUsecase.HandleCallback(c.Request.Context(), userID, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to connect account"})
		return
	}

	c.JSON(http.StatusCreated, account)
}

// DisconnectAccount deactivates a connected account
// DELETE /api/accounts/:id
func (h *AccountHandler) DisconnectAccount(c *gin.Context) {
	userID := c.GetString("userID")
	accountID := c.Param("id")

	if err := h.accountUsecase.Disconnect(userID, accountID); err != nil {
		if err.Error() == "account not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if err.Error() == "unauthorized" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account disconnected"})
}
