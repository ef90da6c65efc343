package delivery

import (
	"net/http"
	"strconv"

	maildomain "lifehub-backend/internal/mail/domain"
	"lifehub-backend/internal/mail/usecase"

	"github.com/gin-gonic/gin"
)

type MailHandler struct {
	mailUsecase usecase.MailUsecase
}

func NewMailHandler(mailUsecase usecase.MailUsecase) *MailHandler {
	return &MailHandler{
		mailUsecase: mailUsecase,
	}
}

// GetInbox lists recent inbox messages straight from the provider
// GET /api/emails?account_id=...&limit=20
func (h *MailHandler) GetInbox(c *gin.Context) {
	userID := c.GetString("userID")
	accountID := c.Query("account_id")

	limit := int64(20)
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.ParseInt(limitStr, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	messages, err := h.mailUsecase.ListInbox(c.Request.Context(), userID, accountID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch emails"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"emails": messages})
}

// GetMirrored lists locally mirrored messages
// GET /api/emails/mirror?limit=20&offset=0
func (h *MailHandler) GetMirrored(c *gin.Context) {
	userID := c.GetString("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	messages, total, err := h.mailUsecase.ListMirrored(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"emails": messages,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// GetStats returns the user's mail aggregates from the last sync
// GET /api/emails/stats
func (h *MailHandler) GetStats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.mailUsecase.GetStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no stats yet, run a sync first"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// MarkAsRead marks a provider message as read
// PATCH /api/emails/:id/read
func (h *MailHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.mailUsecase.MarkAsRead(c.Request.Context(), userID, c.Query("account_id"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// MarkAsUnread marks a provider message as unread
// PATCH /api/emails/:id/unread
func (h *MailHandler) MarkAsUnread(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.mailUsecase.MarkAsUnread(c.Request.Context(), userID, c.Query("account_id"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark as unread"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as unread"})
}

// ArchiveEmail archives a provider message
// POST /api/emails/:id/archive
func (h *MailHandler) ArchiveEmail(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.mailUsecase.Archive(c.Request.Context(), userID, c.Query("account_id"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "archived"})
}

// TrashEmail moves a provider message to trash
// POST /api/emails/:id/trash
func (h *MailHandler) TrashEmail(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.mailUsecase.Trash(c.Request.Context(), userID, c.Query("account_id"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to trash email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "trashed"})
}

type sendEmailRequest struct {
	AccountID string `json:"account_id"`
	To        string `json:"to" binding:"required,email"`
	Cc        string `json:"cc"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// SendEmail sends an email through the connected account
// POST /api/emails/send
func (h *MailHandler) SendEmail(c *gin.Context) {
	userID := c.GetString("userID")

	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := &maildomain.OutgoingEmail{
		To:      req.To,
		Cc:      req.Cc,
		Subject: req.Subject,
		Body:    req.Body,
	}

	if err := h.mailUsecase.Send(c.Request.Context(), userID, req.AccountID, email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}
