package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lifehub-backend/internal/note/domain"
	"lifehub-backend/internal/note/usecase"
)

type NoteHandler struct {
	noteUsecase usecase.NoteUsecase
}

func NewNoteHandler(noteUsecase usecase.NoteUsecase) *NoteHandler {
	return &NoteHandler{noteUsecase: noteUsecase}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GET /api/notes?limit=50&offset=0
func (h *NoteHandler) GetNotes(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	notes, total, err := h.noteUsecase.GetUserNotes(userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if notes == nil {
		notes = []*domain.Note{}
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes, "total": total})
}

// GET /api/notes/:id
func (h *NoteHandler) GetNoteByID(c *gin.Context) {
	userID := c.GetString("userID")

	note, err := h.noteUsecase.GetNoteByID(userID, c.Param("id"))
	if err != nil {
		respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// POST /api/notes
func (h *NoteHandler) CreateNote(c *gin.Context) {
	userID := c.GetString("userID")

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteUsecase.CreateNote(userID, req.Title, req.Content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

// PUT /api/notes/:id
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	userID := c.GetString("userID")

	var updates usecase.NoteUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := h.noteUsecase.UpdateNote(userID, c.Param("id"), updates)
	if err != nil {
		respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

// DELETE /api/notes/:id
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.noteUsecase.DeleteNote(userID, c.Param("id")); err != nil {
		respondNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted successfully"})
}

func respondNoteError(c *gin.Context, err error) {
	switch err.Error() {
	case "note not found":
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
	case "unauthorized":
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
