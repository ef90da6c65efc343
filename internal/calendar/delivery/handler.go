package delivery

import (
	"net/http"
	"strconv"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"
	"lifehub-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

func NewCalendarHandler(calendarUsecase usecase.CalendarUsecase) *CalendarHandler {
	return &CalendarHandler{
		calendarUsecase: calendarUsecase,
	}
}

// GetUpcoming lists upcoming events from the provider
// GET /api/calendar/events?account_id=...&days=7&limit=50
func (h *CalendarHandler) GetUpcoming(c *gin.Context) {
	userID := c.GetString("userID")
	accountID := c.Query("account_id")

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	events, err := h.calendarUsecase.ListUpcoming(c.Request.Context(), userID, accountID, days, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GetStats returns the user's calendar aggregates from the last sync
// GET /api/calendar/stats
func (h *CalendarHandler) GetStats(c *gin.Context) {
	userID := c.GetString("userID")

	stats, err := h.calendarUsecase.GetStats(userID)
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

// GetMirrored returns locally synced events in a date range
// GET /api/calendar/mirrored?from=...&to=...
func (h *CalendarHandler) GetMirrored(c *gin.Context) {
	userID := c.GetString("userID")

	now := time.Now()
	from := now.AddDate(0, 0, -7)
	to := now.AddDate(0, 0, 7)
	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			from = parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			to = parsed
		}
	}

	events, err := h.calendarUsecase.ListMirrored(userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if events == nil {
		events = []*caldomain.CalendarEvent{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

type eventRequest struct {
	AccountID   string `json:"account_id"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time"`
	AllDay      bool   `json:"all_day"`
	Attendees   string `json:"attendees"`
}

func (r *eventRequest) toEvent() (*caldomain.CalendarEvent, error) {
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}

	end := start.Add(time.Hour)
	if r.EndTime != "" {
		if parsed, err := time.Parse(time.RFC3339, r.EndTime); err == nil {
			end = parsed
		}
	}

	return &caldomain.CalendarEvent{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		StartTime:   start,
		EndTime:     end,
		AllDay:      r.AllDay,
		Attendees:   r.Attendees,
	}, nil
}

// CreateEvent inserts a new event via the provider
// POST /api/calendar/events
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	userID := c.GetString("userID")

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := req.toEvent()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected RFC 3339"})
		return
	}

	created, err := h.calendarUsecase.CreateEvent(c.Request.Context(), userID, req.AccountID, event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateEvent updates an event via the provider
// PUT /api/calendar/events/:id
func (h *CalendarHandler) UpdateEvent(c *gin.Context) {
	userID := c.GetString("userID")

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := req.toEvent()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected RFC 3339"})
		return
	}
	event.RemoteID = c.Param("id")

	updated, err := h.calendarUsecase.UpdateEvent(c.Request.Context(), userID, req.AccountID, event)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteEvent removes an event via the provider
// DELETE /api/calendar/events/:id
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.calendarUsecase.DeleteEvent(c.Request.Context(), userID, c.Query("account_id"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}
