package domain

import (
	"context"
	"time"

	"lifehub-backend/pkg/googleapi"
)

// CalendarEvent is a locally persisted mirror of a Google Calendar event,
// keyed uniquely by (account_id, remote_id). Only the sync reconciler writes
// mirror rows; create/update/delete go through the provider first.
type CalendarEvent struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	AccountID   string    `json:"account_id" gorm:"uniqueIndex:idx_event_account_remote;index;not null"`
	UserID      string    `json:"user_id" gorm:"index;not null"`
	RemoteID    string    `json:"remote_id" gorm:"uniqueIndex:idx_event_account_remote;not null"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	Attendees   string    `json:"attendees,omitempty"`
	Status      string    `json:"status"`
	SyncedAt    time.Time `json:"synced_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BusyHour is one entry of the per-user hour-of-day load ranking.
type BusyHour struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// CalendarStats holds per-user calendar aggregates. One row per user, fully
// overwritten on each sync pass from the last fetched window.
type CalendarStats struct {
	UserID      string    `json:"user_id" gorm:"primaryKey"`
	TotalCount  int       `json:"total_count"`
	TodayCount  int       `json:"today_count"`
	WeekCount   int       `json:"week_count"`
	BusyHours   string    `json:"busy_hours"` // JSON-encoded []BusyHour
	BusiestDay  string    `json:"busiest_day,omitempty"`
	ComputedAt  time.Time `json:"computed_at"`
}

// CalendarProvider wraps the remote calendar API.
type CalendarProvider interface {
	ListEvents(ctx context.Context, accessToken, refreshToken string, from, to time.Time, maxResults int64, onTokenRefresh googleapi.TokenUpdateFunc) ([]*CalendarEvent, error)
	CreateEvent(ctx context.Context, accessToken, refreshToken string, event *CalendarEvent, onTokenRefresh googleapi.TokenUpdateFunc) (*CalendarEvent, error)
	UpdateEvent(ctx context.Context, accessToken, refreshToken string, event *CalendarEvent, onTokenRefresh googleapi.TokenUpdateFunc) (*CalendarEvent, error)
	DeleteEvent(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error
}
