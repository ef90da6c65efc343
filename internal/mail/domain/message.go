package domain

import (
	"context"
	"time"

	"lifehub-backend/pkg/googleapi"
)

// EmailMessage is a locally persisted mirror of a Gmail message. The provider
// is authoritative: rows are only ever written by the sync reconciler, keyed
// uniquely by (account_id, remote_id).
type EmailMessage struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	AccountID  string    `json:"account_id" gorm:"uniqueIndex:idx_mail_account_remote;index;not null"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	RemoteID   string    `json:"remote_id" gorm:"uniqueIndex:idx_mail_account_remote;not null"`
	ThreadID   string    `json:"thread_id,omitempty"`
	Subject    string    `json:"subject"`
	From       string    `json:"from"`
	FromName   string    `json:"from_name"`
	To         string    `json:"to"`
	Snippet    string    `json:"snippet"`
	Labels     string    `json:"labels"`
	IsRead     bool      `json:"is_read"`
	IsStarred  bool      `json:"is_starred"`
	ReceivedAt time.Time `json:"received_at"`
	SyncedAt   time.Time `json:"synced_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TopSender is one entry of the per-user sender ranking.
type TopSender struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Count int    `json:"count"`
}

// EmailStats holds per-user mail aggregates. One row per user, fully
// overwritten on each sync pass; it reflects the last synced window only.
type EmailStats struct {
	UserID      string    `json:"user_id" gorm:"primaryKey"`
	TotalCount  int       `json:"total_count"`
	UnreadCount int       `json:"unread_count"`
	TodayCount  int       `json:"today_count"`
	WeekCount   int       `json:"week_count"`
	TopSenders  string    `json:"top_senders"` // JSON-encoded []TopSender
	ComputedAt  time.Time `json:"computed_at"`
}

// OutgoingEmail is a message to be sent through the provider.
type OutgoingEmail struct {
	FromName  string
	FromEmail string
	To        string
	Cc        string
	Subject   string
	Body      string
}

// MailProvider wraps the remote mail API. Implementations translate between
// the provider wire shape and the EmailMessage mirror shape.
type MailProvider interface {
	ListMessages(ctx context.Context, accessToken, refreshToken, query string, maxResults int64, onTokenRefresh googleapi.TokenUpdateFunc) ([]*EmailMessage, error)
	GetMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) (*EmailMessage, error)
	MarkAsRead(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error
	MarkAsUnread(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error
	ArchiveMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error
	TrashMessage(ctx context.Context, accessToken, refreshToken, remoteID string, onTokenRefresh googleapi.TokenUpdateFunc) error
	SendMessage(ctx context.Context, accessToken, refreshToken string, email *OutgoingEmail, onTokenRefresh googleapi.TokenUpdateFunc) error
}
