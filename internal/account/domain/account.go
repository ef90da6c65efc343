package domain

import "time"

// SyncStatus tracks the reconciler state machine for one account.
type SyncStatus string

const (
	SyncStatusPending   SyncStatus = "pending"
	SyncStatusSyncing   SyncStatus = "syncing"
	SyncStatusCompleted SyncStatus = "completed"
	SyncStatusError     SyncStatus = "error"
)

// Account is a connected external OAuth identity. Tokens are mutated on each
// refresh; the row is deactivated (not deleted) on disconnect so mirror rows
// keep a valid owner.
type Account struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	UserID       string     `json:"user_id" gorm:"uniqueIndex:idx_account_identity;index;not null"`
	Provider     string     `json:"provider" gorm:"uniqueIndex:idx_account_identity;not null"` // "google"
	Email        string     `json:"email" gorm:"uniqueIndex:idx_account_identity;not null"`
	AccessToken  string     `json:"-" gorm:"not null"`
	RefreshToken string     `json:"-"`
	TokenExpiry  time.Time  `json:"token_expiry"`
	SyncStatus   SyncStatus `json:"sync_status" gorm:"default:pending"`
	SyncError    string     `json:"sync_error,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
