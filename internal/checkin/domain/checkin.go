package domain

import "time"

// DailyCheckin is one per user per calendar day. CheckinDate is YYYY-MM-DD.
type DailyCheckin struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex:idx_checkin_user_date;not null"`
	CheckinDate string    `json:"checkin_date" gorm:"uniqueIndex:idx_checkin_user_date;not null"`
	Mood        string    `json:"mood,omitempty"`
	Energy      *int      `json:"energy,omitempty"`
	SleepHours  *float64  `json:"sleep_hours,omitempty"`
	Rating      *int      `json:"rating,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
