package domain

import "time"

// Habit represents a recurring practice the user wants to track daily
type Habit struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description,omitempty"`
	Frequency     string    `json:"frequency" gorm:"default:daily"`
	CurrentStreak int       `json:"current_streak" gorm:"default:0"`
	LongestStreak int       `json:"longest_streak" gorm:"default:0"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HabitEntry is one day's completion record for a habit.
// EntryDate is stored as a YYYY-MM-DD string, unique per habit.
type HabitEntry struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	HabitID   string    `json:"habit_id" gorm:"uniqueIndex:idx_habit_entry_date;not null"`
	EntryDate string    `json:"entry_date" gorm:"uniqueIndex:idx_habit_entry_date;not null"`
	Completed bool      `json:"completed" gorm:"default:true"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
