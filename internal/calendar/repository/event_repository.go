package repository

import (
	"errors"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalendarEventRepository defines the interface for event mirror storage.
type CalendarEventRepository interface {
	UpsertBatch(events []*caldomain.CalendarEvent) error
	FindByUserID(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error)
	CountByAccountID(accountID string) (int64, error)
}

type calendarEventRepository struct {
	db *gorm.DB
}

func NewCalendarEventRepository(db *gorm.DB) CalendarEventRepository {
	return &calendarEventRepository{
		db: db,
	}
}

func (r *calendarEventRepository) UpsertBatch(events []*caldomain.CalendarEvent) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now()
	for _, event := range events {
		if event.ID == "" {
			event.ID = uuid.New().String()
		}
		event.SyncedAt = now
		event.CreatedAt = now
		event.UpdatedAt = now
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "remote_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "location", "start_time", "end_time",
			"all_day", "attendees", "status", "synced_at", "updated_at",
		}),
	}).Create(&events).Error
}

func (r *calendarEventRepository) FindByUserID(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error) {
	var events []*caldomain.CalendarEvent
	err := r.db.Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
		Order("start_time ASC").Find(&events).Error
	return events, err
}

func (r *calendarEventRepository) CountByAccountID(accountID string) (int64, error) {
	var count int64
	err := r.db.Model(&caldomain.CalendarEvent{}).Where("account_id = ?", accountID).Count(&count).Error
	return count, err
}

// CalendarStatsRepository stores the per-user calendar aggregates.
type CalendarStatsRepository interface {
	Save(stats *caldomain.CalendarStats) error
	FindByUserID(userID string) (*caldomain.CalendarStats, error)
}

type calendarStatsRepository struct {
	db *gorm.DB
}

func NewCalendarStatsRepository(db *gorm.DB) CalendarStatsRepository {
	return &calendarStatsRepository{
		db: db,
	}
}

func (r *calendarStatsRepository) Save(stats *caldomain.CalendarStats) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stats).Error
}

func (r *calendarStatsRepository) FindByUserID(userID string) (*caldomain.CalendarStats, error) {
	var stats caldomain.CalendarStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}
