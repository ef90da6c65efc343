package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lifehub-backend/internal/checkin/domain"
)

type CheckinRepository interface {
	Save(checkin *domain.DailyCheckin) error
	FindByUserAndDate(userID, date string) (*domain.DailyCheckin, error)
	FindByUserID(userID string, limit int) ([]*domain.DailyCheckin, error)
	Delete(userID, date string) error
}

type gormCheckinRepository struct {
	db *gorm.DB
}

func NewGormCheckinRepository(db *gorm.DB) CheckinRepository {
	return &gormCheckinRepository{db: db}
}

// Save inserts with an (user_id, checkin_date) conflict clause, so a
// concurrent first write for the same day turns into an update instead of a
// unique-index violation. Rows that were already loaded update by primary key.
func (r *gormCheckinRepository) Save(checkin *domain.DailyCheckin) error {
	checkin.UpdatedAt = time.Now()
	if checkin.ID != "" {
		return r.db.Save(checkin).Error
	}
	checkin.ID = uuid.New().String()
	checkin.CreatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "checkin_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"mood", "energy", "sleep_hours", "rating", "notes", "updated_at"}),
	}).Create(checkin).Error
}

func (r *gormCheckinRepository) FindByUserAndDate(userID, date string) (*domain.DailyCheckin, error) {
	var checkin domain.DailyCheckin
	err := r.db.Where("user_id = ? AND checkin_date = ?", userID, date).First(&checkin).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &checkin, nil
}

func (r *gormCheckinRepository) FindByUserID(userID string, limit int) ([]*domain.DailyCheckin, error) {
	var checkins []*domain.DailyCheckin
	err := r.db.Where("user_id = ?", userID).
		Order("checkin_date DESC").Limit(limit).Find(&checkins).Error
	return checkins, err
}

func (r *gormCheckinRepository) Delete(userID, date string) error {
	return r.db.Where("user_id = ? AND checkin_date = ?", userID, date).
		Delete(&domain.DailyCheckin{}).Error
}
