package repository

import (
	"errors"

	maildomain "lifehub-backend/internal/mail/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EmailStatsRepository stores the per-user mail aggregates. One row per user,
// fully overwritten on every save.
type EmailStatsRepository interface {
	Save(stats *maildomain.EmailStats) error
	FindByUserID(userID string) (*maildomain.EmailStats, error)
}

type emailStatsRepository struct {
	db *gorm.DB
}

func NewEmailStatsRepository(db *gorm.DB) EmailStatsRepository {
	return &emailStatsRepository{
		db: db,
	}
}

func (r *emailStatsRepository) Save(stats *maildomain.EmailStats) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(stats).Error
}

func (r *emailStatsRepository) FindByUserID(userID string) (*maildomain.EmailStats, error) {
	var stats maildomain.EmailStats
	err := r.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stats, nil
}
