package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lifehub-backend/internal/goal/domain"
)

type GoalRepository interface {
	Create(goal *domain.Goal) error
	FindByID(id string) (*domain.Goal, error)
	FindByUserID(userID string, status *domain.GoalStatus) ([]*domain.Goal, error)
	Update(goal *domain.Goal) error
	Delete(id string) error
}

type gormGoalRepository struct {
	db *gorm.DB
}

func NewGormGoalRepository(db *gorm.DB) GoalRepository {
	return &gormGoalRepository{db: db}
}

func (r *gormGoalRepository) Create(goal *domain.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()
	return r.db.Create(goal).Error
}

func (r *gormGoalRepository) FindByID(id string) (*domain.Goal, error) {
	var goal domain.Goal
	err := r.db.Where("id = ?", id).First(&goal).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &goal, nil
}

func (r *gormGoalRepository) FindByUserID(userID string, status *domain.GoalStatus) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	query := r.db.Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("CASE WHEN target_date IS NULL THEN 1 ELSE 0 END, target_date ASC, created_at DESC").
		Find(&goals).Error
	return goals, err
}

func (r *gormGoalRepository) Update(goal *domain.Goal) error {
	goal.UpdatedAt = time.Now()
	return r.db.Save(goal).Error
}

func (r *gormGoalRepository) Delete(id string) error {
	return r.db.Delete(&domain.Goal{}, "id = ?", id).Error
}
