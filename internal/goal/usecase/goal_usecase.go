package usecase

import (
	"errors"
	"time"

	"lifehub-backend/internal/goal/domain"
	"lifehub-backend/internal/goal/repository"
)

type GoalUsecase interface {
	CreateGoal(userID, title, description string, targetDate *string) (*domain.Goal, error)
	GetGoalByID(userID, goalID string) (*domain.Goal, error)
	GetUserGoals(userID string, status *string) ([]*domain.Goal, error)
	UpdateGoal(userID, goalID string, updates GoalUpdateRequest) (*domain.Goal, error)
	DeleteGoal(userID, goalID string) error
}

type GoalUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	TargetDate  *string `json:"target_date,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
	Status      *string `json:"status,omitempty"`
}

type goalUsecase struct {
	goalRepo repository.GoalRepository
}

func NewGoalUsecase(goalRepo repository.GoalRepository) GoalUsecase {
	return &goalUsecase{goalRepo: goalRepo}
}

func (u *goalUsecase) CreateGoal(userID, title, description string, targetDate *string) (*domain.Goal, error) {
	if title == "" {
		return nil, errors.New("title is required")
	}

	goal := &domain.Goal{
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      domain.GoalStatusActive,
	}

	if targetDate != nil && *targetDate != "" {
		if t, err := time.Parse(time.RFC3339, *targetDate); err == nil {
			goal.TargetDate = &t
		}
	}

	if err := u.goalRepo.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (u *goalUsecase) GetGoalByID(userID, goalID string) (*domain.Goal, error) {
	goal, err := u.goalRepo.FindByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, errors.New("goal not found")
	}
	if goal.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	return goal, nil
}

func (u *goalUsecase) GetUserGoals(userID string, status *string) ([]*domain.Goal, error) {
	var statusFilter *domain.GoalStatus
	if status != nil && *status != "" {
		s := domain.GoalStatus(*status)
		statusFilter = &s
	}
	return u.goalRepo.FindByUserID(userID, statusFilter)
}

func (u *goalUsecase) UpdateGoal(userID, goalID string, updates GoalUpdateRequest) (*domain.Goal, error) {
	goal, err := u.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil && *updates.Title != "" {
		goal.Title = *updates.Title
	}
	if updates.Description != nil {
		goal.Description = *updates.Description
	}
	if updates.TargetDate != nil {
		if *updates.TargetDate == "" {
			goal.TargetDate = nil
		} else if t, err := time.Parse(time.RFC3339, *updates.TargetDate); err == nil {
			goal.TargetDate = &t
		}
	}
	if updates.Progress != nil {
		p := *updates.Progress
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		goal.Progress = p
		if p == 100 {
			goal.Status = domain.GoalStatusCompleted
		}
	}
	if updates.Status != nil && *updates.Status != "" {
		goal.Status = domain.GoalStatus(*updates.Status)
	}

	if err := u.goalRepo.Update(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (u *goalUsecase) DeleteGoal(userID, goalID string) error {
	goal, err := u.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}
	return u.goalRepo.Delete(goal.ID)
}
