package usecase

import (
	"errors"
	"time"

	"lifehub-backend/internal/habit/domain"
	"lifehub-backend/internal/habit/repository"
)

// HabitUsecase defines habit business logic
type HabitUsecase interface {
	CreateHabit(userID, name, description, frequency string) (*domain.Habit, error)
	GetHabitByID(userID, habitID string) (*domain.Habit, error)
	GetUserHabits(userID string) ([]*domain.Habit, error)
	UpdateHabit(userID, habitID string, updates HabitUpdateRequest) (*domain.Habit, error)
	DeleteHabit(userID, habitID string) error

	// LogEntry records one day's completion and recomputes streaks.
	// entryDate is YYYY-MM-DD; empty means today.
	LogEntry(userID, habitID, entryDate string, completed bool, note string) (*domain.Habit, error)

	// CompleteByName resolves a habit by its (case-insensitive) name and logs
	// today's entry as completed. Used by the voice-command dispatcher.
	CompleteByName(userID, name string) (*domain.Habit, error)

	GetEntries(userID, habitID string) ([]*domain.HabitEntry, error)
	DeleteEntry(userID, habitID, entryDate string) (*domain.Habit, error)
}

// HabitUpdateRequest represents the fields that can be updated
type HabitUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
}

type habitUsecase struct {
	habitRepo repository.HabitRepository
	now       func() time.Time
}

// NewHabitUsecase creates a new instance of habitUsecase
func NewHabitUsecase(habitRepo repository.HabitRepository) HabitUsecase {
	return &habitUsecase{habitRepo: habitRepo, now: time.Now}
}

func (u *habitUsecase) CreateHabit(userID, name, description, frequency string) (*domain.Habit, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if frequency == "" {
		frequency = "daily"
	}

	habit := &domain.Habit{
		UserID:      userID,
		Name:        name,
		Description: description,
		Frequency:   frequency,
	}
	if err := u.habitRepo.Create(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (u *habitUsecase) GetHabitByID(userID, habitID string) (*domain.Habit, error) {
	habit, err := u.habitRepo.FindByID(habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, errors.New("habit not found")
	}
	if habit.UserID != userID {
		return nil, errors.New("unauthorized")
	}
	return habit, nil
}

func (u *habitUsecase) GetUserHabits(userID string) ([]*domain.Habit, error) {
	return u.habitRepo.FindByUserID(userID)
}

func (u *habitUsecase) UpdateHabit(userID, habitID string, updates HabitUpdateRequest) (*domain.Habit, error) {
	habit, err := u.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil && *updates.Name != "" {
		habit.Name = *updates.Name
	}
	if updates.Description != nil {
		habit.Description = *updates.Description
	}
	if updates.Frequency != nil && *updates.Frequency != "" {
		habit.Frequency = *updates.Frequency
	}

	if err := u.habitRepo.Update(habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func (u *habitUsecase) DeleteHabit(userID, habitID string) error {
	habit, err := u.GetHabitByID(userID, habitID)
	if err != nil {
		return err
	}
	return u.habitRepo.Delete(habit.ID)
}

func (u *habitUsecase) LogEntry(userID, habitID, entryDate string, completed bool, note string) (*domain.Habit, error) {
	habit, err := u.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}

	if entryDate == "" {
		entryDate = u.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, entryDate); err != nil {
		return nil, errors.New("entry_date must be YYYY-MM-DD")
	}

	entry := &domain.HabitEntry{
		HabitID:   habit.ID,
		EntryDate: entryDate,
		Completed: completed,
		Note:      note,
	}
	if err := u.habitRepo.UpsertEntry(entry); err != nil {
		return nil, err
	}

	return u.recomputeStreaks(habit)
}

func (u *habitUsecase) CompleteByName(userID, name string) (*domain.Habit, error) {
	habit, err := u.habitRepo.FindByName(userID, name)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, errors.New("habit not found")
	}
	return u.LogEntry(userID, habit.ID, "", true, "")
}

func (u *habitUsecase) GetEntries(userID, habitID string) ([]*domain.HabitEntry, error) {
	habit, err := u.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	return u.habitRepo.FindEntries(habit.ID)
}

func (u *habitUsecase) DeleteEntry(userID, habitID, entryDate string) (*domain.Habit, error) {
	habit, err := u.GetHabitByID(userID, habitID)
	if err != nil {
		return nil, err
	}
	if err := u.habitRepo.DeleteEntry(habit.ID, entryDate); err != nil {
		return nil, err
	}
	return u.recomputeStreaks(habit)
}

func (u *habitUsecase) recomputeStreaks(habit *domain.Habit) (*domain.Habit, error) {
	entries, err := u.habitRepo.FindEntries(habit.ID)
	if err != nil {
		return nil, err
	}

	current, longest := ComputeStreaks(entries, u.now())
	habit.CurrentStreak = current
	if longest > habit.LongestStreak {
		habit.LongestStreak = longest
	}

	if err := u.habitRepo.Update(habit); err != nil {
		return nil, err
	}
	return habit, nil
}
