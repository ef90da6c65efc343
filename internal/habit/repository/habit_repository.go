package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lifehub-backend/internal/habit/domain"
)

// HabitRepository defines data access for habits and their daily entries
type HabitRepository interface {
	Create(habit *domain.Habit) error
	FindByID(id string) (*domain.Habit, error)
	FindByUserID(userID string) ([]*domain.Habit, error)
	FindByName(userID, name string) (*domain.Habit, error)
	Update(habit *domain.Habit) error
	Delete(id string) error

	// UpsertEntry writes one day's completion record; a second write for the
	// same (habit_id, entry_date) overwrites completed and note.
	UpsertEntry(entry *domain.HabitEntry) error

	// FindEntries returns all entries for a habit ordered by entry_date ascending
	FindEntries(habitID string) ([]*domain.HabitEntry, error)

	DeleteEntry(habitID, entryDate string) error
}

type gormHabitRepository struct {
	db *gorm.DB
}

func NewGormHabitRepository(db *gorm.DB) HabitRepository {
	return &gormHabitRepository{db: db}
}

func (r *gormHabitRepository) Create(habit *domain.Habit) error {
	if habit.ID == "" {
		habit.ID = uuid.New().String()
	}
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = time.Now()
	return r.db.Create(habit).Error
}

func (r *gormHabitRepository) FindByID(id string) (*domain.Habit, error) {
	var habit domain.Habit
	err := r.db.Where("id = ?", id).First(&habit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

func (r *gormHabitRepository) FindByUserID(userID string) ([]*domain.Habit, error) {
	var habits []*domain.Habit
	err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&habits).Error
	return habits, err
}

func (r *gormHabitRepository) FindByName(userID, name string) (*domain.Habit, error) {
	var habit domain.Habit
	err := r.db.Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).First(&habit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &habit, nil
}

func (r *gormHabitRepository) Update(habit *domain.Habit) error {
	habit.UpdatedAt = time.Now()
	return r.db.Save(habit).Error
}

func (r *gormHabitRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&domain.HabitEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Habit{}, "id = ?", id).Error
	})
}

func (r *gormHabitRepository) UpsertEntry(entry *domain.HabitEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "habit_id"}, {Name: "entry_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "note", "updated_at"}),
	}).Create(entry).Error
}

func (r *gormHabitRepository) FindEntries(habitID string) ([]*domain.HabitEntry, error) {
	var entries []*domain.HabitEntry
	err := r.db.Where("habit_id = ?", habitID).Order("entry_date ASC").Find(&entries).Error
	return entries, err
}

func (r *gormHabitRepository) DeleteEntry(habitID, entryDate string) error {
	return r.db.Where("habit_id = ? AND entry_date = ?", habitID, entryDate).
		Delete(&domain.HabitEntry{}).Error
}
