package usecase

import (
	"errors"
	"time"

	"lifehub-backend/internal/checkin/domain"
	"lifehub-backend/internal/checkin/repository"
)

const dateLayout = "2006-01-02"

// CheckinUsecase defines daily check-in business logic
type CheckinUsecase interface {
	// Upsert merges the request into the day's check-in. Only non-nil fields
	// override what is already stored; a second write never clears earlier
	// values. date is YYYY-MM-DD, empty means today.
	Upsert(userID, date string, req CheckinRequest) (*domain.DailyCheckin, error)

	GetByDate(userID, date string) (*domain.DailyCheckin, error)
	GetHistory(userID string, limit int) ([]*domain.DailyCheckin, error)
	Delete(userID, date string) error
}

// CheckinRequest carries the fields a single write may set
type CheckinRequest struct {
	Mood       *string  `json:"mood,omitempty"`
	Energy     *int     `json:"energy,omitempty"`
	SleepHours *float64 `json:"sleep_hours,omitempty"`
	Rating     *int     `json:"rating,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

type checkinUsecase struct {
	checkinRepo repository.CheckinRepository
	now         func() time.Time
}

func NewCheckinUsecase(checkinRepo repository.CheckinRepository) CheckinUsecase {
	return &checkinUsecase{checkinRepo: checkinRepo, now: time.Now}
}

func (u *checkinUsecase) Upsert(userID, date string, req CheckinRequest) (*domain.DailyCheckin, error) {
	if date == "" {
		date = u.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, errors.New("date must be YYYY-MM-DD")
	}

	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 10) {
		return nil, errors.New("rating must be between 1 and 10")
	}
	if req.Energy != nil && (*req.Energy < 1 || *req.Energy > 10) {
		return nil, errors.New("energy must be between 1 and 10")
	}
	if req.SleepHours != nil && (*req.SleepHours < 0 || *req.SleepHours > 24) {
		return nil, errors.New("sleep_hours must be between 0 and 24")
	}

	checkin, err := u.checkinRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if checkin == nil {
		checkin = &domain.DailyCheckin{
			UserID:      userID,
			CheckinDate: date,
		}
	}

	if req.Mood != nil {
		checkin.Mood = *req.Mood
	}
	if req.Energy != nil {
		checkin.Energy = req.Energy
	}
	if req.SleepHours != nil {
		checkin.SleepHours = req.SleepHours
	}
	if req.Rating != nil {
		checkin.Rating = req.Rating
	}
	if req.Notes != nil {
		checkin.Notes = *req.Notes
	}

	if err := u.checkinRepo.Save(checkin); err != nil {
		return nil, err
	}
	return checkin, nil
}

func (u *checkinUsecase) GetByDate(userID, date string) (*domain.DailyCheckin, error) {
	if date == "" {
		date = u.now().Format(dateLayout)
	}
	checkin, err := u.checkinRepo.FindByUserAndDate(userID, date)
	if err != nil {
		return nil, err
	}
	if checkin == nil {
		return nil, errors.New("checkin not found")
	}
	return checkin, nil
}

func (u *checkinUsecase) GetHistory(userID string, limit int) ([]*domain.DailyCheckin, error) {
	if limit <= 0 || limit > 90 {
		limit = 30
	}
	return u.checkinRepo.FindByUserID(userID, limit)
}

func (u *checkinUsecase) Delete(userID, date string) error {
	if date == "" {
		return errors.New("date is required")
	}
	return u.checkinRepo.Delete(userID, date)
}
