package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	accountUsecase "lifehub-backend/internal/account/usecase"
	caldomain "lifehub-backend/internal/calendar/domain"
	"lifehub-backend/internal/calendar/repository"
)

// CalendarUsecase exposes event reads and provider passthrough operations.
// Mutations go to the provider first; the mirror picks them up on the next
// sync pass rather than being written here.
type CalendarUsecase interface {
	ListUpcoming(ctx context.Context, userID, accountID string, days int, limit int64) ([]*caldomain.CalendarEvent, error)
	ListMirrored(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error)
	GetStats(userID string) (*caldomain.CalendarStats, error)
	CreateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error)
	UpdateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error)
	DeleteEvent(ctx context.Context, userID, accountID, remoteID string) error
}

type calendarUsecase struct {
	accounts  accountUsecase.AccountUsecase
	provider  caldomain.CalendarProvider
	eventRepo repository.CalendarEventRepository
	statsRepo repository.CalendarStatsRepository
}

func NewCalendarUsecase(accounts accountUsecase.AccountUsecase, provider caldomain.CalendarProvider, eventRepo repository.CalendarEventRepository, statsRepo repository.CalendarStatsRepository) CalendarUsecase {
	return &calendarUsecase{
		accounts:  accounts,
		provider:  provider,
		eventRepo: eventRepo,
		statsRepo: statsRepo,
	}
}

func (u *calendarUsecase) ListUpcoming(ctx context.Context, userID, accountID string, days int, limit int64) ([]*caldomain.CalendarEvent, error) {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	if days <= 0 {
		days = 7
	}
	now := time.Now()

	events, err := u.provider.ListEvents(ctx, account.AccessToken, account.RefreshToken,
		now, now.AddDate(0, 0, days), limit, u.accounts.TokenPersister(account.ID))
	if err != nil {
		log.Printf("[Calendar] Failed to list events for account %s: %v", account.ID, err)
		return nil, err
	}

	for _, event := range events {
		event.AccountID = account.ID
		event.UserID = userID
	}
	return events, nil
}

func (u *calendarUsecase) ListMirrored(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error) {
	return u.eventRepo.FindByUserID(userID, from, to)
}

func (u *calendarUsecase) GetStats(userID string) (*caldomain.CalendarStats, error) {
	return u.statsRepo.FindByUserID(userID)
}

func (u *calendarUsecase) CreateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error) {
	if event.Title == "" {
		return nil, errors.New("event title is required")
	}
	if event.EndTime.Before(event.StartTime) || event.EndTime.Equal(event.StartTime) {
		event.EndTime = event.StartTime.Add(time.Hour)
	}

	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	created, err := u.provider.CreateEvent(ctx, account.AccessToken, account.RefreshToken, event, u.accounts.TokenPersister(account.ID))
	if err != nil {
		return nil, err
	}

	created.AccountID = account.ID
	created.UserID = userID
	return created, nil
}

func (u *calendarUsecase) UpdateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error) {
	if event.RemoteID == "" {
		return nil, errors.New("event id is required")
	}

	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return nil, err
	}

	updated, err := u.provider.UpdateEvent(ctx, account.AccessToken, account.RefreshToken, event, u.accounts.TokenPersister(account.ID))
	if err != nil {
		return nil, err
	}

	updated.AccountID = account.ID
	updated.UserID = userID
	return updated, nil
}

func (u *calendarUsecase) DeleteEvent(ctx context.Context, userID, accountID, remoteID string) error {
	account, err := u.accounts.GetAccount(userID, accountID)
	if err != nil {
		return err
	}
	return u.provider.DeleteEvent(ctx, account.AccessToken, account.RefreshToken, remoteID, u.accounts.TokenPersister(account.ID))
}
