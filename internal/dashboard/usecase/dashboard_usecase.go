package usecase

import (
	"context"
	"log"
	"sync"

	caldomain "lifehub-backend/internal/calendar/domain"
	calendarUsecase "lifehub-backend/internal/calendar/usecase"
	checkindomain "lifehub-backend/internal/checkin/domain"
	checkinUsecase "lifehub-backend/internal/checkin/usecase"
	habitdomain "lifehub-backend/internal/habit/domain"
	habitUsecase "lifehub-backend/internal/habit/usecase"
	maildomain "lifehub-backend/internal/mail/domain"
	mailUsecase "lifehub-backend/internal/mail/usecase"
	taskUsecase "lifehub-backend/internal/task/usecase"
)

const mailProbeLimit = 25

// Dashboard aggregates one screenful of the user's day. The calendar and
// mail sections are nil with their error field set when the provider call
// fails; the rest of the dashboard is still returned.
type Dashboard struct {
	TodayEvents   []*caldomain.CalendarEvent  `json:"today_events"`
	CalendarError string                      `json:"calendar_error,omitempty"`
	UnreadCount   int                         `json:"unread_count"`
	RecentEmails  []*maildomain.EmailMessage  `json:"recent_emails"`
	MailError     string                      `json:"mail_error,omitempty"`
	PendingTasks  int64                       `json:"pending_tasks"`
	Habits        []*habitdomain.Habit        `json:"habits"`
	TodayCheckin  *checkindomain.DailyCheckin `json:"today_checkin,omitempty"`
}

type DashboardUsecase interface {
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
}

type dashboardUsecase struct {
	tasks    taskUsecase.TaskUsecase
	habits   habitUsecase.HabitUsecase
	checkins checkinUsecase.CheckinUsecase
	calendar calendarUsecase.CalendarUsecase
	mail     mailUsecase.MailUsecase
}

func NewDashboardUsecase(
	tasks taskUsecase.TaskUsecase,
	habits habitUsecase.HabitUsecase,
	checkins checkinUsecase.CheckinUsecase,
	calendar calendarUsecase.CalendarUsecase,
	mail mailUsecase.MailUsecase,
) DashboardUsecase {
	return &dashboardUsecase{
		tasks:    tasks,
		habits:   habits,
		checkins: checkins,
		calendar: calendar,
		mail:     mail,
	}
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	dash := &Dashboard{}

	// The two provider round-trips run concurrently; each failure is
	// captured on its own section so one bad provider never empties the
	// whole dashboard.
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		events, err := u.calendar.ListUpcoming(ctx, userID, "", 1, 20)
		if err != nil {
			log.Printf("[Dashboard] Calendar lookup failed for user %s: %v", userID, err)
			dash.CalendarError = err.Error()
			return
		}
		if events == nil {
			events = []*caldomain.CalendarEvent{}
		}
		dash.TodayEvents = events
	}()

	go func() {
		defer wg.Done()
		messages, err := u.mail.ListInbox(ctx, userID, "", mailProbeLimit)
		if err != nil {
			log.Printf("[Dashboard] Mail probe failed for user %s: %v", userID, err)
			dash.MailError = err.Error()
			return
		}
		unread := 0
		for _, m := range messages {
			if !m.IsRead {
				unread++
			}
		}
		dash.UnreadCount = unread
		if len(messages) > 5 {
			messages = messages[:5]
		}
		dash.RecentEmails = messages
	}()

	wg.Wait()

	pending, err := u.tasks.CountPending(userID)
	if err != nil {
		return nil, err
	}
	dash.PendingTasks = pending

	habits, err := u.habits.GetUserHabits(userID)
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []*habitdomain.Habit{}
	}
	dash.Habits = habits

	checkin, err := u.checkins.GetByDate(userID, "")
	if err == nil {
		dash.TodayCheckin = checkin
	}

	return dash, nil
}
