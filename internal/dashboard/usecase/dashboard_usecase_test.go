package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"
	checkindomain "lifehub-backend/internal/checkin/domain"
	checkinUsecase "lifehub-backend/internal/checkin/usecase"
	habitdomain "lifehub-backend/internal/habit/domain"
	habitUsecase "lifehub-backend/internal/habit/usecase"
	maildomain "lifehub-backend/internal/mail/domain"
	taskdomain "lifehub-backend/internal/task/domain"
	taskUsecase "lifehub-backend/internal/task/usecase"
)

type stubTasks struct{ pending int64 }

func (s *stubTasks) CreateTask(userID, title, description string, dueDate, reminderAt *string, priority string) (*taskdomain.Task, error) {
	return nil, nil
}
func (s *stubTasks) GetTaskByID(userID, taskID string) (*taskdomain.Task, error) { return nil, nil }
func (s *stubTasks) GetUserTasks(userID string, status *string, limit, offset int) ([]*taskdomain.Task, int64, error) {
	return nil, 0, nil
}
func (s *stubTasks) UpdateTask(userID, taskID string, updates taskUsecase.TaskUpdateRequest) (*taskdomain.Task, error) {
	return nil, nil
}
func (s *stubTasks) CompleteTask(userID, taskID string) (*taskdomain.Task, error) { return nil, nil }
func (s *stubTasks) DeleteTask(userID, taskID string) error                       { return nil }
func (s *stubTasks) CountPending(userID string) (int64, error)                    { return s.pending, nil }

type stubHabits struct{ habits []*habitdomain.Habit }

func (s *stubHabits) CreateHabit(userID, name, description, frequency string) (*habitdomain.Habit, error) {
	return nil, nil
}
func (s *stubHabits) GetHabitByID(userID, habitID string) (*habitdomain.Habit, error) {
	return nil, nil
}
func (s *stubHabits) GetUserHabits(userID string) ([]*habitdomain.Habit, error) {
	return s.habits, nil
}
func (s *stubHabits) UpdateHabit(userID, habitID string, updates habitUsecase.HabitUpdateRequest) (*habitdomain.Habit, error) {
	return nil, nil
}
func (s *stubHabits) DeleteHabit(userID, habitID string) error { return nil }
func (s *stubHabits) LogEntry(userID, habitID, entryDate string, completed bool, note string) (*habitdomain.Habit, error) {
	return nil, nil
}
func (s *stubHabits) CompleteByName(userID, name string) (*habitdomain.Habit, error) {
	return nil, nil
}
func (s *stubHabits) GetEntries(userID, habitID string) ([]*habitdomain.HabitEntry, error) {
	return nil, nil
}
func (s *stubHabits) DeleteEntry(userID, habitID, entryDate string) (*habitdomain.Habit, error) {
	return nil, nil
}

type stubCheckins struct{ today *checkindomain.DailyCheckin }

func (s *stubCheckins) Upsert(userID, date string, req checkinUsecase.CheckinRequest) (*checkindomain.DailyCheckin, error) {
	return nil, nil
}
func (s *stubCheckins) GetByDate(userID, date string) (*checkindomain.DailyCheckin, error) {
	if s.today == nil {
		return nil, errors.New("checkin not found")
	}
	return s.today, nil
}
func (s *stubCheckins) GetHistory(userID string, limit int) ([]*checkindomain.DailyCheckin, error) {
	return nil, nil
}
func (s *stubCheckins) Delete(userID, date string) error { return nil }

type stubCalendar struct {
	events []*caldomain.CalendarEvent
	err    error
}

func (s *stubCalendar) ListUpcoming(ctx context.Context, userID, accountID string, days int, limit int64) ([]*caldomain.CalendarEvent, error) {
	return s.events, s.err
}
func (s *stubCalendar) ListMirrored(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error) {
	return nil, nil
}
func (s *stubCalendar) GetStats(userID string) (*caldomain.CalendarStats, error) { return nil, nil }
func (s *stubCalendar) CreateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error) {
	return nil, nil
}
func (s *stubCalendar) UpdateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error) {
	return nil, nil
}
func (s *stubCalendar) DeleteEvent(ctx context.Context, userID, accountID, remoteID string) error {
	return nil
}

type stubMail struct {
	messages []*maildomain.EmailMessage
	err      error
}

func (s *stubMail) ListInbox(ctx context.Context, userID, accountID string, limit int64) ([]*maildomain.EmailMessage, error) {
	return s.messages, s.err
}
func (s *stubMail) ListMirrored(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error) {
	return nil, 0, nil
}
func (s *stubMail) GetStats(userID string) (*maildomain.EmailStats, error) { return nil, nil }
func (s *stubMail) MarkAsRead(ctx context.Context, userID, accountID, remoteID string) error {
	return nil
}
func (s *stubMail) MarkAsUnread(ctx context.Context, userID, accountID, remoteID string) error {
	return nil
}
func (s *stubMail) Archive(ctx context.Context, userID, accountID, remoteID string) error { return nil }
func (s *stubMail) Trash(ctx context.Context, userID, accountID, remoteID string) error   { return nil }
func (s *stubMail) Send(ctx context.Context, userID, accountID string, email *maildomain.OutgoingEmail) error {
	return nil
}

func TestGetDashboardAggregates(t *testing.T) {
	calendar := &stubCalendar{events: []*caldomain.CalendarEvent{{RemoteID: "e1", Title: "standup"}}}
	mail := &stubMail{messages: []*maildomain.EmailMessage{
		{RemoteID: "m1", IsRead: false},
		{RemoteID: "m2", IsRead: true},
		{RemoteID: "m3", IsRead: false},
	}}

	uc := NewDashboardUsecase(&stubTasks{pending: 4}, &stubHabits{
		habits: []*habitdomain.Habit{{ID: "h1", Name: "run", CurrentStreak: 2}},
	}, &stubCheckins{}, calendar, mail)

	dash, err := uc.GetDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}

	if len(dash.TodayEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(dash.TodayEvents))
	}
	if dash.UnreadCount != 2 {
		t.Fatalf("expected 2 unread, got %d", dash.UnreadCount)
	}
	if dash.PendingTasks != 4 {
		t.Fatalf("expected 4 pending tasks, got %d", dash.PendingTasks)
	}
	if len(dash.Habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(dash.Habits))
	}
	if dash.TodayCheckin != nil {
		t.Fatal("expected no check-in today")
	}
}

func TestGetDashboardProviderFailuresAreIsolated(t *testing.T) {
	calendar := &stubCalendar{err: errors.New("calendar timeout")}
	mail := &stubMail{messages: []*maildomain.EmailMessage{{RemoteID: "m1"}}}

	uc := NewDashboardUsecase(&stubTasks{pending: 1}, &stubHabits{}, &stubCheckins{}, calendar, mail)

	dash, err := uc.GetDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("one bad provider must not fail the dashboard: %v", err)
	}

	if dash.CalendarError == "" {
		t.Fatal("expected calendar error captured")
	}
	if dash.TodayEvents != nil {
		t.Fatal("expected nil calendar section on failure")
	}
	if dash.MailError != "" {
		t.Fatalf("mail section should still work, got error %q", dash.MailError)
	}
	if dash.PendingTasks != 1 {
		t.Fatalf("task summary should still work, got %d", dash.PendingTasks)
	}
}

func TestGetDashboardBothProvidersDown(t *testing.T) {
	uc := NewDashboardUsecase(&stubTasks{}, &stubHabits{}, &stubCheckins{},
		&stubCalendar{err: errors.New("down")}, &stubMail{err: errors.New("down")})

	dash, err := uc.GetDashboard(context.Background(), "u1")
	if err != nil {
		t.Fatalf("dashboard must degrade, not fail: %v", err)
	}
	if dash.CalendarError == "" || dash.MailError == "" {
		t.Fatal("expected both section errors captured")
	}
}
