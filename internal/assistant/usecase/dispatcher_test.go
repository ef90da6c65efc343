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
	"lifehub-backend/pkg/ai"
)

type fakeClassifier struct {
	result *ai.IntentResult
	err    error
}

func (c *fakeClassifier) ClassifyIntent(ctx context.Context, transcript string) (*ai.IntentResult, error) {
	return c.result, c.err
}

type fakeTasks struct {
	created []*taskdomain.Task
}

func (f *fakeTasks) CreateTask(userID, title, description string, dueDate, reminderAt *string, priority string) (*taskdomain.Task, error) {
	task := &taskdomain.Task{
		ID:       "t1",
		UserID:   userID,
		Title:    title,
		Priority: taskdomain.PriorityMedium,
		Status:   taskdomain.TaskStatusPending,
	}
	if priority == "high" {
		task.Priority = taskdomain.PriorityHigh
	}
	if reminderAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *reminderAt); err == nil {
			task.ReminderAt = &parsed
		}
	}
	f.created = append(f.created, task)
	return task, nil
}

func (f *fakeTasks) GetTaskByID(userID, taskID string) (*taskdomain.Task, error) { return nil, nil }
func (f *fakeTasks) GetUserTasks(userID string, status *string, limit, offset int) ([]*taskdomain.Task, int64, error) {
	return nil, 0, nil
}
func (f *fakeTasks) UpdateTask(userID, taskID string, updates taskUsecase.TaskUpdateRequest) (*taskdomain.Task, error) {
	return nil, nil
}
func (f *fakeTasks) CompleteTask(userID, taskID string) (*taskdomain.Task, error) { return nil, nil }
func (f *fakeTasks) DeleteTask(userID, taskID string) error                       { return nil }
func (f *fakeTasks) CountPending(userID string) (int64, error)                    { return int64(len(f.created)), nil }

type fakeHabits struct {
	completed []string
}

func (f *fakeHabits) CreateHabit(userID, name, description, frequency string) (*habitdomain.Habit, error) {
	return &habitdomain.Habit{ID: "h1", UserID: userID, Name: name}, nil
}
func (f *fakeHabits) GetHabitByID(userID, habitID string) (*habitdomain.Habit, error) {
	return nil, nil
}
func (f *fakeHabits) GetUserHabits(userID string) ([]*habitdomain.Habit, error) { return nil, nil }
func (f *fakeHabits) UpdateHabit(userID, habitID string, updates habitUsecase.HabitUpdateRequest) (*habitdomain.Habit, error) {
	return nil, nil
}
func (f *fakeHabits) DeleteHabit(userID, habitID string) error { return nil }
func (f *fakeHabits) LogEntry(userID, habitID, entryDate string, completed bool, note string) (*habitdomain.Habit, error) {
	return nil, nil
}
func (f *fakeHabits) CompleteByName(userID, name string) (*habitdomain.Habit, error) {
	if name == "missing" {
		return nil, errors.New("habit not found")
	}
	f.completed = append(f.completed, name)
	return &habitdomain.Habit{ID: "h1", Name: name, CurrentStreak: 4}, nil
}
func (f *fakeHabits) GetEntries(userID, habitID string) ([]*habitdomain.HabitEntry, error) {
	return nil, nil
}
func (f *fakeHabits) DeleteEntry(userID, habitID, entryDate string) (*habitdomain.Habit, error) {
	return nil, nil
}

type fakeCheckins struct {
	requests []checkinUsecase.CheckinRequest
}

func (f *fakeCheckins) Upsert(userID, date string, req checkinUsecase.CheckinRequest) (*checkindomain.DailyCheckin, error) {
	f.requests = append(f.requests, req)
	return &checkindomain.DailyCheckin{UserID: userID}, nil
}
func (f *fakeCheckins) GetByDate(userID, date string) (*checkindomain.DailyCheckin, error) {
	return nil, errors.New("checkin not found")
}
func (f *fakeCheckins) GetHistory(userID string, limit int) ([]*checkindomain.DailyCheckin, error) {
	return nil, nil
}
func (f *fakeCheckins) Delete(userID, date string) error { return nil }

type fakeCalendar struct {
	created []*caldomain.CalendarEvent
}

func (f *fakeCalendar) ListUpcoming(ctx context.Context, userID, accountID string, days int, limit int64) ([]*caldomain.CalendarEvent, error) {
	return nil, nil
}
func (f *fakeCalendar) ListMirrored(userID string, from, to time.Time) ([]*caldomain.CalendarEvent, error) {
	return nil, nil
}
func (f *fakeCalendar) GetStats(userID string) (*caldomain.CalendarStats, error) { return nil, nil }
func (f *fakeCalendar) CreateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error) {
	f.created = append(f.created, event)
	return event, nil
}
func (f *fakeCalendar) UpdateEvent(ctx context.Context, userID, accountID string, event *caldomain.CalendarEvent) (*caldomain.CalendarEvent, error) {
	return event, nil
}
func (f *fakeCalendar) DeleteEvent(ctx context.Context, userID, accountID, remoteID string) error {
	return nil
}

type fakeMail struct {
	sent []*maildomain.OutgoingEmail
}

func (f *fakeMail) ListInbox(ctx context.Context, userID, accountID string, limit int64) ([]*maildomain.EmailMessage, error) {
	return nil, nil
}
func (f *fakeMail) ListMirrored(userID string, limit, offset int) ([]*maildomain.EmailMessage, int64, error) {
	return nil, 0, nil
}
func (f *fakeMail) GetStats(userID string) (*maildomain.EmailStats, error) {
	return &maildomain.EmailStats{UserID: userID, UnreadCount: 3, TodayCount: 1}, nil
}
func (f *fakeMail) MarkAsRead(ctx context.Context, userID, accountID, remoteID string) error {
	return nil
}
func (f *fakeMail) MarkAsUnread(ctx context.Context, userID, accountID, remoteID string) error {
	return nil
}
func (f *fakeMail) Archive(ctx context.Context, userID, accountID, remoteID string) error { return nil }
func (f *fakeMail) Trash(ctx context.Context, userID, accountID, remoteID string) error   { return nil }
func (f *fakeMail) Send(ctx context.Context, userID, accountID string, email *maildomain.OutgoingEmail) error {
	f.sent = append(f.sent, email)
	return nil
}

type dispatcherFixture struct {
	tasks    *fakeTasks
	habits   *fakeHabits
	checkins *fakeCheckins
	calendar *fakeCalendar
	mail     *fakeMail
}

func newDispatcher(result *ai.IntentResult, err error) (AssistantUsecase, *dispatcherFixture) {
	fx := &dispatcherFixture{
		tasks:    &fakeTasks{},
		habits:   &fakeHabits{},
		checkins: &fakeCheckins{},
		calendar: &fakeCalendar{},
		mail:     &fakeMail{},
	}
	uc := NewAssistantUsecase(&fakeClassifier{result: result, err: err},
		fx.tasks, fx.habits, fx.checkins, fx.calendar, fx.mail)
	return uc, fx
}

func TestHandleCommandCreateTask(t *testing.T) {
	uc, fx := newDispatcher(&ai.IntentResult{
		Intent:     ai.IntentCreateTask,
		Confidence: 0.95,
		Entities:   map[string]string{"taskTitle": "buy groceries"},
	}, nil)

	result, err := uc.HandleCommand(context.Background(), "u1", "Add task: buy groceries")
	if err != nil {
		t.Fatalf("handle command failed: %v", err)
	}

	if len(fx.tasks.created) != 1 {
		t.Fatalf("expected one task created, got %d", len(fx.tasks.created))
	}
	task := fx.tasks.created[0]
	if task.Title != "buy groceries" {
		t.Fatalf("expected title carried through, got %q", task.Title)
	}
	if task.Status != taskdomain.TaskStatusPending || task.Priority != taskdomain.PriorityMedium {
		t.Fatalf("expected pending/medium defaults, got %s/%s", task.Status, task.Priority)
	}
	if result.Message == "" || result.Message == apologyMessage {
		t.Fatalf("expected confirmation message, got %q", result.Message)
	}
}

func TestHandleCommandMissingRequiredEntityNoSideEffect(t *testing.T) {
	uc, fx := newDispatcher(&ai.IntentResult{
		Intent:     ai.IntentCreateTask,
		Confidence: 0.9,
		Entities:   map[string]string{},
	}, nil)

	result, err := uc.HandleCommand(context.Background(), "u1", "add a task")
	if err != nil {
		t.Fatalf("handle command failed: %v", err)
	}

	if len(fx.tasks.created) != 0 {
		t.Fatalf("missing title must not create a task, got %d", len(fx.tasks.created))
	}
	if result.Message != apologyMessage {
		t.Fatalf("expected apology, got %q", result.Message)
	}
}

func TestHandleCommandUnknownIntentNoSideEffects(t *testing.T) {
	uc, fx := newDispatcher(&ai.IntentResult{
		Intent:   ai.IntentUnknown,
		Entities: map[string]string{},
	}, nil)

	result, err := uc.HandleCommand(context.Background(), "u1", "what is the meaning of life")
	if err != nil {
		t.Fatalf("handle command failed: %v", err)
	}

	if result.Message != apologyMessage {
		t.Fatalf("expected apology, got %q", result.Message)
	}
	if len(fx.tasks.created) != 0 || len(fx.habits.completed) != 0 ||
		len(fx.checkins.requests) != 0 || len(fx.calendar.created) != 0 || len(fx.mail.sent) != 0 {
		t.Fatal("unknown intent must have no side effects")
	}
}

func TestHandleCommandCompleteHabit(t *testing.T) {
	uc, fx := newDispatcher(&ai.IntentResult{
		Intent:     ai.IntentCompleteHabit,
		Confidence: 0.9,
		Entities:   map[string]string{"habitName": "meditation"},
	}, nil)

	result, err := uc.HandleCommand(context.Background(), "u1", "I meditated today")
	if err != nil {
		t.Fatalf("handle command failed: %v", err)
	}

	if len(fx.habits.completed) != 1 || fx.habits.completed[0] != "meditation" {
		t.Fatalf("expected meditation completed, got %v", fx.habits.completed)
	}
	if result.Data == nil {
		t.Fatal("expected updated habit in result data")
	}
}

func TestHandleCommandLogSleep(t *testing.T) {
	uc, fx := newDispatcher(&ai.IntentResult{
		Intent:     ai.IntentLogSleep,
		Confidence: 0.85,
		Entities:   map[string]string{"sleepHours": "7.5"},
	}, nil)

	if _, err := uc.HandleCommand(context.Background(), "u1", "I slept seven and a half hours"); err != nil {
		t.Fatalf("handle command failed: %v", err)
	}

	if len(fx.checkins.requests) != 1 {
		t.Fatalf("expected one check-in write, got %d", len(fx.checkins.requests))
	}
	req := fx.checkins.requests[0]
	if req.SleepHours == nil || *req.SleepHours != 7.5 {
		t.Fatalf("expected sleep hours 7.5, got %+v", req.SleepHours)
	}
	if req.Rating != nil || req.Mood != nil {
		t.Fatal("log_sleep must only set sleep hours")
	}
}

func TestHandleCommandClassifierFailure(t *testing.T) {
	uc, fx := newDispatcher(nil, errors.New("model unavailable"))

	if _, err := uc.HandleCommand(context.Background(), "u1", "add a task"); err == nil {
		t.Fatal("expected error when classifier is down")
	}
	if len(fx.tasks.created) != 0 {
		t.Fatal("classifier failure must have no side effects")
	}
}

func TestHandleCommandEmptyTranscript(t *testing.T) {
	uc, _ := newDispatcher(nil, nil)

	result, err := uc.HandleCommand(context.Background(), "u1", "   ")
	if err != nil {
		t.Fatalf("handle command failed: %v", err)
	}
	if result.Intent != ai.IntentUnknown || result.Message != apologyMessage {
		t.Fatalf("expected unknown/apology for empty transcript, got %s/%q", result.Intent, result.Message)
	}
}
