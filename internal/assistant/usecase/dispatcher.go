package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"
	calendarUsecase "lifehub-backend/internal/calendar/usecase"
	checkinUsecase "lifehub-backend/internal/checkin/usecase"
	habitUsecase "lifehub-backend/internal/habit/usecase"
	maildomain "lifehub-backend/internal/mail/domain"
	mailUsecase "lifehub-backend/internal/mail/usecase"
	taskUsecase "lifehub-backend/internal/task/usecase"
	"lifehub-backend/pkg/ai"
)

const apologyMessage = "Sorry, I didn't understand that. Could you rephrase?"

// CommandResult is the outcome of one voice command
type CommandResult struct {
	Intent     ai.Intent         `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities,omitempty"`
	Message    string            `json:"message"`
	Data       interface{}       `json:"data,omitempty"`
}

// AssistantUsecase classifies a transcript and dispatches it to exactly one
// underlying operation.
type AssistantUsecase interface {
	HandleCommand(ctx context.Context, userID, transcript string) (*CommandResult, error)
}

type assistantUsecase struct {
	classifier ai.IntentClassifier
	tasks      taskUsecase.TaskUsecase
	habits     habitUsecase.HabitUsecase
	checkins   checkinUsecase.CheckinUsecase
	calendar   calendarUsecase.CalendarUsecase
	mail       mailUsecase.MailUsecase
}

// NewAssistantUsecase creates a new instance of assistantUsecase
func NewAssistantUsecase(
	classifier ai.IntentClassifier,
	tasks taskUsecase.TaskUsecase,
	habits habitUsecase.HabitUsecase,
	checkins checkinUsecase.CheckinUsecase,
	calendar calendarUsecase.CalendarUsecase,
	mail mailUsecase.MailUsecase,
) AssistantUsecase {
	return &assistantUsecase{
		classifier: classifier,
		tasks:      tasks,
		habits:     habits,
		checkins:   checkins,
		calendar:   calendar,
		mail:       mail,
	}
}

func (u *assistantUsecase) HandleCommand(ctx context.Context, userID, transcript string) (*CommandResult, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return &CommandResult{Intent: ai.IntentUnknown, Message: apologyMessage}, nil
	}

	result, err := u.classifier.ClassifyIntent(ctx, transcript)
	if err != nil {
		log.Printf("[Assistant] Classification failed: %v", err)
		return nil, fmt.Errorf("intent classification failed: %w", err)
	}

	log.Printf("[Assistant] Intent %s (%.2f) for user %s", result.Intent, result.Confidence, userID)

	out := &CommandResult{
		Intent:     result.Intent,
		Confidence: result.Confidence,
		Entities:   result.Entities,
	}

	switch result.Intent {
	case ai.IntentCreateTask:
		u.dispatchCreateTask(userID, result.Entities, out)
	case ai.IntentSetReminder:
		u.dispatchSetReminder(userID, result.Entities, out)
	case ai.IntentCreateHabit:
		u.dispatchCreateHabit(userID, result.Entities, out)
	case ai.IntentCompleteHabit:
		u.dispatchCompleteHabit(userID, result.Entities, out)
	case ai.IntentCreateEvent:
		u.dispatchCreateEvent(ctx, userID, result.Entities, out)
	case ai.IntentQueryCalendar:
		u.dispatchQueryCalendar(ctx, userID, out)
	case ai.IntentSendEmail:
		u.dispatchSendEmail(ctx, userID, result.Entities, out)
	case ai.IntentReadEmails:
		u.dispatchReadEmails(userID, out)
	case ai.IntentLogSleep:
		u.dispatchLogSleep(userID, result.Entities, out)
	case ai.IntentRateDay:
		u.dispatchRateDay(userID, result.Entities, out)
	case ai.IntentDailyCheckin:
		u.dispatchDailyCheckin(userID, result.Entities, out)
	case ai.IntentQueryStatus:
		u.dispatchQueryStatus(userID, out)
	default:
		out.Message = apologyMessage
	}

	return out, nil
}

func (u *assistantUsecase) dispatchCreateTask(userID string, entities map[string]string, out *CommandResult) {
	title := entities["taskTitle"]
	if title == "" {
		out.Message = apologyMessage
		return
	}

	var dueDate *string
	if d := entities["dueDate"]; d != "" {
		dueDate = &d
	}

	task, err := u.tasks.CreateTask(userID, title, "", dueDate, nil, entities["priority"])
	if err != nil {
		out.Message = "I couldn't create that task: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Added task \"%s\".", task.Title)
	out.Data = task
}

func (u *assistantUsecase) dispatchSetReminder(userID string, entities map[string]string, out *CommandResult) {
	title := entities["taskTitle"]
	if title == "" {
		out.Message = apologyMessage
		return
	}

	var reminderAt *string
	if r := entities["reminderAt"]; r != "" {
		reminderAt = &r
	}

	task, err := u.tasks.CreateTask(userID, title, "", nil, reminderAt, "")
	if err != nil {
		out.Message = "I couldn't set that reminder: " + err.Error()
		return
	}
	if task.ReminderAt != nil {
		out.Message = fmt.Sprintf("Okay, I'll remind you about \"%s\" at %s.", task.Title, task.ReminderAt.Format("Jan 2, 15:04"))
	} else {
		out.Message = fmt.Sprintf("Added \"%s\" to your tasks.", task.Title)
	}
	out.Data = task
}

func (u *assistantUsecase) dispatchCreateHabit(userID string, entities map[string]string, out *CommandResult) {
	name := entities["habitName"]
	if name == "" {
		out.Message = apologyMessage
		return
	}

	habit, err := u.habits.CreateHabit(userID, name, "", entities["frequency"])
	if err != nil {
		out.Message = "I couldn't create that habit: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Now tracking \"%s\".", habit.Name)
	out.Data = habit
}

func (u *assistantUsecase) dispatchCompleteHabit(userID string, entities map[string]string, out *CommandResult) {
	name := entities["habitName"]
	if name == "" {
		out.Message = apologyMessage
		return
	}

	habit, err := u.habits.CompleteByName(userID, name)
	if err != nil {
		if err.Error() == "habit not found" {
			out.Message = fmt.Sprintf("I couldn't find a habit called \"%s\".", name)
			return
		}
		out.Message = "I couldn't log that habit: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Marked \"%s\" done. Current streak: %d days.", habit.Name, habit.CurrentStreak)
	out.Data = habit
}

func (u *assistantUsecase) dispatchCreateEvent(ctx context.Context, userID string, entities map[string]string, out *CommandResult) {
	title := entities["eventTitle"]
	if title == "" {
		out.Message = apologyMessage
		return
	}

	event := &caldomain.CalendarEvent{
		Title:    title,
		Location: entities["location"],
	}
	if t, err := time.Parse(time.RFC3339, entities["startTime"]); err == nil {
		event.StartTime = t
	}
	if t, err := time.Parse(time.RFC3339, entities["endTime"]); err == nil {
		event.EndTime = t
	}

	created, err := u.calendar.CreateEvent(ctx, userID, "", event)
	if err != nil {
		out.Message = "I couldn't create that event: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Scheduled \"%s\" for %s.", created.Title, created.StartTime.Format("Jan 2, 15:04"))
	out.Data = created
}

func (u *assistantUsecase) dispatchQueryCalendar(ctx context.Context, userID string, out *CommandResult) {
	events, err := u.calendar.ListUpcoming(ctx, userID, "", 1, 20)
	if err != nil {
		out.Message = "I couldn't reach your calendar: " + err.Error()
		return
	}
	if len(events) == 0 {
		out.Message = "Your calendar is clear today."
		return
	}
	out.Message = fmt.Sprintf("You have %d event(s) today. First up: \"%s\" at %s.",
		len(events), events[0].Title, events[0].StartTime.Format("15:04"))
	out.Data = events
}

func (u *assistantUsecase) dispatchSendEmail(ctx context.Context, userID string, entities map[string]string, out *CommandResult) {
	to := entities["to"]
	if to == "" {
		out.Message = apologyMessage
		return
	}

	email := &maildomain.OutgoingEmail{
		To:      to,
		Subject: entities["subject"],
		Body:    entities["body"],
	}
	if err := u.mail.Send(ctx, userID, "", email); err != nil {
		out.Message = "I couldn't send that email: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Email sent to %s.", to)
}

func (u *assistantUsecase) dispatchReadEmails(userID string, out *CommandResult) {
	stats, err := u.mail.GetStats(userID)
	if err != nil {
		out.Message = "I couldn't check your email: " + err.Error()
		return
	}
	if stats == nil {
		out.Message = "I don't have your inbox synced yet. Run a sync first."
		return
	}
	out.Message = fmt.Sprintf("You have %d unread emails, %d received today.", stats.UnreadCount, stats.TodayCount)
	out.Data = stats
}

func (u *assistantUsecase) dispatchLogSleep(userID string, entities map[string]string, out *CommandResult) {
	raw := entities["sleepHours"]
	hours, err := strconv.ParseFloat(raw, 64)
	if raw == "" || err != nil {
		out.Message = apologyMessage
		return
	}

	checkin, err := u.checkins.Upsert(userID, "", checkinUsecase.CheckinRequest{SleepHours: &hours})
	if err != nil {
		out.Message = "I couldn't log that: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Logged %.1f hours of sleep.", hours)
	out.Data = checkin
}

func (u *assistantUsecase) dispatchRateDay(userID string, entities map[string]string, out *CommandResult) {
	raw := entities["rating"]
	rating, err := strconv.Atoi(raw)
	if raw == "" || err != nil {
		out.Message = apologyMessage
		return
	}

	checkin, err := u.checkins.Upsert(userID, "", checkinUsecase.CheckinRequest{Rating: &rating})
	if err != nil {
		out.Message = "I couldn't rate your day: " + err.Error()
		return
	}
	out.Message = fmt.Sprintf("Got it, today rated %d/10.", rating)
	out.Data = checkin
}

func (u *assistantUsecase) dispatchDailyCheckin(userID string, entities map[string]string, out *CommandResult) {
	req := checkinUsecase.CheckinRequest{}
	if mood := entities["mood"]; mood != "" {
		req.Mood = &mood
	}
	if raw := entities["energy"]; raw != "" {
		if energy, err := strconv.Atoi(raw); err == nil {
			req.Energy = &energy
		}
	}
	if notes := entities["notes"]; notes != "" {
		req.Notes = &notes
	}

	checkin, err := u.checkins.Upsert(userID, "", req)
	if err != nil {
		out.Message = "I couldn't save your check-in: " + err.Error()
		return
	}
	out.Message = "Check-in saved. Thanks for sharing."
	out.Data = checkin
}

func (u *assistantUsecase) dispatchQueryStatus(userID string, out *CommandResult) {
	pending, err := u.tasks.CountPending(userID)
	if err != nil {
		out.Message = "I couldn't fetch your status: " + err.Error()
		return
	}

	habits, err := u.habits.GetUserHabits(userID)
	if err != nil {
		out.Message = "I couldn't fetch your status: " + err.Error()
		return
	}

	best := 0
	for _, h := range habits {
		if h.CurrentStreak > best {
			best = h.CurrentStreak
		}
	}

	out.Message = fmt.Sprintf("You have %d pending tasks and %d habits. Best current streak: %d days.",
		pending, len(habits), best)
}
