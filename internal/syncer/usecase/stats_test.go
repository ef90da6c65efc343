package usecase

import (
	"encoding/json"
	"testing"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"
	maildomain "lifehub-backend/internal/mail/domain"
)

// Saturday noon so "today" and "this week" windows are unambiguous
var statsNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func msg(remoteID, from string, receivedAt time.Time, read bool) *maildomain.EmailMessage {
	return &maildomain.EmailMessage{
		RemoteID:   remoteID,
		From:       from,
		ReceivedAt: receivedAt,
		IsRead:     read,
	}
}

func TestComputeEmailStatsCounts(t *testing.T) {
	messages := []*maildomain.EmailMessage{
		msg("1", "a@x.com", statsNow.Add(-1*time.Hour), false),  // today, unread
		msg("2", "a@x.com", statsNow.Add(-2*time.Hour), true),   // today
		msg("3", "b@x.com", statsNow.AddDate(0, 0, -3), false),  // this week, unread
		msg("4", "c@x.com", statsNow.AddDate(0, 0, -10), true),  // outside week
	}

	stats := ComputeEmailStats("u1", messages, statsNow)

	if stats.TotalCount != 4 {
		t.Fatalf("expected total 4, got %d", stats.TotalCount)
	}
	if stats.UnreadCount != 2 {
		t.Fatalf("expected 2 unread, got %d", stats.UnreadCount)
	}
	if stats.TodayCount != 2 {
		t.Fatalf("expected 2 today, got %d", stats.TodayCount)
	}
	if stats.WeekCount != 3 {
		t.Fatalf("expected 3 this week, got %d", stats.WeekCount)
	}
}

func TestComputeEmailStatsTopSenders(t *testing.T) {
	var messages []*maildomain.EmailMessage
	senders := []string{"a@x.com", "a@x.com", "a@x.com", "b@x.com", "b@x.com", "c@x.com", "d@x.com", "e@x.com", "f@x.com"}
	for i, s := range senders {
		messages = append(messages, msg(string(rune('0'+i)), s, statsNow, true))
	}

	stats := ComputeEmailStats("u1", messages, statsNow)

	var top []maildomain.TopSender
	if err := json.Unmarshal([]byte(stats.TopSenders), &top); err != nil {
		t.Fatalf("top senders should be valid JSON: %v", err)
	}
	if len(top) != topSenderLimit {
		t.Fatalf("expected top senders capped at %d, got %d", topSenderLimit, len(top))
	}
	if top[0].Email != "a@x.com" || top[0].Count != 3 {
		t.Fatalf("expected a@x.com with 3 first, got %+v", top[0])
	}
	if top[1].Email != "b@x.com" {
		t.Fatalf("expected b@x.com second, got %+v", top[1])
	}
	// Ties break by email ascending
	if top[2].Email != "c@x.com" {
		t.Fatalf("expected c@x.com third on tie-break, got %+v", top[2])
	}
}

func TestComputeCalendarStatsExcludesAllDayFromBusyHours(t *testing.T) {
	events := []*caldomain.CalendarEvent{
		{RemoteID: "1", StartTime: statsNow.Add(2 * time.Hour)},
		{RemoteID: "2", StartTime: statsNow.Add(2 * time.Hour)},
		{RemoteID: "3", StartTime: statsNow, AllDay: true},
	}

	stats := ComputeCalendarStats("u1", events, statsNow)

	if stats.TodayCount != 3 {
		t.Fatalf("expected 3 today, got %d", stats.TodayCount)
	}

	var hours []caldomain.BusyHour
	if err := json.Unmarshal([]byte(stats.BusyHours), &hours); err != nil {
		t.Fatalf("busy hours should be valid JSON: %v", err)
	}
	if len(hours) != 1 {
		t.Fatalf("expected one busy hour bucket, got %d", len(hours))
	}
	if hours[0].Hour != 14 || hours[0].Count != 2 {
		t.Fatalf("expected hour 14 count 2, got %+v", hours[0])
	}
}

func TestComputeCalendarStatsBusiestDay(t *testing.T) {
	saturday := statsNow
	monday := statsNow.AddDate(0, 0, 2)
	events := []*caldomain.CalendarEvent{
		{RemoteID: "1", StartTime: monday},
		{RemoteID: "2", StartTime: monday.Add(time.Hour)},
		{RemoteID: "3", StartTime: saturday},
	}

	stats := ComputeCalendarStats("u1", events, statsNow)
	if stats.BusiestDay != "Monday" {
		t.Fatalf("expected Monday, got %s", stats.BusiestDay)
	}
}

func TestComputeStatsEmptyBatch(t *testing.T) {
	emailStats := ComputeEmailStats("u1", nil, statsNow)
	if emailStats.TotalCount != 0 || emailStats.UnreadCount != 0 {
		t.Fatalf("expected zeroed email stats, got %+v", emailStats)
	}

	calStats := ComputeCalendarStats("u1", nil, statsNow)
	if calStats.TotalCount != 0 || calStats.BusiestDay != "" {
		t.Fatalf("expected zeroed calendar stats, got %+v", calStats)
	}
}
