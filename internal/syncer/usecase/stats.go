package usecase

import (
	"encoding/json"
	"sort"
	"time"

	caldomain "lifehub-backend/internal/calendar/domain"
	maildomain "lifehub-backend/internal/mail/domain"
)

const topSenderLimit = 5

// ComputeEmailStats derives the per-user mail aggregates from one fetched
// batch. Deliberately window-scoped: the numbers describe the synced window,
// not the whole mailbox.
func ComputeEmailStats(userID string, messages []*maildomain.EmailMessage, now time.Time) *maildomain.EmailStats {
	stats := &maildomain.EmailStats{
		UserID:     userID,
		TotalCount: len(messages),
		ComputedAt: now,
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))

	senderCounts := make(map[string]int)
	senderNames := make(map[string]string)

	for _, msg := range messages {
		if !msg.IsRead {
			stats.UnreadCount++
		}
		if !msg.ReceivedAt.Before(startOfDay) {
			stats.TodayCount++
		}
		if !msg.ReceivedAt.Before(startOfWeek) {
			stats.WeekCount++
		}
		if msg.From != "" {
			senderCounts[msg.From]++
			if msg.FromName != "" {
				senderNames[msg.From] = msg.FromName
			}
		}
	}

	senders := make([]maildomain.TopSender, 0, len(senderCounts))
	for email, count := range senderCounts {
		senders = append(senders, maildomain.TopSender{
			Name:  senderNames[email],
			Email: email,
			Count: count,
		})
	}
	sort.Slice(senders, func(i, j int) bool {
		if senders[i].Count != senders[j].Count {
			return senders[i].Count > senders[j].Count
		}
		return senders[i].Email < senders[j].Email
	})
	if len(senders) > topSenderLimit {
		senders = senders[:topSenderLimit]
	}

	if encoded, err := json.Marshal(senders); err == nil {
		stats.TopSenders = string(encoded)
	}

	return stats
}

// ComputeCalendarStats derives the per-user calendar aggregates from one
// fetched batch, window-scoped like the mail stats.
func ComputeCalendarStats(userID string, events []*caldomain.CalendarEvent, now time.Time) *caldomain.CalendarStats {
	stats := &caldomain.CalendarStats{
		UserID:     userID,
		TotalCount: len(events),
		ComputedAt: now,
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	endOfWeek := startOfWeek.AddDate(0, 0, 7)

	hourCounts := make(map[int]int)
	dayCounts := make(map[time.Weekday]int)

	for _, event := range events {
		if event.StartTime.Before(endOfDay) && !event.StartTime.Before(startOfDay) {
			stats.TodayCount++
		}
		if event.StartTime.Before(endOfWeek) && !event.StartTime.Before(startOfWeek) {
			stats.WeekCount++
		}
		if !event.AllDay {
			hourCounts[event.StartTime.Hour()]++
		}
		dayCounts[event.StartTime.Weekday()]++
	}

	hours := make([]caldomain.BusyHour, 0, len(hourCounts))
	for hour, count := range hourCounts {
		hours = append(hours, caldomain.BusyHour{Hour: hour, Count: count})
	}
	sort.Slice(hours, func(i, j int) bool {
		if hours[i].Count != hours[j].Count {
			return hours[i].Count > hours[j].Count
		}
		return hours[i].Hour < hours[j].Hour
	})

	if encoded, err := json.Marshal(hours); err == nil {
		stats.BusyHours = string(encoded)
	}

	busiest := -1
	for day, count := range dayCounts {
		if count > busiest || (count == busiest && stats.BusiestDay > day.String()) {
			busiest = count
			stats.BusiestDay = day.String()
		}
	}

	return stats
}
