package ai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

var knownIntents = map[Intent]bool{
	IntentCreateTask:    true,
	IntentCreateHabit:   true,
	IntentSetReminder:   true,
	IntentCreateEvent:   true,
	IntentQueryCalendar: true,
	IntentSendEmail:     true,
	IntentReadEmails:    true,
	IntentCompleteHabit: true,
	IntentLogSleep:      true,
	IntentRateDay:       true,
	IntentDailyCheckin:  true,
	IntentQueryStatus:   true,
	IntentUnknown:       true,
}

func classificationPrompt(transcript string, now time.Time) string {
	return fmt.Sprintf(`You are the intent classifier for a personal assistant. Classify the transcript into EXACTLY ONE intent.

TODAY'S DATE: %s

INTENTS:
- create_task: add a to-do item. Entities: taskTitle (required), dueDate (ISO 8601), priority (high/medium/low)
- create_habit: start tracking a habit. Entities: habitName (required), frequency
- set_reminder: remind about something at a time. Entities: taskTitle (required), reminderAt (ISO 8601)
- create_event: put something on the calendar. Entities: eventTitle (required), startTime (ISO 8601), endTime (ISO 8601), location
- query_calendar: ask what is on the calendar. Entities: date (ISO 8601)
- send_email: send an email. Entities: to (required), subject, body
- read_emails: ask about recent or unread email. Entities: none
- complete_habit: mark a habit done today. Entities: habitName (required)
- log_sleep: record hours slept. Entities: sleepHours (required, number as string)
- rate_day: rate how the day went. Entities: rating (required, 1-10 as string)
- daily_checkin: record mood/energy for today. Entities: mood, energy, notes
- query_status: ask for a summary of tasks/habits/day. Entities: none
- unknown: anything else

RULES:
1. Respond with ONLY a JSON object, no other text
2. Shape: {"intent": "...", "confidence": 0.0-1.0, "entities": {...}}
3. Entity values are always strings
4. Resolve relative dates ("tomorrow", "friday") against today's date
5. If the transcript fits no intent, use "unknown" with confidence 0

TRANSCRIPT:
%s

JSON OUTPUT:`, now.Format("2006-01-02"), transcript)
}

// ParseIntentResponse extracts and validates the model's JSON answer. Any
// malformed, empty or out-of-vocabulary response degrades to unknown with
// confidence 0; this function never fails.
func ParseIntentResponse(raw string) *IntentResult {
	unknown := &IntentResult{Intent: IntentUnknown, Confidence: 0, Entities: map[string]string{}}

	// Models wrap JSON in prose or code fences; take first "{" to last "}"
	text := strings.TrimSpace(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return unknown
	}
	text = text[start : end+1]

	var parsed struct {
		Intent     string                 `json:"intent"`
		Confidence float64                `json:"confidence"`
		Entities   map[string]interface{} `json:"entities"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return unknown
	}

	intent := Intent(parsed.Intent)
	if !knownIntents[intent] {
		return unknown
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	entities := make(map[string]string, len(parsed.Entities))
	for key, value := range parsed.Entities {
		switch v := value.(type) {
		case string:
			if v != "" {
				entities[key] = v
			}
		case float64:
			entities[key] = fmt.Sprintf("%v", v)
		}
	}

	return &IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Entities:   entities,
	}
}
