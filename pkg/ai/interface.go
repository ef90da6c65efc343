package ai

import "context"

// Intent is a closed-set classification label for a voice transcript.
type Intent string

const (
	IntentCreateTask    Intent = "create_task"
	IntentCreateHabit   Intent = "create_habit"
	IntentSetReminder   Intent = "set_reminder"
	IntentCreateEvent   Intent = "create_event"
	IntentQueryCalendar Intent = "query_calendar"
	IntentSendEmail     Intent = "send_email"
	IntentReadEmails    Intent = "read_emails"
	IntentCompleteHabit Intent = "complete_habit"
	IntentLogSleep      Intent = "log_sleep"
	IntentRateDay       Intent = "rate_day"
	IntentDailyCheckin  Intent = "daily_checkin"
	IntentQueryStatus   Intent = "query_status"
	IntentUnknown       Intent = "unknown"
)

// IntentResult is the parsed model output. A malformed or missing response
// degrades to IntentUnknown with confidence 0 instead of returning an error.
type IntentResult struct {
	Intent     Intent            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Entities   map[string]string `json:"entities"`
}

// IntentClassifier is the interface for transcript classification.
// Implement this interface to add new providers (Gemini, Ollama, etc.).
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, transcript string) (*IntentResult, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
