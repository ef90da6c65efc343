package ai

import "testing"

func TestParseIntentResponseValid(t *testing.T) {
	raw := `{"intent": "create_task", "confidence": 0.92, "entities": {"taskTitle": "buy groceries", "priority": "high"}}`

	result := ParseIntentResponse(raw)
	if result.Intent != IntentCreateTask {
		t.Fatalf("expected create_task, got %s", result.Intent)
	}
	if result.Confidence != 0.92 {
		t.Fatalf("expected confidence 0.92, got %f", result.Confidence)
	}
	if result.Entities["taskTitle"] != "buy groceries" {
		t.Fatalf("expected taskTitle entity, got %v", result.Entities)
	}
}

func TestParseIntentResponseWrappedInProse(t *testing.T) {
	raw := "Sure, here is the classification:\n```json\n{\"intent\": \"complete_habit\", \"confidence\": 0.8, \"entities\": {\"habitName\": \"meditation\"}}\n```\nLet me know if you need anything else."

	result := ParseIntentResponse(raw)
	if result.Intent != IntentCompleteHabit {
		t.Fatalf("expected complete_habit, got %s", result.Intent)
	}
	if result.Entities["habitName"] != "meditation" {
		t.Fatalf("expected habitName entity, got %v", result.Entities)
	}
}

func TestParseIntentResponseMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"no json", "I cannot classify this."},
		{"truncated", `{"intent": "create_task", "confi`},
		{"invalid json", "{intent: create_task}"},
		{"out of vocabulary", `{"intent": "order_pizza", "confidence": 0.9, "entities": {}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ParseIntentResponse(tc.raw)
			if result.Intent != IntentUnknown {
				t.Fatalf("expected unknown intent, got %s", result.Intent)
			}
			if result.Confidence != 0 {
				t.Fatalf("expected confidence 0, got %f", result.Confidence)
			}
			if result.Entities == nil {
				t.Fatal("entities map should never be nil")
			}
		})
	}
}

func TestParseIntentResponseClampsConfidence(t *testing.T) {
	result := ParseIntentResponse(`{"intent": "read_emails", "confidence": 1.7, "entities": {}}`)
	if result.Confidence != 1 {
		t.Fatalf("expected confidence clamped to 1, got %f", result.Confidence)
	}

	result = ParseIntentResponse(`{"intent": "read_emails", "confidence": -0.3, "entities": {}}`)
	if result.Confidence != 0 {
		t.Fatalf("expected confidence clamped to 0, got %f", result.Confidence)
	}
}

func TestParseIntentResponseCoercesNumericEntities(t *testing.T) {
	result := ParseIntentResponse(`{"intent": "log_sleep", "confidence": 0.9, "entities": {"sleepHours": 7.5}}`)
	if result.Entities["sleepHours"] != "7.5" {
		t.Fatalf("expected sleepHours coerced to string, got %q", result.Entities["sleepHours"])
	}
}
