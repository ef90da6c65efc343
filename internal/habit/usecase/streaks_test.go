package usecase

import (
	"testing"
	"time"

	"lifehub-backend/internal/habit/domain"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse day %s: %v", s, err)
	}
	return parsed
}

func entry(date string, completed bool) *domain.HabitEntry {
	return &domain.HabitEntry{HabitID: "h1", EntryDate: date, Completed: completed}
}

func TestComputeStreaksConsecutiveDaysEndingToday(t *testing.T) {
	entries := []*domain.HabitEntry{
		entry("2026-08-25", true),
		entry("2026-08-26", true),
		entry("2026-08-27", true),
		entry("2026-08-28", true),
		entry("2026-08-29", true),
	}

	current, longest := ComputeStreaks(entries, day(t, "2026-08-29"))
	if current != 5 {
		t.Fatalf("expected current streak 5, got %d", current)
	}
	if longest != 5 {
		t.Fatalf("expected longest streak 5, got %d", longest)
	}
}

func TestComputeStreaksTodayIncompleteBreaksCurrent(t *testing.T) {
	entries := []*domain.HabitEntry{
		entry("2026-08-26", true),
		entry("2026-08-27", true),
		entry("2026-08-28", true),
		entry("2026-08-29", false),
	}

	current, longest := ComputeStreaks(entries, day(t, "2026-08-29"))
	if current != 0 {
		t.Fatalf("expected current streak 0 after incomplete today, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest streak 3 retained, got %d", longest)
	}
}

func TestComputeStreaksUnloggedTodayDoesNotBreak(t *testing.T) {
	entries := []*domain.HabitEntry{
		entry("2026-08-27", true),
		entry("2026-08-28", true),
	}

	current, _ := ComputeStreaks(entries, day(t, "2026-08-29"))
	if current != 2 {
		t.Fatalf("expected streak 2 carried from yesterday, got %d", current)
	}
}

func TestComputeStreaksGapResetsRun(t *testing.T) {
	entries := []*domain.HabitEntry{
		entry("2026-08-20", true),
		entry("2026-08-21", true),
		entry("2026-08-22", true),
		// gap on the 23rd
		entry("2026-08-24", true),
		entry("2026-08-29", true),
	}

	current, longest := ComputeStreaks(entries, day(t, "2026-08-29"))
	if current != 1 {
		t.Fatalf("expected current streak 1, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest streak 3, got %d", longest)
	}
}

func TestComputeStreaksLocalZoneEarlyMorning(t *testing.T) {
	entries := []*domain.HabitEntry{
		entry("2026-08-27", true),
		entry("2026-08-28", true),
		entry("2026-08-29", true),
	}

	// 01:30 local in a +9 zone is still the previous day in UTC; the
	// streak must count the local calendar day.
	now := time.Date(2026, 8, 29, 1, 30, 0, 0, time.FixedZone("UTC+9", 9*3600))
	current, longest := ComputeStreaks(entries, now)
	if current != 3 {
		t.Fatalf("expected current streak 3, got %d", current)
	}
	if longest != 3 {
		t.Fatalf("expected longest streak 3, got %d", longest)
	}
}

func TestComputeStreaksLocalZoneIncompleteToday(t *testing.T) {
	entries := []*domain.HabitEntry{
		entry("2026-08-27", true),
		entry("2026-08-28", true),
		entry("2026-08-29", false),
	}

	now := time.Date(2026, 8, 29, 1, 30, 0, 0, time.FixedZone("UTC+9", 9*3600))
	current, longest := ComputeStreaks(entries, now)
	if current != 0 {
		t.Fatalf("expected current streak 0 after incomplete today, got %d", current)
	}
	if longest != 2 {
		t.Fatalf("expected longest streak 2 retained, got %d", longest)
	}
}

func TestComputeStreaksNoEntries(t *testing.T) {
	current, longest := ComputeStreaks(nil, day(t, "2026-08-29"))
	if current != 0 || longest != 0 {
		t.Fatalf("expected zero streaks, got current=%d longest=%d", current, longest)
	}
}
