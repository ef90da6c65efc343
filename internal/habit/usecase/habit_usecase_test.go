package usecase

import (
	"sort"
	"testing"
	"time"

	"lifehub-backend/internal/habit/domain"
)

type fakeHabitRepo struct {
	habits  map[string]*domain.Habit
	entries map[string]*domain.HabitEntry // keyed habitID|date
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{
		habits:  map[string]*domain.Habit{},
		entries: map[string]*domain.HabitEntry{},
	}
}

func (r *fakeHabitRepo) Create(habit *domain.Habit) error {
	if habit.ID == "" {
		habit.ID = "habit-" + habit.Name
	}
	copied := *habit
	r.habits[habit.ID] = &copied
	return nil
}

func (r *fakeHabitRepo) FindByID(id string) (*domain.Habit, error) {
	h, ok := r.habits[id]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHabitRepo) FindByUserID(userID string) ([]*domain.Habit, error) {
	var out []*domain.Habit
	for _, h := range r.habits {
		if h.UserID == userID {
			copied := *h
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeHabitRepo) FindByName(userID, name string) (*domain.Habit, error) {
	for _, h := range r.habits {
		if h.UserID == userID && h.Name == name {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeHabitRepo) Update(habit *domain.Habit) error {
	copied := *habit
	r.habits[habit.ID] = &copied
	return nil
}

func (r *fakeHabitRepo) Delete(id string) error {
	delete(r.habits, id)
	return nil
}

func (r *fakeHabitRepo) UpsertEntry(entry *domain.HabitEntry) error {
	copied := *entry
	r.entries[entry.HabitID+"|"+entry.EntryDate] = &copied
	return nil
}

func (r *fakeHabitRepo) FindEntries(habitID string) ([]*domain.HabitEntry, error) {
	var out []*domain.HabitEntry
	for _, e := range r.entries {
		if e.HabitID == habitID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate < out[j].EntryDate })
	return out, nil
}

func (r *fakeHabitRepo) DeleteEntry(habitID, entryDate string) error {
	delete(r.entries, habitID+"|"+entryDate)
	return nil
}

func fixedClock(t *testing.T, s string) func() time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse clock %s: %v", s, err)
	}
	return func() time.Time { return parsed }
}

func TestLogEntryRecomputesStreaks(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUsecase(repo).(*habitUsecase)
	uc.now = fixedClock(t, "2026-08-29")

	habit, err := uc.CreateHabit("u1", "meditate", "", "daily")
	if err != nil {
		t.Fatalf("create habit failed: %v", err)
	}

	for _, date := range []string{"2026-08-27", "2026-08-28", "2026-08-29"} {
		habit, err = uc.LogEntry("u1", habit.ID, date, true, "")
		if err != nil {
			t.Fatalf("log entry %s failed: %v", date, err)
		}
	}

	if habit.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", habit.CurrentStreak)
	}
	if habit.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", habit.LongestStreak)
	}
}

func TestLogEntryIncompleteTodayRetainsLongest(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUsecase(repo).(*habitUsecase)
	uc.now = fixedClock(t, "2026-08-29")

	habit, err := uc.CreateHabit("u1", "run", "", "")
	if err != nil {
		t.Fatalf("create habit failed: %v", err)
	}

	for _, date := range []string{"2026-08-26", "2026-08-27", "2026-08-28"} {
		if _, err := uc.LogEntry("u1", habit.ID, date, true, ""); err != nil {
			t.Fatalf("log entry %s failed: %v", date, err)
		}
	}

	habit, err = uc.LogEntry("u1", habit.ID, "2026-08-29", false, "skipped")
	if err != nil {
		t.Fatalf("log incomplete entry failed: %v", err)
	}

	if habit.CurrentStreak != 0 {
		t.Fatalf("expected current streak 0, got %d", habit.CurrentStreak)
	}
	if habit.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3 retained, got %d", habit.LongestStreak)
	}
}

func TestCompleteByNameUnknownHabit(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUsecase(repo)

	if _, err := uc.CompleteByName("u1", "nonexistent"); err == nil {
		t.Fatal("expected error for unknown habit name")
	}
}

func TestLogEntryOwnershipCheck(t *testing.T) {
	repo := newFakeHabitRepo()
	uc := NewHabitUsecase(repo).(*habitUsecase)
	uc.now = fixedClock(t, "2026-08-29")

	habit, err := uc.CreateHabit("u1", "read", "", "")
	if err != nil {
		t.Fatalf("create habit failed: %v", err)
	}

	if _, err := uc.LogEntry("u2", habit.ID, "", true, ""); err == nil {
		t.Fatal("expected unauthorized error for other user's habit")
	}
}
