package usecase

import (
	"sort"
	"time"

	"lifehub-backend/internal/habit/domain"
)

const dateLayout = "2006-01-02"

// ComputeStreaks derives the current and longest completion streaks from a
// habit's entries. The current streak is the maximal run of consecutive
// completed days ending at the reference date (or the day before, when the
// reference date has no entry yet). An incomplete entry breaks the run.
func ComputeStreaks(entries []*domain.HabitEntry, today time.Time) (current, longest int) {
	completed := make(map[string]bool, len(entries))
	var dates []string
	for _, e := range entries {
		completed[e.EntryDate] = e.Completed
		dates = append(dates, e.EntryDate)
	}
	sort.Strings(dates)

	// Longest: scan runs of consecutive completed days
	run := 0
	var prev time.Time
	for _, d := range dates {
		day, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if !completed[d] {
			run = 0
			prev = day
			continue
		}
		if !prev.IsZero() && day.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
		prev = day
	}

	// Current: walk backwards from today; an un-logged today does not break
	// the streak, but an explicit incomplete entry does. The key uses the
	// local calendar day, matching how entries are stamped on write.
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayKey := today.Format(dateLayout)
	if done, ok := completed[todayKey]; ok && !done {
		return 0, longest
	}
	if _, ok := completed[todayKey]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	for {
		key := day.Format(dateLayout)
		done, ok := completed[key]
		if !ok || !done {
			break
		}
		current++
		day = day.AddDate(0, 0, -1)
	}

	if current > longest {
		longest = current
	}
	return current, longest
}
