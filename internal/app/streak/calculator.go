// Package streak computes consecutive-day writing streaks from calendar
// days of activity. The calculator is pure: "today" is always injected by
// the caller, never read from the wall clock.
package streak

import (
	"sort"

	"github.com/inkwell-app/inkwell/internal/domain"
)

// Calculate derives the streak view from a set of activity DateKeys.
// Duplicates are tolerated. A streak is current when the most recent
// activity is today or yesterday (grace day); anything older means 0.
func Calculate(days []domain.DateKey, today domain.DateKey) domain.StreakResult {
	unique := dedupSort(days)
	if len(unique) == 0 {
		return domain.StreakResult{}
	}

	result := domain.StreakResult{
		LastActivity:    unique[len(unique)-1],
		TotalActiveDays: len(unique),
	}

	// Longest: a run extends only on an exactly-1-day gap.
	run := 1
	for i := 1; i < len(unique); i++ {
		if unique[i].DaysSince(unique[i-1]) == 1 {
			run++
			continue
		}
		if run > result.LongestStreak {
			result.LongestStreak = run
		}
		run = 1
	}
	if run > result.LongestStreak {
		result.LongestStreak = run
	}

	// Current: anchor at the most recent day and walk backward. The anchor
	// must be today or yesterday, otherwise the streak is already broken.
	last := result.LastActivity
	if last != today && last != today.AddDays(-1) {
		return result
	}
	current := 1
	for i := len(unique) - 2; i >= 0; i-- {
		if unique[i+1].DaysSince(unique[i]) != 1 {
			break
		}
		current++
	}
	result.CurrentStreak = current
	return result
}

// dedupSort returns the unique days in ascending order.
// DateKeys sort lexicographically, which matches chronology.
func dedupSort(days []domain.DateKey) []domain.DateKey {
	if len(days) == 0 {
		return nil
	}
	sorted := make([]domain.DateKey, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	unique := sorted[:1]
	for _, d := range sorted[1:] {
		if d != unique[len(unique)-1] {
			unique = append(unique, d)
		}
	}
	return unique
}

// ─── Milestones & Display Status ────────────────────────────────────────────

// milestones are the celebrated streak lengths, ascending.
var milestones = []int{3, 7, 14, 30, 60, 90, 180, 365}

// NextMilestone returns the first milestone exceeding the current streak,
// or 0 when every milestone has been passed.
func NextMilestone(current int) int {
	for _, m := range milestones {
		if m > current {
			return m
		}
	}
	return 0
}

// Status buckets a current streak into a display label.
func Status(current int) string {
	switch {
	case current >= 90:
		return "legendary"
	case current >= 30:
		return "expert"
	case current >= 7:
		return "dedicated"
	case current >= 3:
		return "consistent"
	case current >= 1:
		return "beginner"
	default:
		return "new"
	}
}

// ─── Reconciliation ─────────────────────────────────────────────────────────

// Reconcile validates cached writing-streak counters against a fresh
// recomputation and returns the corrected cache plus whether it changed.
// Longest never shrinks: the cache may remember a run whose entries were
// since deleted, and that record stands.
func Reconcile(cached domain.WritingStreak, recomputed domain.StreakResult) (domain.WritingStreak, bool) {
	corrected := domain.WritingStreak{
		Current: recomputed.CurrentStreak,
		Longest: recomputed.LongestStreak,
		LastDay: recomputed.LastActivity,
	}
	if cached.Longest > corrected.Longest {
		corrected.Longest = cached.Longest
	}
	return corrected, corrected != cached
}
