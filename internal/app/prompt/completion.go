// Package prompt implements the daily writing prompt flow: which prompt is
// offered today, and the completion state machine that gates streak credit.
package prompt

import (
	"github.com/inkwell-app/inkwell/internal/domain"
)

// Completed reports whether today's prompt has been handled, by completion
// or by skip. Both stamp LastPromptDate, which is the single guard.
func Completed(rec domain.PromptRecord, today domain.DateKey) bool {
	return rec.LastPromptDate == today
}

// Complete applies a prompt completion to the record and returns the new
// state. ErrAlreadyCompleted if today is already handled; the input record
// is returned unchanged in that case. A gap of exactly one day extends the
// streak; a longer gap (or a first-ever completion) restarts it at 1.
func Complete(rec domain.PromptRecord, today domain.DateKey) (domain.PromptRecord, error) {
	if rec.LastPromptDate == today {
		return rec, domain.ErrAlreadyCompleted
	}

	switch {
	case rec.LastPromptDate.IsZero():
		rec.PromptStreak = 1
	case today.DaysSince(rec.LastPromptDate) == 1:
		rec.PromptStreak++
	default:
		rec.PromptStreak = 1
	}

	rec.LastPromptDate = today
	rec.TotalPromptsCompleted++
	return rec, nil
}

// Skip marks today as handled without advancing the streak or the total.
// A skip freezes the streak rather than breaking it: tomorrow's completion
// will see a 1-day gap and continue the run. No-op when today is already
// handled, so skipping twice (or skipping after completing) changes nothing.
func Skip(rec domain.PromptRecord, today domain.DateKey) domain.PromptRecord {
	if rec.LastPromptDate == today {
		return rec
	}
	rec.LastPromptDate = today
	return rec
}
