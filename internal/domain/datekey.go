// Package domain holds the pure journal types shared across Inkwell.
// Domain types are infrastructure-free — streak math, levels, and
// achievements operate on these and nothing else.
package domain

import (
	"fmt"
	"time"
)

// DateKey identifies a calendar day as "YYYY-MM-DD" in the journal's
// reference location. Lexicographic order on DateKeys equals
// chronological order, so they sort and compare as plain strings.
type DateKey string

const dateKeyLayout = "2006-01-02"

// NewDateKey derives the DateKey for an instant in the given location.
// A nil location means UTC.
func NewDateKey(t time.Time, loc *time.Location) DateKey {
	if loc == nil {
		loc = time.UTC
	}
	return DateKey(t.In(loc).Format(dateKeyLayout))
}

// ParseDateKey validates a "YYYY-MM-DD" string. Malformed input returns
// ErrInvalidDate before any caller state can be touched.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	// time.Parse accepts a few non-canonical spellings; require round-trip.
	if t.Format(dateKeyLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateKey(s), nil
}

// IsZero reports whether the key is unset (no activity recorded).
func (d DateKey) IsZero() bool { return d == "" }

// Time returns midnight of the day in UTC.
func (d DateKey) Time() time.Time {
	t, _ := time.Parse(dateKeyLayout, string(d))
	return t
}

// AddDays returns the key n days after d. Negative n goes backward.
func (d DateKey) AddDays(n int) DateKey {
	return DateKey(d.Time().AddDate(0, 0, n).Format(dateKeyLayout))
}

// DaysSince returns the whole-day distance from other to d.
// Positive when d is later than other.
func (d DateKey) DaysSince(other DateKey) int {
	return int(d.Time().Sub(other.Time()) / (24 * time.Hour))
}
