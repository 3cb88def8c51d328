package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ─── Users & Entries ────────────────────────────────────────────────────────

// User is a journal account. Two independent streak lineages hang off it:
// the prompt-completion streak (Prompt) and the entry-writing streak
// (Writing). They can disagree and are never merged.
type User struct {
	ID        uuid.UUID     `json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	Timezone  string        `json:"timezone,omitempty"` // IANA name; empty = journal default
	Prompt    PromptRecord  `json:"prompt"`
	Writing   WritingStreak `json:"writing"`
}

// Location resolves the user's day-boundary location, falling back to the
// given default when the user has no preference or the name is invalid.
func (u User) Location(fallback *time.Location) *time.Location {
	if u.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// Entry is a single journal entry. Content is used only for word counting;
// PromptID is set when the entry answers a daily prompt.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	PromptID  string    `json:"prompt_id,omitempty"`
	WordCount int       `json:"word_count"`
}

// CountWords counts non-empty whitespace-separated tokens.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakResult is the derived streak view, recomputed on every query.
type StreakResult struct {
	CurrentStreak   int     `json:"current_streak"`
	LongestStreak   int     `json:"longest_streak"`
	LastActivity    DateKey `json:"last_activity,omitempty"`
	TotalActiveDays int     `json:"total_active_days"`
}

// WritingStreak is the persisted entry-streak cache on the user row.
// It is a denormalization of StreakCalculator output and is self-healed
// against the recomputation whenever the two disagree.
type WritingStreak struct {
	Current int     `json:"writing_streak"`
	Longest int     `json:"longest_writing_streak"`
	LastDay DateKey `json:"last_writing_date,omitempty"`
}

// PromptRecord tracks daily-prompt completion state for one user.
// LastPromptDate doubles as the "handled today" marker: both complete and
// skip stamp it, which is the single guard for same-day repeats.
type PromptRecord struct {
	LastPromptDate        DateKey `json:"last_prompt_date,omitempty"`
	PromptStreak          int     `json:"prompt_streak"`
	TotalPromptsCompleted int     `json:"total_prompts_completed"`
}

// ─── Level / XP Types ───────────────────────────────────────────────────────

// LevelInfo is the derived level view. XP is 1 per word written, so it is
// monotonically non-decreasing over the life of an account.
type LevelInfo struct {
	Level                int     `json:"level"`
	ExperiencePoints     int64   `json:"experience_points"`
	XPInCurrentLevel     int64   `json:"xp_in_current_level"`
	XPNeededForNextLevel int64   `json:"xp_needed_for_next_level"`
	ProgressPercentage   float64 `json:"progress_percentage"`
}

// ─── Stats & Achievement Types ──────────────────────────────────────────────

// EntryStats is the aggregate snapshot fed to level and achievement
// computation. Missing source data simply leaves fields at zero.
type EntryStats struct {
	TotalEntries  int     `json:"total_entries"`
	TotalWords    int64   `json:"total_words"`
	AverageWords  float64 `json:"average_words"`
	LongestStreak int     `json:"longest_streak"`
	UniquePrompts int     `json:"unique_prompts"`
}

// AchievementDef defines one achievement: a single numeric threshold
// against one stat field. There is no persisted unlock state — unlocking
// is an always-current predicate over EntryStats.
type AchievementDef struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Icon        string                  `json:"icon"`
	Threshold   float64                 `json:"threshold"`
	Stat        func(EntryStats) float64 `json:"-"`
}

// AchievementStatus is the evaluated view of one achievement.
type AchievementStatus struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Icon            string  `json:"icon"`
	Unlocked        bool    `json:"unlocked"`
	ProgressPercent float64 `json:"progress_percent"`
}

// ─── Daily Prompts ──────────────────────────────────────────────────────────

// Prompt is one writing prompt from the fixed catalog.
type Prompt struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
