package progression

import (
	"sort"

	"github.com/inkwell-app/inkwell/internal/domain"
)

// Evaluate projects the achievement catalog onto a stats snapshot.
// No unlock state is stored anywhere — "unlocked" is recomputed on every
// view, so deleting entries can re-lock an achievement. Display order:
// unlocked first (catalog order), then locked by descending progress.
func Evaluate(stats domain.EntryStats) []domain.AchievementStatus {
	defs := Definitions()
	statuses := make([]domain.AchievementStatus, len(defs))
	for i, def := range defs {
		value := def.Stat(stats)
		pct := 100 * value / def.Threshold
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		statuses[i] = domain.AchievementStatus{
			ID:              def.ID,
			Name:            def.Name,
			Description:     def.Description,
			Icon:            def.Icon,
			Unlocked:        value >= def.Threshold,
			ProgressPercent: pct,
		}
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].Unlocked != statuses[j].Unlocked {
			return statuses[i].Unlocked
		}
		if statuses[i].Unlocked {
			return false // unlocked keep catalog order
		}
		return statuses[i].ProgressPercent > statuses[j].ProgressPercent
	})
	return statuses
}

// ─── Achievement Catalog ────────────────────────────────────────────────────
// Each achievement is a single threshold against one EntryStats field.

func entries(s domain.EntryStats) float64 { return float64(s.TotalEntries) }
func words(s domain.EntryStats) float64   { return float64(s.TotalWords) }
func streakDays(s domain.EntryStats) float64 {
	return float64(s.LongestStreak)
}
func prompts(s domain.EntryStats) float64 { return float64(s.UniquePrompts) }
func avgWords(s domain.EntryStats) float64 {
	return s.AverageWords
}

// Definitions returns the full achievement catalog.
func Definitions() []domain.AchievementDef {
	return []domain.AchievementDef{
		// ── Entries ────────────────────────────────────────────────────
		{
			ID: "first_entry", Name: "First Page", Icon: "📝",
			Description: "Write your first journal entry.",
			Threshold:   1, Stat: entries,
		},
		{
			ID: "entries_10", Name: "Ten Pages", Icon: "📄",
			Description: "Write 10 journal entries.",
			Threshold:   10, Stat: entries,
		},
		{
			ID: "entries_50", Name: "Chronicler", Icon: "📖",
			Description: "Write 50 journal entries.",
			Threshold:   50, Stat: entries,
		},
		{
			ID: "entries_100", Name: "Century of Pages", Icon: "📚",
			Description: "Write 100 journal entries.",
			Threshold:   100, Stat: entries,
		},

		// ── Words ──────────────────────────────────────────────────────
		{
			ID: "words_1000", Name: "Thousand Words", Icon: "✍️",
			Description: "Write 1,000 words in total.",
			Threshold:   1000, Stat: words,
		},
		{
			ID: "words_10000", Name: "Wordsmith", Icon: "🖋️",
			Description: "Write 10,000 words in total.",
			Threshold:   10000, Stat: words,
		},
		{
			ID: "words_50000", Name: "Novel-Length", Icon: "📕",
			Description: "Write 50,000 words in total — the length of a novel.",
			Threshold:   50000, Stat: words,
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Name: "Warming Up", Icon: "🕯️",
			Description: "Write on 3 consecutive days.",
			Threshold:   3, Stat: streakDays,
		},
		{
			ID: "streak_7", Name: "Week of Ink", Icon: "🔥",
			Description: "Write on 7 consecutive days.",
			Threshold:   7, Stat: streakDays,
		},
		{
			ID: "streak_30", Name: "Monthly Habit", Icon: "💪",
			Description: "Write on 30 consecutive days.",
			Threshold:   30, Stat: streakDays,
		},
		{
			ID: "streak_90", Name: "Season of Writing", Icon: "🌱",
			Description: "Write on 90 consecutive days.",
			Threshold:   90, Stat: streakDays,
		},
		{
			ID: "streak_365", Name: "Year of Ink", Icon: "⭐",
			Description: "Write on 365 consecutive days.",
			Threshold:   365, Stat: streakDays,
		},

		// ── Prompts ────────────────────────────────────────────────────
		{
			ID: "prompts_5", Name: "Prompted", Icon: "💡",
			Description: "Answer 5 different daily prompts.",
			Threshold:   5, Stat: prompts,
		},
		{
			ID: "prompts_20", Name: "Prompt Explorer", Icon: "🧭",
			Description: "Answer 20 different daily prompts.",
			Threshold:   20, Stat: prompts,
		},

		// ── Depth ──────────────────────────────────────────────────────
		{
			ID: "avg_100", Name: "Long-Form", Icon: "🗒️",
			Description: "Average 100 words per entry.",
			Threshold:   100, Stat: avgWords,
		},
	}
}
