// Package progression implements the XP/level curve and the achievement
// evaluator. Both are pure projections of an EntryStats snapshot; nothing
// in this package persists state.
package progression

import (
	"math"

	"github.com/inkwell-app/inkwell/internal/domain"
)

// maxLevel caps the curve. The formula still yields a finite next-level
// span at the cap, so LevelInfo invariants hold there too.
const maxLevel = 100

// XPForLevel returns the cumulative XP required to reach a level.
// Curve: 100 * (level-1)^1.5, so L1=0, L2=100, L3=282, L4=519, ...
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(100 * math.Pow(float64(level-1), 1.5))
}

// LevelForXP returns the level reached with a given cumulative XP.
func LevelForXP(xp int64) int {
	level := 1
	for level < maxLevel {
		if xp < XPForLevel(level+1) {
			return level
		}
		level++
	}
	return maxLevel
}

// ComputeLevel derives the full level view from total words written.
// XP is 1 per word. Negative input is treated as 0.
func ComputeLevel(totalWords int64) domain.LevelInfo {
	xp := totalWords
	if xp < 0 {
		xp = 0
	}

	level := LevelForXP(xp)
	floor := XPForLevel(level)
	need := XPForLevel(level+1) - floor

	info := domain.LevelInfo{
		Level:                level,
		ExperiencePoints:     xp,
		XPInCurrentLevel:     xp - floor,
		XPNeededForNextLevel: need,
	}
	if info.XPInCurrentLevel < 0 {
		info.XPInCurrentLevel = 0
	}

	info.ProgressPercentage = 100 * float64(info.XPInCurrentLevel) / float64(need)
	if info.ProgressPercentage > 100 {
		info.ProgressPercentage = 100
	}
	if info.ProgressPercentage < 0 {
		info.ProgressPercentage = 0
	}
	return info
}
