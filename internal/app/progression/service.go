package progression

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/app/streak"
	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/infra/sqlite"
)

// Service builds EntryStats snapshots from storage and projects them
// through the level curve and the achievement catalog.
type Service struct {
	db  *sqlite.DB
	loc *time.Location
}

// NewService creates a progression service.
func NewService(db *sqlite.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc}
}

// Stats computes the aggregate snapshot plus the derived level view.
func (s *Service) Stats(userID uuid.UUID, now time.Time) (domain.EntryStats, domain.LevelInfo, error) {
	user, err := s.db.GetUser(userID)
	if err != nil {
		return domain.EntryStats{}, domain.LevelInfo{}, err
	}

	totalEntries, totalWords, uniquePrompts, err := s.db.EntryAggregates(userID)
	if err != nil {
		return domain.EntryStats{}, domain.LevelInfo{}, err
	}

	stats := domain.EntryStats{
		TotalEntries:  totalEntries,
		TotalWords:    totalWords,
		UniquePrompts: uniquePrompts,
	}
	if totalEntries > 0 {
		stats.AverageWords = float64(totalWords) / float64(totalEntries)
	}

	loc := user.Location(s.loc)
	stamps, err := s.db.EntryTimestamps(userID)
	if err != nil {
		return stats, domain.LevelInfo{}, fmt.Errorf("load entry days: %w", err)
	}
	days := make([]domain.DateKey, len(stamps))
	for i, t := range stamps {
		days[i] = domain.NewDateKey(t, loc)
	}
	result := streak.Calculate(days, domain.NewDateKey(now, loc))
	stats.LongestStreak = result.LongestStreak

	return stats, ComputeLevel(totalWords), nil
}

// Achievements evaluates the full catalog for one user.
func (s *Service) Achievements(userID uuid.UUID, now time.Time) ([]domain.AchievementStatus, error) {
	stats, _, err := s.Stats(userID, now)
	if err != nil {
		return nil, err
	}
	return Evaluate(stats), nil
}
