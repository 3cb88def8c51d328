package streak

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/infra/metrics"
	"github.com/inkwell-app/inkwell/internal/infra/sqlite"
)

// Service recomputes writing streaks from stored entry timestamps and
// keeps the per-user cached counters honest.
type Service struct {
	db  *sqlite.DB
	loc *time.Location // journal default day boundary
}

// NewService creates a streak service. loc is the default day-boundary
// location for users without a timezone preference.
func NewService(db *sqlite.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc}
}

// ForUser returns the current writing-streak view for one user,
// recomputed from entry dates. When the persisted cache disagrees with
// the recomputation it is overwritten (recompute-on-read reconciliation).
func (s *Service) ForUser(userID uuid.UUID, now time.Time) (domain.StreakResult, error) {
	user, err := s.db.GetUser(userID)
	if err != nil {
		return domain.StreakResult{}, err
	}

	loc := user.Location(s.loc)
	stamps, err := s.db.EntryTimestamps(userID)
	if err != nil {
		return domain.StreakResult{}, fmt.Errorf("load entry days: %w", err)
	}

	days := make([]domain.DateKey, len(stamps))
	for i, t := range stamps {
		days[i] = domain.NewDateKey(t, loc)
	}

	result := Calculate(days, domain.NewDateKey(now, loc))

	corrected, changed := Reconcile(user.Writing, result)
	if changed {
		if err := s.db.SaveWritingStreak(userID, corrected); err != nil {
			return result, fmt.Errorf("heal writing streak: %w", err)
		}
		metrics.StreakCorrections.Inc()
	}
	// The view reflects the corrected cache, so a remembered longest run
	// survives entry deletion.
	result.LongestStreak = corrected.Longest
	return result, nil
}

// ReconcileAll sweeps every user and self-heals stale cached counters.
// Returns the number of corrected users. Run nightly by the daemon.
func (s *Service) ReconcileAll(now time.Time) (int, error) {
	start := time.Now()
	defer func() {
		metrics.ReconcileSweepDuration.Observe(time.Since(start).Seconds())
	}()

	ids, err := s.db.ListUserIDs()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	corrected := 0
	for _, id := range ids {
		user, err := s.db.GetUser(id)
		if err != nil {
			return corrected, err
		}
		before := user.Writing
		if _, err := s.ForUser(id, now); err != nil {
			return corrected, err
		}
		after, err := s.db.GetUser(id)
		if err != nil {
			return corrected, err
		}
		if after.Writing != before {
			corrected++
		}
	}
	return corrected, nil
}
