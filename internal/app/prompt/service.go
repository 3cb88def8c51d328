package prompt

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/infra/metrics"
	"github.com/inkwell-app/inkwell/internal/infra/sqlite"
)

// Service runs the prompt completion flow against stored user records.
// Writes go through a compare-and-swap on last_prompt_date, so two
// same-day requests racing each other cannot double-count a completion.
type Service struct {
	db  *sqlite.DB
	loc *time.Location
}

// NewService creates a prompt service with the given default day boundary.
func NewService(db *sqlite.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{db: db, loc: loc}
}

// TodayState is the daily prompt view for one user.
type TodayState struct {
	Prompt    domain.Prompt `json:"prompt"`
	Completed bool          `json:"completed"`
	Date      domain.DateKey `json:"date"`
}

// Today returns today's prompt and whether the user already handled it.
func (s *Service) Today(userID uuid.UUID, now time.Time) (TodayState, error) {
	user, err := s.db.GetUser(userID)
	if err != nil {
		return TodayState{}, err
	}
	today := domain.NewDateKey(now, user.Location(s.loc))
	return TodayState{
		Prompt:    ForDay(today),
		Completed: Completed(user.Prompt, today),
		Date:      today,
	}, nil
}

// Complete claims today's prompt credit. A repeat on the same day — or a
// lost race against a concurrent request — returns ErrAlreadyCompleted
// with the record unchanged.
func (s *Service) Complete(userID uuid.UUID, now time.Time) (domain.PromptRecord, error) {
	user, err := s.db.GetUser(userID)
	if err != nil {
		return domain.PromptRecord{}, err
	}
	today := domain.NewDateKey(now, user.Location(s.loc))

	rec, err := Complete(user.Prompt, today)
	if err != nil {
		metrics.PromptCompletions.WithLabelValues("rejected").Inc()
		return user.Prompt, err
	}

	swapped, err := s.db.SwapPromptRecord(userID, user.Prompt.LastPromptDate, rec)
	if err != nil {
		return user.Prompt, err
	}
	if !swapped {
		// Someone else stamped today between our read and write.
		metrics.PromptCompletions.WithLabelValues("rejected").Inc()
		return user.Prompt, domain.ErrAlreadyCompleted
	}

	metrics.PromptCompletions.WithLabelValues("completed").Inc()
	return rec, nil
}

// Skip marks today handled without touching the streak or the total.
// Never fails on a same-day repeat: the record simply comes back as-is.
func (s *Service) Skip(userID uuid.UUID, now time.Time) (domain.PromptRecord, error) {
	user, err := s.db.GetUser(userID)
	if err != nil {
		return domain.PromptRecord{}, err
	}
	today := domain.NewDateKey(now, user.Location(s.loc))

	rec := Skip(user.Prompt, today)
	if rec == user.Prompt {
		return rec, nil
	}

	swapped, err := s.db.SwapPromptRecord(userID, user.Prompt.LastPromptDate, rec)
	if err != nil {
		return user.Prompt, err
	}
	if !swapped {
		// A concurrent complete or skip won; report the stored state.
		fresh, err := s.db.GetUser(userID)
		if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return user.Prompt, err
		}
		if fresh != nil {
			return fresh.Prompt, nil
		}
		return user.Prompt, nil
	}

	metrics.PromptCompletions.WithLabelValues("skipped").Inc()
	return rec, nil
}
