// Package journal handles account and entry lifecycle. Streak math,
// prompts, and progression live in their own packages and consume what
// this one stores.
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/domain"
	"github.com/inkwell-app/inkwell/internal/infra/metrics"
	"github.com/inkwell-app/inkwell/internal/infra/sqlite"
)

// Service creates users and journal entries.
type Service struct {
	db *sqlite.DB
}

// NewService creates a journal service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// CreateUser registers a new account with zeroed streak state.
// timezone may be empty (journal default) or an IANA name.
func (s *Service) CreateUser(timezone string, now time.Time) (*domain.User, error) {
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", timezone, err)
		}
	}

	u := domain.User{
		ID:        uuid.New(),
		CreatedAt: now.UTC(),
		Timezone:  timezone,
	}
	if err := s.db.CreateUser(u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Get loads a user.
func (s *Service) Get(userID uuid.UUID) (*domain.User, error) {
	return s.db.GetUser(userID)
}

// AddEntry stores a new journal entry. Content must be non-empty after
// trimming; promptID is empty for freeform entries.
func (s *Service) AddEntry(userID uuid.UUID, content, promptID string, now time.Time) (domain.Entry, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Entry{}, domain.ErrEmptyContent
	}
	if _, err := s.db.GetUser(userID); err != nil {
		return domain.Entry{}, err
	}

	e := domain.Entry{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now.UTC(),
		Content:   content,
		PromptID:  promptID,
		WordCount: domain.CountWords(content),
	}
	if err := s.db.InsertEntry(e); err != nil {
		return domain.Entry{}, err
	}

	metrics.EntriesCreated.Inc()
	metrics.WordsWritten.Add(float64(e.WordCount))
	return e, nil
}

// Entries returns a user's entries, newest first.
func (s *Service) Entries(userID uuid.UUID, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.db.ListEntries(userID, limit)
}
