package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/app/journal"
	"github.com/inkwell-app/inkwell/internal/app/progression"
	"github.com/inkwell-app/inkwell/internal/app/prompt"
	"github.com/inkwell-app/inkwell/internal/app/streak"
	"github.com/inkwell-app/inkwell/internal/domain"
)

// JournalAPI bundles the journal route handlers and their services.
type JournalAPI struct {
	Journal     *journal.Service
	Streaks     *streak.Service
	Prompts     *prompt.Service
	Progression *progression.Service

	// now is the request clock, swappable in tests.
	now func() time.Time
}

// NewJournalAPI wires the handlers to their services.
func NewJournalAPI(j *journal.Service, st *streak.Service, p *prompt.Service, pr *progression.Service) *JournalAPI {
	return &JournalAPI{
		Journal:     j,
		Streaks:     st,
		Prompts:     p,
		Progression: pr,
		now:         time.Now,
	}
}

// SetClock overrides the request clock. Tests only.
func (a *JournalAPI) SetClock(now func() time.Time) { a.now = now }

// userID extracts and validates the {id} route parameter.
func userID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// writeDomainError maps domain sentinels to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrEmptyContent),
		errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- POST /api/journal/users ---

type createUserRequest struct {
	Timezone string `json:"timezone,omitempty"`
}

func (a *JournalAPI) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	user, err := a.Journal.CreateUser(req.Timezone, a.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// --- POST /api/journal/users/{id}/entries ---

type addEntryRequest struct {
	Content  string `json:"content"`
	PromptID string `json:"prompt_id,omitempty"`
}

func (a *JournalAPI) HandleAddEntry(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.Journal.AddEntry(id, req.Content, req.PromptID, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// --- GET /api/journal/users/{id}/entries ---

func (a *JournalAPI) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	entries, err := a.Journal.Entries(id, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}

// --- GET /api/journal/users/{id}/streak ---

func (a *JournalAPI) HandleStreak(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	result, err := a.Streaks.ForUser(id, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"current_streak":    result.CurrentStreak,
		"longest_streak":    result.LongestStreak,
		"last_activity":     result.LastActivity,
		"total_active_days": result.TotalActiveDays,
		"next_milestone":    streak.NextMilestone(result.CurrentStreak),
		"streak_status":     streak.Status(result.CurrentStreak),
	})
}

// --- GET /api/journal/users/{id}/stats ---

func (a *JournalAPI) HandleStats(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	stats, level, err := a.Progression.Stats(id, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_entries":            stats.TotalEntries,
		"total_words":              stats.TotalWords,
		"average_words":            stats.AverageWords,
		"unique_prompts":           stats.UniquePrompts,
		"level":                    level.Level,
		"experience_points":        level.ExperiencePoints,
		"xp_in_current_level":      level.XPInCurrentLevel,
		"xp_needed_for_next_level": level.XPNeededForNextLevel,
		"progress_percentage":      level.ProgressPercentage,
	})
}

// --- GET /api/journal/users/{id}/achievements ---

func (a *JournalAPI) HandleAchievements(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	statuses, err := a.Progression.Achievements(id, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": statuses,
	})
}

// --- GET /api/journal/prompts/today ---

func (a *JournalAPI) HandlePromptOfTheDay(w http.ResponseWriter, r *http.Request) {
	today := domain.NewDateKey(a.now(), nil)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":   today,
		"prompt": prompt.ForDay(today),
	})
}

// --- GET /api/journal/users/{id}/prompt/today ---

func (a *JournalAPI) HandlePromptToday(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	state, err := a.Prompts.Today(id, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// --- POST /api/journal/users/{id}/prompt/complete ---

func (a *JournalAPI) HandlePromptComplete(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	rec, err := a.Prompts.Complete(id, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// --- POST /api/journal/users/{id}/prompt/skip ---

func (a *JournalAPI) HandlePromptSkip(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	rec, err := a.Prompts.Skip(id, a.now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
