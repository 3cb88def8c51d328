package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell-app/inkwell/internal/domain"
)

// ─── User Repository ────────────────────────────────────────────────────────

// CreateUser inserts a fresh user row with zeroed streak state.
func (d *DB) CreateUser(u domain.User) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, created_at, timezone) VALUES (?, ?, ?)`,
		u.ID.String(), u.CreatedAt.Unix(), u.Timezone,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetUser loads a user with both streak records.
func (d *DB) GetUser(id uuid.UUID) (*domain.User, error) {
	row := d.db.QueryRow(
		`SELECT id, created_at, timezone,
		        last_prompt_date, prompt_streak, total_prompts_completed,
		        writing_streak, longest_writing_streak, last_writing_date
		 FROM users WHERE id = ?`, id.String(),
	)

	var (
		u          domain.User
		idStr      string
		createdAt  int64
		lastPrompt sql.NullString
		lastWrite  sql.NullString
	)
	err := row.Scan(&idStr, &createdAt, &u.Timezone,
		&lastPrompt, &u.Prompt.PromptStreak, &u.Prompt.TotalPromptsCompleted,
		&u.Writing.Current, &u.Writing.Longest, &lastWrite)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, err = uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	if lastPrompt.Valid {
		u.Prompt.LastPromptDate = domain.DateKey(lastPrompt.String)
	}
	if lastWrite.Valid {
		u.Writing.LastDay = domain.DateKey(lastWrite.String)
	}
	return &u, nil
}

// ListUserIDs returns every user id. Used by the reconciliation sweep.
func (d *DB) ListUserIDs() ([]uuid.UUID, error) {
	rows, err := d.db.Query(`SELECT id FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse user id %q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SwapPromptRecord writes the prompt record iff the stored last_prompt_date
// still matches what the caller read. A false return means a concurrent
// writer got there first and the caller must re-read — this is the
// compare-and-swap that protects same-day complete/skip races.
func (d *DB) SwapPromptRecord(id uuid.UUID, prev domain.DateKey, rec domain.PromptRecord) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE users
		 SET last_prompt_date = ?, prompt_streak = ?, total_prompts_completed = ?
		 WHERE id = ? AND IFNULL(last_prompt_date, '') = ?`,
		nullableKey(rec.LastPromptDate), rec.PromptStreak, rec.TotalPromptsCompleted,
		id.String(), string(prev),
	)
	if err != nil {
		return false, fmt.Errorf("swap prompt record: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SaveWritingStreak overwrites the cached writing-streak counters.
func (d *DB) SaveWritingStreak(id uuid.UUID, ws domain.WritingStreak) error {
	result, err := d.db.Exec(
		`UPDATE users
		 SET writing_streak = ?, longest_writing_streak = ?, last_writing_date = ?
		 WHERE id = ?`,
		ws.Current, ws.Longest, nullableKey(ws.LastDay), id.String(),
	)
	if err != nil {
		return fmt.Errorf("save writing streak: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ─── Entry Repository ───────────────────────────────────────────────────────

// InsertEntry stores a journal entry. WordCount must already be set.
func (d *DB) InsertEntry(e domain.Entry) error {
	_, err := d.db.Exec(
		`INSERT INTO entries (id, user_id, created_at, content, prompt_id, word_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.UserID.String(), e.CreatedAt.Unix(),
		e.Content, e.PromptID, e.WordCount,
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// ListEntries returns a user's entries, newest first.
func (d *DB) ListEntries(userID uuid.UUID, limit int) ([]domain.Entry, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, created_at, content, prompt_id, word_count
		 FROM entries WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`,
		userID.String(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			e         domain.Entry
			idStr     string
			userStr   string
			createdAt int64
		)
		if err := rows.Scan(&idStr, &userStr, &createdAt, &e.Content, &e.PromptID, &e.WordCount); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(idStr); err != nil {
			return nil, fmt.Errorf("parse entry id: %w", err)
		}
		if e.UserID, err = uuid.Parse(userStr); err != nil {
			return nil, fmt.Errorf("parse entry user id: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// EntryTimestamps returns the creation instants of all of a user's entries.
// DateKey derivation happens in the caller, where the user's day-boundary
// location is known.
func (d *DB) EntryTimestamps(userID uuid.UUID) ([]time.Time, error) {
	rows, err := d.db.Query(
		`SELECT created_at FROM entries WHERE user_id = ? ORDER BY created_at`,
		userID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stamps []time.Time
	for rows.Next() {
		var unix int64
		if err := rows.Scan(&unix); err != nil {
			return nil, err
		}
		stamps = append(stamps, time.Unix(unix, 0).UTC())
	}
	return stamps, rows.Err()
}

// EntryAggregates returns the sums behind EntryStats in one query.
func (d *DB) EntryAggregates(userID uuid.UUID) (totalEntries int, totalWords int64, uniquePrompts int, err error) {
	row := d.db.QueryRow(
		`SELECT COUNT(*),
		        IFNULL(SUM(word_count), 0),
		        COUNT(DISTINCT CASE WHEN prompt_id != '' THEN prompt_id END)
		 FROM entries WHERE user_id = ?`,
		userID.String(),
	)
	if err = row.Scan(&totalEntries, &totalWords, &uniquePrompts); err != nil {
		return 0, 0, 0, fmt.Errorf("entry aggregates: %w", err)
	}
	return totalEntries, totalWords, uniquePrompts, nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func nullableKey(k domain.DateKey) sql.NullString {
	if k.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: string(k), Valid: true}
}
