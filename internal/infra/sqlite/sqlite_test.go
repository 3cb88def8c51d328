package sqlite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-app/inkwell/internal/domain"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testUser(t *testing.T, db *DB) domain.User {
	t.Helper()
	u := domain.User{
		ID:        uuid.New(),
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Timezone:  "Europe/Berlin",
	}
	require.NoError(t, db.CreateUser(u))
	return u
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	db1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, db1.Close())

	// Reopening runs migrations against an existing schema.
	db2, err := Open(dir)
	require.NoError(t, err)
	assert.NoError(t, db2.Ping())
	require.NoError(t, db2.Close())
}

func TestUserRoundTrip(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db)

	got, err := db.GetUser(u.ID)
	require.NoError(t, err)

	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Europe/Berlin", got.Timezone)
	assert.True(t, got.Prompt.LastPromptDate.IsZero())
	assert.Zero(t, got.Prompt.PromptStreak)
	assert.Zero(t, got.Writing.Current)
	assert.True(t, got.Writing.LastDay.IsZero())
}

func TestGetUserNotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetUser(uuid.New())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUserIDs(t *testing.T) {
	db := testDB(t)

	ids, err := db.ListUserIDs()
	require.NoError(t, err)
	assert.Empty(t, ids)

	u1 := testUser(t, db)
	u2 := testUser(t, db)

	ids, err = db.ListUserIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{u1.ID, u2.ID}, ids)
}

func TestSwapPromptRecord(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db)

	rec := domain.PromptRecord{
		LastPromptDate:        "2024-01-10",
		PromptStreak:          1,
		TotalPromptsCompleted: 1,
	}

	// First swap from the empty record succeeds.
	swapped, err := db.SwapPromptRecord(u.ID, "", rec)
	require.NoError(t, err)
	assert.True(t, swapped)

	got, err := db.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got.Prompt)

	// A second swap against the stale empty precondition loses.
	swapped, err = db.SwapPromptRecord(u.ID, "", domain.PromptRecord{
		LastPromptDate: "2024-01-10", PromptStreak: 1, TotalPromptsCompleted: 1,
	})
	require.NoError(t, err)
	assert.False(t, swapped)

	// The stored record is untouched by the lost swap.
	got, err = db.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got.Prompt)

	// Swapping with the current date as precondition succeeds.
	next := domain.PromptRecord{
		LastPromptDate:        "2024-01-11",
		PromptStreak:          2,
		TotalPromptsCompleted: 2,
	}
	swapped, err = db.SwapPromptRecord(u.ID, "2024-01-10", next)
	require.NoError(t, err)
	assert.True(t, swapped)
}

func TestSaveWritingStreak(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db)

	ws := domain.WritingStreak{Current: 4, Longest: 9, LastDay: "2024-02-01"}
	require.NoError(t, db.SaveWritingStreak(u.ID, ws))

	got, err := db.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, ws, got.Writing)
}

func TestSaveWritingStreakUnknownUser(t *testing.T) {
	db := testDB(t)

	err := db.SaveWritingStreak(uuid.New(), domain.WritingStreak{Current: 1})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestEntryListingAndTimestamps(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db)

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := domain.Entry{
			ID:        uuid.New(),
			UserID:    u.ID,
			CreatedAt: base.AddDate(0, 0, i),
			Content:   "day note",
			WordCount: 2,
		}
		require.NoError(t, db.InsertEntry(e))
	}

	entries, err := db.ListEntries(u.ID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	// Newest first.
	assert.True(t, entries[0].CreatedAt.After(entries[1].CreatedAt))
	assert.True(t, entries[1].CreatedAt.After(entries[2].CreatedAt))

	entries, err = db.ListEntries(u.ID, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	stamps, err := db.EntryTimestamps(u.ID)
	require.NoError(t, err)
	require.Len(t, stamps, 3)
	// Oldest first.
	assert.Equal(t, base, stamps[0])
	assert.True(t, stamps[0].Before(stamps[1]))
}

func TestEntryAggregates(t *testing.T) {
	db := testDB(t)
	u := testUser(t, db)

	entries, words, prompts, err := db.EntryAggregates(u.ID)
	require.NoError(t, err)
	assert.Zero(t, entries)
	assert.Zero(t, words)
	assert.Zero(t, prompts)

	insert := func(promptID string, wordCount int) {
		require.NoError(t, db.InsertEntry(domain.Entry{
			ID:        uuid.New(),
			UserID:    u.ID,
			CreatedAt: time.Now(),
			Content:   "x",
			PromptID:  promptID,
			WordCount: wordCount,
		}))
	}
	insert("gratitude", 100)
	insert("gratitude", 50) // same prompt counted once
	insert("future_self", 30)
	insert("", 20) // freeform entries never count as prompts

	entries, words, prompts, err = db.EntryAggregates(u.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, entries)
	assert.Equal(t, int64(200), words)
	assert.Equal(t, 2, prompts)
}

func TestEntriesScopedToUser(t *testing.T) {
	db := testDB(t)
	u1 := testUser(t, db)
	u2 := testUser(t, db)

	require.NoError(t, db.InsertEntry(domain.Entry{
		ID: uuid.New(), UserID: u1.ID, CreatedAt: time.Now(),
		Content: "mine", WordCount: 1,
	}))

	entries, err := db.ListEntries(u2.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = db.ListEntries(u1.ID, 10)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
