package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/inkwell-app/inkwell/internal/api"
	"github.com/inkwell-app/inkwell/internal/app/journal"
	"github.com/inkwell-app/inkwell/internal/app/progression"
	"github.com/inkwell-app/inkwell/internal/app/prompt"
	"github.com/inkwell-app/inkwell/internal/app/streak"
	"github.com/inkwell-app/inkwell/internal/infra/sqlite"
)

// harness is a full API stack on a temp database with a frozen clock.
type harness struct {
	srv   *httptest.Server
	clock time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h := &harness{
		clock: time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC),
	}

	journalAPI := api.NewJournalAPI(
		journal.NewService(db),
		streak.NewService(db, time.UTC),
		prompt.NewService(db, time.UTC),
		progression.NewService(db, time.UTC),
	)
	journalAPI.SetClock(func() time.Time { return h.clock })

	h.srv = httptest.NewServer(api.NewServer(journalAPI).Handler())
	t.Cleanup(h.srv.Close)
	return h
}

func (h *harness) advanceDays(n int) {
	h.clock = h.clock.AddDate(0, 0, n)
}

// do issues a request and decodes the JSON response into out (if non-nil).
func (h *harness) do(t *testing.T, method, path string, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, h.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func (h *harness) createUser(t *testing.T) string {
	t.Helper()
	var user struct {
		ID string `json:"id"`
	}
	if code := h.do(t, "POST", "/api/journal/users", nil, &user); code != http.StatusCreated {
		t.Fatalf("create user: status %d", code)
	}
	if user.ID == "" {
		t.Fatal("create user: empty id")
	}
	return user.ID
}

func (h *harness) addEntry(t *testing.T, userID, content string) {
	t.Helper()
	code := h.do(t, "POST", "/api/journal/users/"+userID+"/entries",
		map[string]string{"content": content}, nil)
	if code != http.StatusCreated {
		t.Fatalf("add entry: status %d", code)
	}
}

func TestHealthAndVersion(t *testing.T) {
	h := newHarness(t)

	var health map[string]string
	if code := h.do(t, "GET", "/health", nil, &health); code != http.StatusOK {
		t.Fatalf("health: status %d", code)
	}
	if health["status"] != "ok" {
		t.Errorf("health status = %q", health["status"])
	}

	if code := h.do(t, "GET", "/api/version", nil, nil); code != http.StatusOK {
		t.Errorf("version: status %d", code)
	}
}

func TestCreateUser_InvalidTimezone(t *testing.T) {
	h := newHarness(t)

	code := h.do(t, "POST", "/api/journal/users",
		map[string]string{"timezone": "Mars/Olympus_Mons"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestAddEntry_Validation(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)

	// Whitespace-only content is rejected.
	code := h.do(t, "POST", "/api/journal/users/"+userID+"/entries",
		map[string]string{"content": "   "}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("blank content: status = %d, want 400", code)
	}

	// Malformed user id.
	code = h.do(t, "POST", "/api/journal/users/not-a-uuid/entries",
		map[string]string{"content": "hello"}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("bad uuid: status = %d, want 400", code)
	}

	// Unknown but well-formed user id.
	code = h.do(t, "POST", "/api/journal/users/00000000-0000-0000-0000-000000000001/entries",
		map[string]string{"content": "hello"}, nil)
	if code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", code)
	}
}

func TestStreakEndpoint(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)

	// Three consecutive days of entries ending today.
	h.addEntry(t, userID, "day one words")
	h.advanceDays(1)
	h.addEntry(t, userID, "day two")
	h.advanceDays(1)
	h.addEntry(t, userID, "day three")

	var view struct {
		CurrentStreak   int    `json:"current_streak"`
		LongestStreak   int    `json:"longest_streak"`
		LastActivity    string `json:"last_activity"`
		TotalActiveDays int    `json:"total_active_days"`
		NextMilestone   int    `json:"next_milestone"`
		StreakStatus    string `json:"streak_status"`
	}
	if code := h.do(t, "GET", "/api/journal/users/"+userID+"/streak", nil, &view); code != http.StatusOK {
		t.Fatalf("streak: status %d", code)
	}

	if view.CurrentStreak != 3 {
		t.Errorf("current = %d, want 3", view.CurrentStreak)
	}
	if view.LongestStreak != 3 {
		t.Errorf("longest = %d, want 3", view.LongestStreak)
	}
	if view.TotalActiveDays != 3 {
		t.Errorf("active days = %d, want 3", view.TotalActiveDays)
	}
	if view.LastActivity != "2024-06-12" {
		t.Errorf("last activity = %q, want 2024-06-12", view.LastActivity)
	}
	if view.NextMilestone != 7 {
		t.Errorf("next milestone = %d, want 7", view.NextMilestone)
	}
	if view.StreakStatus != "consistent" {
		t.Errorf("status = %q, want consistent", view.StreakStatus)
	}
}

func TestStreakEndpoint_GraceDay(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)

	h.addEntry(t, userID, "yesterday's note")
	h.advanceDays(1)

	var view struct {
		CurrentStreak int `json:"current_streak"`
	}
	h.do(t, "GET", "/api/journal/users/"+userID+"/streak", nil, &view)
	if view.CurrentStreak != 1 {
		t.Errorf("current = %d, want 1 (yesterday still anchors)", view.CurrentStreak)
	}

	// Two days without writing and the streak is gone.
	h.advanceDays(1)
	h.do(t, "GET", "/api/journal/users/"+userID+"/streak", nil, &view)
	if view.CurrentStreak != 0 {
		t.Errorf("current = %d, want 0 after the grace day passes", view.CurrentStreak)
	}
}

func TestPromptCompleteFlow(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)
	base := "/api/journal/users/" + userID

	var state struct {
		Completed bool   `json:"completed"`
		Date      string `json:"date"`
		Prompt    struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"prompt"`
	}
	if code := h.do(t, "GET", base+"/prompt/today", nil, &state); code != http.StatusOK {
		t.Fatalf("prompt today: status %d", code)
	}
	if state.Completed {
		t.Error("fresh user should not have completed today")
	}
	if state.Prompt.ID == "" || state.Prompt.Text == "" {
		t.Error("expected a prompt from the catalog")
	}
	if state.Date != "2024-06-10" {
		t.Errorf("date = %q, want 2024-06-10", state.Date)
	}

	var rec struct {
		LastPromptDate        string `json:"last_prompt_date"`
		PromptStreak          int    `json:"prompt_streak"`
		TotalPromptsCompleted int    `json:"total_prompts_completed"`
	}
	if code := h.do(t, "POST", base+"/prompt/complete", nil, &rec); code != http.StatusOK {
		t.Fatalf("complete: status %d", code)
	}
	if rec.PromptStreak != 1 || rec.TotalPromptsCompleted != 1 {
		t.Errorf("record = %+v, want streak 1 / total 1", rec)
	}

	// Completing again the same day is rejected.
	if code := h.do(t, "POST", base+"/prompt/complete", nil, nil); code != http.StatusBadRequest {
		t.Errorf("repeat complete: status %d, want 400", code)
	}

	// Next day extends the streak.
	h.advanceDays(1)
	if code := h.do(t, "POST", base+"/prompt/complete", nil, &rec); code != http.StatusOK {
		t.Fatalf("next-day complete: status %d", code)
	}
	if rec.PromptStreak != 2 || rec.TotalPromptsCompleted != 2 {
		t.Errorf("record = %+v, want streak 2 / total 2", rec)
	}
}

func TestPromptSkipFlow(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)
	base := "/api/journal/users/" + userID

	var rec struct {
		LastPromptDate        string `json:"last_prompt_date"`
		PromptStreak          int    `json:"prompt_streak"`
		TotalPromptsCompleted int    `json:"total_prompts_completed"`
	}
	if code := h.do(t, "POST", base+"/prompt/skip", nil, &rec); code != http.StatusOK {
		t.Fatalf("skip: status %d", code)
	}
	if rec.LastPromptDate != "2024-06-10" {
		t.Errorf("last prompt date = %q, want today stamped", rec.LastPromptDate)
	}
	if rec.PromptStreak != 0 || rec.TotalPromptsCompleted != 0 {
		t.Errorf("skip must not count: %+v", rec)
	}

	// Skip is idempotent, not an error.
	if code := h.do(t, "POST", base+"/prompt/skip", nil, nil); code != http.StatusOK {
		t.Errorf("repeat skip: status %d, want 200", code)
	}

	// Completing after a same-day skip is rejected: the day is handled.
	if code := h.do(t, "POST", base+"/prompt/complete", nil, nil); code != http.StatusBadRequest {
		t.Errorf("complete after skip: status %d, want 400", code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)

	// 150 words total: level 2, 50 XP into the level.
	words := make([]byte, 0, 1024)
	for i := 0; i < 150; i++ {
		words = append(words, []byte(fmt.Sprintf("w%d ", i))...)
	}
	h.addEntry(t, userID, string(words))

	var stats struct {
		TotalEntries     int     `json:"total_entries"`
		TotalWords       int64   `json:"total_words"`
		AverageWords     float64 `json:"average_words"`
		Level            int     `json:"level"`
		ExperiencePoints int64   `json:"experience_points"`
		XPInCurrentLevel int64   `json:"xp_in_current_level"`
	}
	if code := h.do(t, "GET", "/api/journal/users/"+userID+"/stats", nil, &stats); code != http.StatusOK {
		t.Fatalf("stats: status %d", code)
	}
	if stats.TotalEntries != 1 || stats.TotalWords != 150 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Level != 2 || stats.ExperiencePoints != 150 || stats.XPInCurrentLevel != 50 {
		t.Errorf("level view = %+v, want level 2 with 50 XP in level", stats)
	}
}

func TestAchievementsEndpoint(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)
	h.addEntry(t, userID, "my very first entry")

	var body struct {
		Achievements []struct {
			ID       string `json:"id"`
			Unlocked bool   `json:"unlocked"`
		} `json:"achievements"`
	}
	if code := h.do(t, "GET", "/api/journal/users/"+userID+"/achievements", nil, &body); code != http.StatusOK {
		t.Fatalf("achievements: status %d", code)
	}
	if len(body.Achievements) == 0 {
		t.Fatal("empty achievement list")
	}
	// first_entry is unlocked, so it leads the unlocked-first ordering.
	if body.Achievements[0].ID != "first_entry" || !body.Achievements[0].Unlocked {
		t.Errorf("first listed = %+v, want unlocked first_entry", body.Achievements[0])
	}
}

func TestListEntries(t *testing.T) {
	h := newHarness(t)
	userID := h.createUser(t)
	h.addEntry(t, userID, "older")
	h.advanceDays(1)
	h.addEntry(t, userID, "newer")

	var body struct {
		Entries []struct {
			Content string `json:"content"`
		} `json:"entries"`
	}
	if code := h.do(t, "GET", "/api/journal/users/"+userID+"/entries", nil, &body); code != http.StatusOK {
		t.Fatalf("list entries: status %d", code)
	}
	if len(body.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(body.Entries))
	}
	if body.Entries[0].Content != "newer" {
		t.Errorf("first entry = %q, want newest first", body.Entries[0].Content)
	}
}

func TestPromptOfTheDay_Public(t *testing.T) {
	h := newHarness(t)

	var body struct {
		Date   string `json:"date"`
		Prompt struct {
			ID string `json:"id"`
		} `json:"prompt"`
	}
	if code := h.do(t, "GET", "/api/journal/prompts/today", nil, &body); code != http.StatusOK {
		t.Fatalf("prompts/today: status %d", code)
	}
	if body.Date != "2024-06-10" || body.Prompt.ID == "" {
		t.Errorf("body = %+v", body)
	}

	// Same day, same prompt.
	var again struct {
		Prompt struct {
			ID string `json:"id"`
		} `json:"prompt"`
	}
	h.do(t, "GET", "/api/journal/prompts/today", nil, &again)
	if again.Prompt.ID != body.Prompt.ID {
		t.Error("prompt of the day changed within the same day")
	}
}

func TestUnknownUserRoutes(t *testing.T) {
	h := newHarness(t)
	ghost := "/api/journal/users/00000000-0000-0000-0000-0000000000ff"

	for _, path := range []string{"/streak", "/stats", "/achievements", "/prompt/today"} {
		if code := h.do(t, "GET", ghost+path, nil, nil); code != http.StatusNotFound {
			t.Errorf("GET %s: status %d, want 404", path, code)
		}
	}
	for _, path := range []string{"/prompt/complete", "/prompt/skip"} {
		if code := h.do(t, "POST", ghost+path, nil, nil); code != http.StatusNotFound {
			t.Errorf("POST %s: status %d, want 404", path, code)
		}
	}
}
