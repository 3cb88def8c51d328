package prompt

import "github.com/inkwell-app/inkwell/internal/domain"

// Catalog returns the fixed pool of daily writing prompts.
func Catalog() []domain.Prompt {
	return catalog
}

// ForDay picks the prompt offered on a given day. The pick is a pure
// function of the DateKey, so every request on the same day sees the same
// prompt regardless of server restarts.
func ForDay(day domain.DateKey) domain.Prompt {
	t := day.Time()
	return catalog[t.YearDay()%len(catalog)]
}

var catalog = []domain.Prompt{
	{ID: "gratitude", Text: "What are three things you are grateful for today?"},
	{ID: "highlight", Text: "What was the highlight of your day, and why?"},
	{ID: "challenge", Text: "What challenged you today, and how did you respond?"},
	{ID: "letter-past", Text: "Write a short letter to yourself one year ago."},
	{ID: "letter-future", Text: "Write a short letter to yourself one year from now."},
	{ID: "small-win", Text: "Describe a small win from the last 24 hours."},
	{ID: "energy", Text: "What gave you energy today? What drained it?"},
	{ID: "learned", Text: "What is one thing you learned today?"},
	{ID: "conversation", Text: "Recall a conversation that stuck with you. What made it memorable?"},
	{ID: "place", Text: "Describe a place where you felt completely at ease."},
	{ID: "habit", Text: "Which habit served you well this week? Which one didn't?"},
	{ID: "unsent", Text: "Write the message you wanted to send but didn't."},
	{ID: "five-senses", Text: "Describe this moment using all five senses."},
	{ID: "proud", Text: "What did you do recently that you are quietly proud of?"},
	{ID: "worry", Text: "Name a worry, then write what you would tell a friend carrying it."},
	{ID: "change", Text: "If you could change one thing about today, what would it be?"},
	{ID: "routine", Text: "Walk through your morning routine. What would you add or remove?"},
	{ID: "person", Text: "Write about someone who shaped who you are."},
	{ID: "no-plan", Text: "What would you do tomorrow if nothing was scheduled?"},
	{ID: "weather", Text: "How did the weather color your mood today?"},
	{ID: "book-line", Text: "Write down a line you read or heard recently that stayed with you."},
	{ID: "decision", Text: "Describe a decision you are sitting with. List what pulls each way."},
	{ID: "rest", Text: "What does rest actually look like for you?"},
	{ID: "ordinary", Text: "Describe something ordinary from today as if seeing it for the first time."},
}
