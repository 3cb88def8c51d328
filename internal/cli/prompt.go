package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkwell-app/inkwell/internal/daemon"
	"github.com/inkwell-app/inkwell/internal/domain"
)

func init() {
	promptCmd.AddCommand(promptShowCmd)
	promptCmd.AddCommand(promptCompleteCmd)
	promptCmd.AddCommand(promptSkipCmd)
	rootCmd.AddCommand(promptCmd)
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Work with the daily writing prompt",
}

var promptShowCmd = &cobra.Command{
	Use:   "show <user-id>",
	Short: "Show today's prompt and its completion state",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptShow,
}

var promptCompleteCmd = &cobra.Command{
	Use:   "complete <user-id>",
	Short: "Mark today's prompt as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptComplete,
}

var promptSkipCmd = &cobra.Command{
	Use:   "skip <user-id>",
	Short: "Skip today's prompt without losing the streak",
	Args:  cobra.ExactArgs(1),
	RunE:  runPromptSkip,
}

func parseUser(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", arg, err)
	}
	return id, nil
}

func runPromptShow(cmd *cobra.Command, args []string) error {
	id, err := parseUser(args[0])
	if err != nil {
		return err
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	state, err := d.Prompts.Today(id, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("%s — %s\n", state.Date, state.Prompt.Text)
	if state.Completed {
		fmt.Println("Status: completed")
	} else {
		fmt.Println("Status: pending")
	}
	return nil
}

func runPromptComplete(cmd *cobra.Command, args []string) error {
	id, err := parseUser(args[0])
	if err != nil {
		return err
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.Prompts.Complete(id, time.Now())
	if errors.Is(err, domain.ErrAlreadyCompleted) {
		fmt.Println("Already completed today.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Prompt completed. Streak: %d days (%d total)\n",
		rec.PromptStreak, rec.TotalPromptsCompleted)
	return nil
}

func runPromptSkip(cmd *cobra.Command, args []string) error {
	id, err := parseUser(args[0])
	if err != nil {
		return err
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.Prompts.Skip(id, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Prompt skipped. Streak frozen at %d days.\n", rec.PromptStreak)
	return nil
}
