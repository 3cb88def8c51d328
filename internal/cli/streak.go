package cli

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkwell-app/inkwell/internal/app/streak"
	"github.com/inkwell-app/inkwell/internal/daemon"
)

func init() {
	rootCmd.AddCommand(streakCmd)
}

var streakCmd = &cobra.Command{
	Use:   "streak <user-id>",
	Short: "Show the writing streak for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runStreak,
}

func runStreak(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := d.Streaks.ForUser(id, time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Current streak: %d days (%s)\n", result.CurrentStreak, streak.Status(result.CurrentStreak))
	fmt.Printf("Longest streak: %d days\n", result.LongestStreak)
	fmt.Printf("Active days:    %d\n", result.TotalActiveDays)
	if !result.LastActivity.IsZero() {
		fmt.Printf("Last activity:  %s\n", result.LastActivity)
	}
	if next := streak.NextMilestone(result.CurrentStreak); next > 0 {
		fmt.Printf("Next milestone: %d days\n", next)
	}
	return nil
}
