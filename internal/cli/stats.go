package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/inkwell-app/inkwell/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats <user-id>",
	Short: "Show writing stats, level, and achievements for a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid user id %q: %w", args[0], err)
	}

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	now := time.Now()
	stats, level, err := d.Progression.Stats(id, now)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Entries\t%d\n", stats.TotalEntries)
	fmt.Fprintf(w, "Words\t%d\n", stats.TotalWords)
	fmt.Fprintf(w, "Avg words/entry\t%.1f\n", stats.AverageWords)
	fmt.Fprintf(w, "Prompts answered\t%d\n", stats.UniquePrompts)
	fmt.Fprintf(w, "Longest streak\t%d days\n", stats.LongestStreak)
	fmt.Fprintf(w, "Level\t%d\n", level.Level)
	fmt.Fprintf(w, "XP\t%d (%d/%d to next level, %.0f%%)\n",
		level.ExperiencePoints, level.XPInCurrentLevel,
		level.XPNeededForNextLevel, level.ProgressPercentage)
	if err := w.Flush(); err != nil {
		return err
	}

	achievements, err := d.Progression.Achievements(id, now)
	if err != nil {
		return err
	}

	fmt.Println()
	aw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(aw, "ACHIEVEMENT\tSTATUS\tPROGRESS")
	for _, a := range achievements {
		status := "locked"
		if a.Unlocked {
			status = "unlocked"
		}
		fmt.Fprintf(aw, "%s %s\t%s\t%.0f%%\n", a.Icon, a.Name, status, a.ProgressPercent)
	}
	return aw.Flush()
}
