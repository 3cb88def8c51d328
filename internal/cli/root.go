// Package cli implements the Inkwell command-line interface using Cobra.
// Each subcommand maps to a journal capability (serve, stats, streak, prompt).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "inkwell",
	Short: "Inkwell — Personal journaling server",
	Long: `Inkwell is a personal journaling backend.
Write entries, answer the daily prompt, and build consecutive-day streaks.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
