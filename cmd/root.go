package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "daysketch",
	Short: "daysketch – a hand-drawn calendar journal",
	Long: `daysketch keeps one drawing canvas per calendar day.
Strokes and text are replayed from gesture scripts and stored as JSON,
either one file per day under ~/.daysketch/ or in a single SQLite database.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(drawCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(eraseCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
