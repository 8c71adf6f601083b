package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var clearDate string

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every element from a day's canvas",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().StringVar(&clearDate, "date", "", "Day to clear (YYYY-MM-DD); defaults to today")
}

func runClear(cmd *cobra.Command, args []string) error {
	day, err := resolveDay(clearDate, time.Now())
	if err != nil {
		return err
	}

	e := openEnv()
	defer e.close()

	sess := e.openSession(day, nil)
	defer sess.Close()

	n := sess.Store.Len()
	if err := sess.Clear(); err != nil {
		return err
	}
	if err := sess.Save(); err != nil {
		exitStorage(err)
	}
	fmt.Printf("Cleared %d element(s) from %s.\n", n, day.ID)
	return nil
}
