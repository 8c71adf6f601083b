package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daysketch/internal/persistence"
	"github.com/Tiliavir/daysketch/internal/replay"
)

var drawDate string

var drawCmd = &cobra.Command{
	Use:   "draw <script.yaml>",
	Short: "Replay a gesture script onto a day's canvas",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraw,
}

func init() {
	drawCmd.Flags().StringVar(&drawDate, "date", "", "Day to draw on (YYYY-MM-DD); defaults to today")
}

func runDraw(cmd *cobra.Command, args []string) error {
	now := time.Now()
	day, err := resolveDay(drawDate, now)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	steps, err := replay.Parse(f)
	f.Close()
	if err != nil {
		return err
	}

	e := openEnv()
	defer e.close()

	saver := persistence.NewSaver(e.persist)
	sess := e.openSession(day, saver)
	defer sess.Close()

	res, runErr := replay.Run(sess, steps, replay.WithPalette(e.cfg.Drawing.Palette))

	// Whatever was drawn before a failing step is kept.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := saver.Flush(ctx); err != nil {
		exitStorage(err)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Printf("Replayed %d steps on %s: %d elements", res.Steps, day.ID, sess.Store.Len())
	if n := len(res.Removed); n > 0 {
		fmt.Printf(", %d erased", n)
	}
	fmt.Println()
	return nil
}
