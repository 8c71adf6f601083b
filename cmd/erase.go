package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daysketch/internal/model"
	"github.com/Tiliavir/daysketch/internal/session"
)

var (
	eraseDate   string
	eraseAt     string
	eraseRadius float64
)

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Erase the elements under a point",
	Args:  cobra.NoArgs,
	RunE:  runErase,
}

func init() {
	eraseCmd.Flags().StringVar(&eraseDate, "date", "", "Day to erase on (YYYY-MM-DD); defaults to today")
	eraseCmd.Flags().StringVar(&eraseAt, "at", "", "Eraser position as x,y (required)")
	eraseCmd.Flags().Float64Var(&eraseRadius, "radius", 0, "Eraser radius; defaults to the configured eraser_radius")
	_ = eraseCmd.MarkFlagRequired("at")
}

func runErase(cmd *cobra.Command, args []string) error {
	day, err := resolveDay(eraseDate, time.Now())
	if err != nil {
		return err
	}
	at, err := parsePoint(eraseAt)
	if err != nil {
		return err
	}

	e := openEnv()
	defer e.close()
	if eraseRadius > 0 {
		e.cfg.Drawing.EraserRadius = eraseRadius
	}

	sess := e.openSession(day, nil)
	defer sess.Close()

	removed, err := eraseAtPoint(sess, at)
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		fmt.Printf("Nothing to erase at %s on %s.\n", formatPoint(at), day.ID)
		return nil
	}
	if err := sess.Save(); err != nil {
		exitStorage(err)
	}
	fmt.Printf("Erased %d element(s) on %s.\n", len(removed), day.ID)
	return nil
}

// eraseAtPoint runs a single-point eraser gesture.
func eraseAtPoint(sess *session.Session, at model.Point) ([]model.Element, error) {
	if _, err := sess.SetTool(model.ToolEraser); err != nil {
		return nil, err
	}
	if err := sess.Begin(at); err != nil {
		return nil, err
	}
	return sess.End()
}
