package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/daysketch/internal/model"
)

var showDate string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "List the elements drawn on a day",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "Day to show (YYYY-MM-DD); defaults to today")
}

func runShow(cmd *cobra.Command, args []string) error {
	day, err := resolveDay(showDate, time.Now())
	if err != nil {
		return err
	}

	e := openEnv()
	defer e.close()

	elements := e.persist.Load(day.ID)
	if len(elements) == 0 {
		fmt.Printf("%s %s: empty canvas.\n", day.Name, day.ID)
		return nil
	}
	fmt.Printf("%s %s\n", day.Name, day.ID)
	printElements(os.Stdout, elements)
	return nil
}

// printElements renders elements as a table.
func printElements(w io.Writer, elements []model.Element) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Type", "Color", "Width", "Position", "Points", "Flags"})
	for _, e := range elements {
		points := formatPoints(e.Points)
		if e.Type == model.ElementText {
			points = fmt.Sprintf("%q", e.Text)
		}
		t.AppendRow(table.Row{
			e.ID, e.Type, e.StrokeColor, e.StrokeWidth,
			formatPoint(e.Position), points, elementFlags(e),
		})
	}
	t.Render()
}

func elementFlags(e model.Element) string {
	var flags []string
	if e.CrossedOut {
		flags = append(flags, "crossed out")
	}
	if e.Selected {
		flags = append(flags, "selected")
	}
	return strings.Join(flags, ", ")
}
