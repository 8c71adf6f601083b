package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/daysketch/internal/calendar"
	"github.com/Tiliavir/daysketch/internal/model"
)

var calendarMonth string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month grid marking the days that have drawings",
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "Month to show (YYYY-MM); defaults to the current month")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if calendarMonth != "" {
		t, err := time.ParseInLocation("2006-01", calendarMonth, now.Location())
		if err != nil {
			return fmt.Errorf("invalid --month value %q, expected YYYY-MM", calendarMonth)
		}
		year, month = t.Year(), t.Month()
	}

	e := openEnv()
	defer e.close()

	days := calendar.Month(year, month, now)
	drawn := func(id string) bool { return len(e.persist.Load(id)) > 0 }

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.SetTitle(calendar.MonthLabel(year, month))
	header := make(table.Row, len(calendar.DayNames))
	for i, n := range calendar.DayNames {
		header[i] = n
	}
	t.AppendHeader(header)
	for _, row := range monthRows(days, drawn) {
		t.AppendRow(row)
	}
	t.Render()
	fmt.Println("* has drawings   [ ] today")
	return nil
}

// monthRows lays days out in weeks of seven cells.
func monthRows(days []model.Day, drawn func(id string) bool) []table.Row {
	var rows []table.Row
	for i := 0; i < len(days); i += 7 {
		end := min(i+7, len(days))
		row := make(table.Row, 0, 7)
		for _, d := range days[i:end] {
			row = append(row, dayCell(d, d.Enabled && drawn(d.ID)))
		}
		rows = append(rows, row)
	}
	return rows
}

func dayCell(d model.Day, drawn bool) string {
	if d.State == model.StateOutside {
		return ""
	}
	cell := strconv.Itoa(d.Date.Day())
	if drawn {
		cell += "*"
	}
	if d.IsToday {
		cell = "[" + cell + "]"
	}
	return cell
}
