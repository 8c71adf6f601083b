package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daysketch/internal/calendar"
	"github.com/Tiliavir/daysketch/internal/export"
	"github.com/Tiliavir/daysketch/internal/model"
)

var (
	exportFormat string
	exportDate   string
	exportFrom   string
	exportTo     string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export day canvases as a JSON bundle or a PDF",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, pdf")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Export a single day (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "Start date (YYYY-MM-DD); required when --to is specified")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "End date (YYYY-MM-DD); defaults to today")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file; defaults to stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "json" && exportFormat != "pdf" {
		return fmt.Errorf("unknown format %q, expected json or pdf", exportFormat)
	}
	days, err := exportDays(exportDate, exportFrom, exportTo, time.Now())
	if err != nil {
		return err
	}

	e := openEnv()
	defer e.close()

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch exportFormat {
	case "pdf":
		var pages []export.Page
		for _, d := range days {
			if elements := e.persist.Load(d.ID); len(elements) > 0 {
				pages = append(pages, export.Page{Day: d, Elements: elements})
			}
		}
		err = export.PDF(w, pages)
	default:
		var data model.CanvasData
		data, err = e.persist.Bundle(calendar.IDs(days))
		if err == nil {
			err = export.WriteBundle(w, data)
		}
	}
	if err != nil {
		exitStorage(err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Exported %s → %s\n", rangeLabel(days), exportOut)
	}
	return nil
}

// exportDays resolves the --date / --from / --to flags into the days to export.
// Without flags, today is exported.
func exportDays(date, from, to string, now time.Time) ([]model.Day, error) {
	switch {
	case date != "":
		d, err := resolveDay(date, now)
		if err != nil {
			return nil, err
		}
		return []model.Day{d}, nil

	case from != "" || to != "":
		if from == "" {
			return nil, fmt.Errorf("--from is required when --to is specified")
		}
		start, err := calendar.ParseDayID(from, now.Location())
		if err != nil {
			return nil, err
		}
		end := calendar.StartOfDay(now)
		if to != "" {
			if end, err = calendar.ParseDayID(to, now.Location()); err != nil {
				return nil, err
			}
		}
		if end.Before(start) {
			return nil, fmt.Errorf("--to %s is before --from %s", calendar.DayID(end), calendar.DayID(start))
		}
		return calendar.Range(start, end, now), nil

	default:
		return []model.Day{calendar.NewDay(now, now)}, nil
	}
}

func rangeLabel(days []model.Day) string {
	if len(days) == 1 {
		return days[0].ID
	}
	return days[0].ID + ".." + days[len(days)-1].ID
}
