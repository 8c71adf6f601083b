package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daysketch/internal/export"
)

var importCmd = &cobra.Command{
	Use:   "import <bundle.json>",
	Short: "Restore day canvases from an exported JSON bundle",
	Long: `import writes every canvas found in a bundle produced by "daysketch export".
Existing canvases of the same days are replaced. The bundle is validated as a
whole first; if any canvas is malformed nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	data, err := export.ReadBundle(f)
	f.Close()
	if err != nil {
		return err
	}

	e := openEnv()
	defer e.close()

	if err := e.persist.Restore(data); err != nil {
		return err
	}

	ids := make([]string, 0, len(data))
	for id := range data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Println("  " + id)
	}
	fmt.Printf("Imported %d day(s).\n", len(ids))
	return nil
}
