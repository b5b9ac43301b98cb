// Package export handles the CSV export command
package export

import (
	"fmt"

	"github.com/Te4g/financial-tracker/cmd/root"
	csvexport "github.com/Te4g/financial-tracker/internal/export"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to CSV",
	Long: `Export all tracked entries to a CSV file, income entries first.
This is an output format only; use backup and restore to move state
between installations.`,
	Run: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Export command called")

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output file is required (use --output)")
	}

	doc := root.Store.Snapshot()
	if err := csvexport.WriteDocumentToCSV(doc, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Error exporting entries: %v", err)
	}
	fmt.Printf("Exported %d entries to %s\n", len(doc.Income)+len(doc.Expenses), root.SharedFlags.Output)
}
