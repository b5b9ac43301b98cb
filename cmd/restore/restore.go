// Package restore handles the backup restore command
package restore

import (
	"fmt"

	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/backup"
	"github.com/Te4g/financial-tracker/internal/fileutils"
	"github.com/Te4g/financial-tracker/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the restore command
var Cmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore entries from a backup document",
	Long: `Replace all tracked entries with the contents of a JSON backup
document. A malformed document is rejected as a whole and the current
entries are kept.`,
	Run: restoreFunc,
}

func restoreFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Restore command called")

	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required (use --input)")
	}
	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		root.Log.Fatalf("Invalid input file: %v", err)
	}

	data, err := fileutils.ReadFile(root.SharedFlags.Input)
	if err != nil {
		root.Log.Fatalf("Error reading backup document: %v", err)
	}
	doc, err := backup.Decode(data)
	if err != nil {
		root.Log.Fatalf("Invalid backup document, keeping current entries: %v", err)
	}
	if err := root.Store.ReplaceAll(cmd.Context(), doc); err != nil {
		root.Log.Fatalf("Error restoring entries, keeping current entries: %v", err)
	}
	fmt.Printf("Restored %d entries from %s\n", len(doc.Income)+len(doc.Expenses), root.SharedFlags.Input)
}
