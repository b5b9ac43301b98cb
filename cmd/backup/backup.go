// Package backup handles the backup document command
package backup

import (
	"fmt"

	"github.com/Te4g/financial-tracker/cmd/root"
	backupdoc "github.com/Te4g/financial-tracker/internal/backup"
	"github.com/Te4g/financial-tracker/internal/fileutils"

	"github.com/spf13/cobra"
)

// Cmd represents the backup command
var Cmd = &cobra.Command{
	Use:   "backup",
	Short: "Write a backup document",
	Long: `Write all tracked entries to a JSON backup document that the restore
command accepts.`,
	Run: backupFunc,
}

func backupFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Backup command called")

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output file is required (use --output)")
	}

	doc := root.Store.Snapshot()
	data, err := backupdoc.Encode(doc)
	if err != nil {
		root.Log.Fatalf("Error encoding backup document: %v", err)
	}
	if err := fileutils.WriteFile(root.SharedFlags.Output, data, 0644); err != nil {
		root.Log.Fatalf("Error writing backup document: %v", err)
	}
	fmt.Printf("Backed up %d entries to %s\n", len(doc.Income)+len(doc.Expenses), root.SharedFlags.Output)
}
