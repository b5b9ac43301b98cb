// Package importcmd handles the statement import command
package importcmd

import (
	"fmt"

	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/statementparser"
	"github.com/Te4g/financial-tracker/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import bank statement CSV files",
	Long: `Import semicolon-delimited bank statement CSV files as expense and
income entries. Use --input for a single file or --dir for every .csv
file in a directory. Rows without an amount are dropped and rows with
an unreadable date are skipped.`,
	Run: importFunc,
}

var inputDir string

func init() {
	Cmd.Flags().StringVar(&inputDir, "dir", "", "Import every .csv statement in a directory")
}

func importFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Import command called")

	var entries []models.Entry
	var err error

	switch {
	case inputDir != "":
		if err := validation.IsValidInputDir(inputDir); err != nil {
			root.Log.Fatalf("Invalid input directory: %v", err)
		}
		entries, err = statementparser.ImportDir(cmd.Context(), inputDir)
	case root.SharedFlags.Input != "":
		if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
			root.Log.Fatalf("Invalid input file: %v", err)
		}
		if root.SharedFlags.Validate {
			root.Log.Info("Validating statement format...")
			valid, validateErr := statementparser.ValidateFormat(root.SharedFlags.Input)
			if validateErr != nil {
				root.Log.Fatalf("Error validating statement: %v", validateErr)
			}
			if !valid {
				root.Log.Fatal("The file is not a semicolon-delimited statement")
			}
			root.Log.Info("Validation successful.")
		}
		entries, err = statementparser.ParseFile(root.SharedFlags.Input)
	default:
		root.Log.Fatal("Either --input or --dir is required")
	}
	if err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}

	count, err := root.Store.AddAll(cmd.Context(), entries)
	if err != nil {
		root.Log.Fatalf("Error storing imported entries: %v", err)
	}
	fmt.Printf("Imported %d entries\n", count)
}
