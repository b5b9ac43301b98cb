// Package list handles the entry listing command
package list

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Te4g/financial-tracker/cmd/common"
	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/summarizer"

	"github.com/spf13/cobra"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked entries",
	Long: `List tracked entries with their monthly-normalized amount.
Use --type to show only income or only expense entries.`,
	Run: listFunc,
}

var entryType string

func init() {
	Cmd.Flags().StringVarP(&entryType, "type", "t", "", "Filter by entry type (income or expense)")
}

func listFunc(cmd *cobra.Command, args []string) {
	var entries []models.Entry
	if entryType == "" {
		entries = append(root.Store.List(models.Income), root.Store.List(models.Expense)...)
	} else {
		parsed, err := models.ParseEntryType(entryType)
		if err != nil {
			root.Log.Fatalf("Invalid entry type: %v", err)
		}
		entries = root.Store.List(parsed)
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tDESCRIPTION\tAMOUNT\tFREQUENCY\tMONTHLY\tDATE\tTAXES")
	for _, entry := range entries {
		monthly, err := summarizer.MonthlyAmount(entry.Amount, entry.Frequency)
		if err != nil {
			root.Log.Fatalf("Error normalizing entry %s: %v", entry.ID, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.ID,
			entry.Type,
			entry.Description,
			currencyutils.FormatAmount(entry.Amount),
			entry.Frequency,
			currencyutils.FormatAmount(monthly),
			entry.Date.String(),
			common.FormatTaxes(entry.Taxes))
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to render entry table: %v", err)
	}
}
