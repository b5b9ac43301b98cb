// Package update handles the entry update command
package update

import (
	"fmt"

	"github.com/Te4g/financial-tracker/cmd/common"
	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/dateutils"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the update command
var Cmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an entry",
	Long: `Update fields of an existing entry. Only the flags given change;
everything else keeps its current value. The entry type is fixed at
creation and cannot be updated.`,
	Args: cobra.ExactArgs(1),
	Run:  updateFunc,
}

var (
	description string
	amount      string
	frequency   string
	date        string
	taxFlags    []string
	clearTaxes  bool
)

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "New amount")
	Cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "New frequency (daily, weekly, monthly or yearly)")
	Cmd.Flags().StringVar(&date, "date", "", "New date as YYYY-MM-DD")
	Cmd.Flags().StringArrayVar(&taxFlags, "tax", nil, "Replace tax elements with Name:percentage values (repeatable)")
	Cmd.Flags().BoolVar(&clearTaxes, "clear-taxes", false, "Remove all tax elements from the entry")
}

func updateFunc(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()
	update := store.EntryUpdate{}

	if flags.Changed("description") {
		update.Description = &description
	}
	if flags.Changed("amount") {
		parsed, err := currencyutils.ParseAmount(amount)
		if err != nil {
			root.Log.Fatalf("Invalid amount %q: %v", amount, err)
		}
		update.Amount = &parsed
	}
	if flags.Changed("frequency") {
		parsed, err := models.ParseFrequency(frequency)
		if err != nil {
			root.Log.Fatalf("Invalid frequency: %v", err)
		}
		update.Frequency = &parsed
	}
	if flags.Changed("date") {
		parsed, _, err := dateutils.ParseDate(date)
		if err != nil {
			root.Log.Fatalf("Invalid date %q: %v", date, err)
		}
		newDate := models.DateOf(parsed)
		update.Date = &newDate
	}
	if flags.Changed("tax") {
		taxes, err := common.ParseTaxElements(taxFlags, root.IDs)
		if err != nil {
			root.Log.Fatalf("Error parsing tax elements: %v", err)
		}
		update.Taxes = &taxes
	}
	if clearTaxes {
		empty := []models.TaxElement{}
		update.Taxes = &empty
	}

	if err := root.Store.Update(cmd.Context(), args[0], update); err != nil {
		root.Log.Fatalf("Error updating entry: %v", err)
	}
	fmt.Printf("Updated entry %s\n", args[0])
}
