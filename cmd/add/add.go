// Package add handles the entry creation command
package add

import (
	"fmt"
	"time"

	"github.com/Te4g/financial-tracker/cmd/common"
	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/dateutils"
	"github.com/Te4g/financial-tracker/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the add command
var Cmd = &cobra.Command{
	Use:   "add",
	Short: "Add an income or expense entry",
	Long: `Add a recurring income or expense entry to the tracker.
Income entries may carry tax elements, given inline with --tax or taken
from a saved profile with --tax-profile.`,
	Run: addFunc,
}

var (
	entryType   string
	description string
	amount      string
	frequency   string
	date        string
	taxFlags    []string
	taxProfile  string
)

func init() {
	Cmd.Flags().StringVarP(&entryType, "type", "t", "income", "Entry type (income or expense)")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Entry description (required)")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Entry amount (required)")
	Cmd.Flags().StringVarP(&frequency, "frequency", "f", "monthly", "Entry frequency (daily, weekly, monthly or yearly)")
	Cmd.Flags().StringVar(&date, "date", "", "Entry date as YYYY-MM-DD (defaults to today)")
	Cmd.Flags().StringArrayVar(&taxFlags, "tax", nil, "Tax element as Name:percentage (repeatable)")
	Cmd.Flags().StringVar(&taxProfile, "tax-profile", "", "Apply a saved tax profile")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("amount")
}

func addFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Add command called")

	parsedType, err := models.ParseEntryType(entryType)
	if err != nil {
		root.Log.Fatalf("Invalid entry type: %v", err)
	}
	parsedFrequency, err := models.ParseFrequency(frequency)
	if err != nil {
		root.Log.Fatalf("Invalid frequency: %v", err)
	}
	parsedAmount, err := currencyutils.ParseAmount(amount)
	if err != nil {
		root.Log.Fatalf("Invalid amount %q: %v", amount, err)
	}

	entryDate := models.DateOf(time.Now())
	if date != "" {
		parsed, _, err := dateutils.ParseDate(date)
		if err != nil {
			root.Log.Fatalf("Invalid date %q: %v", date, err)
		}
		entryDate = models.DateOf(parsed)
	}

	taxes, err := common.ParseTaxElements(taxFlags, root.IDs)
	if err != nil {
		root.Log.Fatalf("Error parsing tax elements: %v", err)
	}
	if taxProfile != "" {
		profile, err := root.Profiles.Get(taxProfile)
		if err != nil {
			root.Log.Fatalf("Error loading tax profile %q: %v", taxProfile, err)
		}
		taxes = append(taxes, profile.Apply(root.IDs)...)
	}

	entry := models.Entry{
		ID:          root.IDs.NewID(),
		Description: description,
		Amount:      parsedAmount,
		Frequency:   parsedFrequency,
		Type:        parsedType,
		Taxes:       taxes,
		Date:        entryDate,
	}
	if err := root.Store.Add(cmd.Context(), entry); err != nil {
		root.Log.Fatalf("Error adding entry: %v", err)
	}
	fmt.Printf("Added %s entry %s\n", entry.Type, entry.ID)
}
