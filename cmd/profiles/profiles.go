// Package profiles handles tax profile management commands
package profiles

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Te4g/financial-tracker/cmd/common"
	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/taxprofile"

	"github.com/spf13/cobra"
)

// Cmd represents the profiles command
var Cmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage tax profiles",
	Long: `Manage named tax profiles, reusable bundles of tax elements that the
add command can apply to income entries with --tax-profile.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved tax profiles",
	Run:   listFunc,
}

var setCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or replace a tax profile",
	Args:  cobra.ExactArgs(1),
	Run:   setFunc,
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a tax profile",
	Args:  cobra.ExactArgs(1),
	Run:   removeFunc,
}

var taxFlags []string

func init() {
	setCmd.Flags().StringArrayVar(&taxFlags, "tax", nil, "Tax element as Name:percentage (repeatable)")
	_ = setCmd.MarkFlagRequired("tax")

	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(removeCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	profiles, err := root.Profiles.List()
	if err != nil {
		root.Log.Fatalf("Error listing tax profiles: %v", err)
	}
	if len(profiles) == 0 {
		fmt.Println("No tax profiles saved.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tELEMENTS")
	for _, profile := range profiles {
		fmt.Fprintf(w, "%s\t%s\n", profile.Name, common.FormatTaxes(profile.Elements))
	}
	if err := w.Flush(); err != nil {
		root.Log.Warnf("Failed to render profile table: %v", err)
	}
}

func setFunc(cmd *cobra.Command, args []string) {
	elements, err := common.ParseTaxElements(taxFlags, root.IDs)
	if err != nil {
		root.Log.Fatalf("Error parsing tax elements: %v", err)
	}
	profile := taxprofile.Profile{Name: args[0], Elements: elements}
	if err := root.Profiles.Set(profile); err != nil {
		root.Log.Fatalf("Error saving tax profile: %v", err)
	}
	fmt.Printf("Saved tax profile %s\n", profile.Name)
}

func removeFunc(cmd *cobra.Command, args []string) {
	if err := root.Profiles.Remove(args[0]); err != nil {
		root.Log.Fatalf("Error removing tax profile: %v", err)
	}
	fmt.Printf("Removed tax profile %s\n", args[0])
}
