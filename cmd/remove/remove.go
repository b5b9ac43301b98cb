// Package remove handles the entry removal command
package remove

import (
	"fmt"

	"github.com/Te4g/financial-tracker/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the remove command
var Cmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an entry",
	Long:  `Remove the entry with the given identifier from the tracker.`,
	Args:  cobra.ExactArgs(1),
	Run:   removeFunc,
}

func removeFunc(cmd *cobra.Command, args []string) {
	if err := root.Store.Remove(cmd.Context(), args[0]); err != nil {
		root.Log.Fatalf("Error removing entry: %v", err)
	}
	fmt.Printf("Removed entry %s\n", args[0])
}
