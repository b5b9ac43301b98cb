// Package summary handles the monthly summary command
package summary

import (
	"github.com/Te4g/financial-tracker/cmd/common"
	"github.com/Te4g/financial-tracker/cmd/root"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/report"
	"github.com/Te4g/financial-tracker/internal/summarizer"
	"github.com/Te4g/financial-tracker/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the monthly budget summary",
	Long: `Compute the monthly summary over all tracked entries: total income,
taxes, expenses, net income and balance, everything normalized to a
monthly basis.`,
	Run: summaryFunc,
}

var format string

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (text or json, defaults to the configured format)")
}

func summaryFunc(cmd *cobra.Command, args []string) {
	if format == "" {
		format = root.Cfg.Report.Format
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		root.Log.Fatalf("Invalid output format: %v", err)
	}

	income := root.Store.List(models.Income)
	expenses := root.Store.List(models.Expense)

	summary, err := summarizer.Summarize(income, expenses)
	if err != nil {
		root.Log.Fatalf("Error computing summary: %v", err)
	}

	data, err := report.NewGenerator().Generate(summary, format)
	if err != nil {
		root.Log.Fatalf("Error rendering summary: %v", err)
	}
	if err := common.WriteOutput(data, root.SharedFlags.Output, root.Log); err != nil {
		root.Log.Fatalf("Error writing summary: %v", err)
	}
}
