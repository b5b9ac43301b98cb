// Package summarizer converts entries of mixed cadence onto a common monthly
// basis, applies proportional tax deductions to income, and aggregates the
// results into a Summary. Every function here is pure: inputs are never
// mutated and identical inputs always produce identical results, so a summary
// can be recomputed on every read.
package summarizer

import (
	"github.com/Te4g/financial-tracker/internal/models"
)

// Summarize aggregates income and expense entries into a monthly summary.
//
// Each income entry contributes its normalized monthly amount to TotalIncome
// and its tax deduction to TotalTaxes; each expense entry contributes its
// normalized amount to TotalExpenses. NetIncome is income after taxes, and
// Balance is what remains after expenses. Addition is commutative, so entry
// order never changes the totals.
func Summarize(income, expenses []models.Entry) (models.Summary, error) {
	summary := models.ZeroSummary()

	for _, entry := range income {
		monthly, err := MonthlyAmount(entry.Amount, entry.Frequency)
		if err != nil {
			return models.Summary{}, err
		}
		summary.TotalIncome = summary.TotalIncome.Add(monthly)
		summary.TotalTaxes = summary.TotalTaxes.Add(TaxAmount(monthly, entry.Taxes))
	}

	for _, entry := range expenses {
		monthly, err := MonthlyAmount(entry.Amount, entry.Frequency)
		if err != nil {
			return models.Summary{}, err
		}
		summary.TotalExpenses = summary.TotalExpenses.Add(monthly)
	}

	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalTaxes)
	summary.Balance = summary.NetIncome.Sub(summary.TotalExpenses)

	return summary, nil
}
