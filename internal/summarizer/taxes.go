package summarizer

import (
	"github.com/shopspring/decimal"

	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/models"
)

// TaxAmount returns the total deduction for a monthly amount under the given
// tax elements. Each percentage applies to the same base amount, so taxes add
// up without compounding. Percentages are not range-checked here: entry
// editing validates them, and out-of-range values passed anyway are honored
// mathematically.
func TaxAmount(monthlyAmount decimal.Decimal, taxes []models.TaxElement) decimal.Decimal {
	total := decimal.Zero
	for _, tax := range taxes {
		total = total.Add(currencyutils.CalculateTaxAmount(monthlyAmount, tax.Percentage))
	}
	return total
}
