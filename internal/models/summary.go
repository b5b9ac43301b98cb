package models

import "github.com/shopspring/decimal"

// Summary is a derived snapshot of the monthly financial position. It is
// recomputed from the entry collections on every read and never stored.
type Summary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalTaxes    decimal.Decimal `json:"totalTaxes"`
	NetIncome     decimal.Decimal `json:"netIncome"`
	Balance       decimal.Decimal `json:"balance"`
}

// ZeroSummary returns a summary with every total at zero, the result of
// aggregating empty collections.
func ZeroSummary() Summary {
	return Summary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalTaxes:    decimal.Zero,
		NetIncome:     decimal.Zero,
		Balance:       decimal.Zero,
	}
}
