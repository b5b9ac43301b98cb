package summarizer

import (
	"github.com/shopspring/decimal"

	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/parsererror"
)

// Fixed conversion factors, not calendar-aware: a daily entry counts 30 times
// per month, a weekly one 4 times, a yearly one is spread over 12 months.
var (
	factorDaily   = decimal.NewFromInt(30)
	factorWeekly  = decimal.NewFromInt(4)
	monthsPerYear = decimal.NewFromInt(12)
)

var monthlyNormalizers = map[models.Frequency]func(decimal.Decimal) decimal.Decimal{
	models.Daily:   func(amount decimal.Decimal) decimal.Decimal { return amount.Mul(factorDaily) },
	models.Weekly:  func(amount decimal.Decimal) decimal.Decimal { return amount.Mul(factorWeekly) },
	models.Monthly: func(amount decimal.Decimal) decimal.Decimal { return amount },
	models.Yearly:  func(amount decimal.Decimal) decimal.Decimal { return amount.Div(monthsPerYear) },
}

// MonthlyAmount converts an amount at the given cadence onto a monthly basis.
// No rounding is applied here; display formatting happens at presentation
// time. Unknown frequencies are rejected rather than defaulted.
func MonthlyAmount(amount decimal.Decimal, frequency models.Frequency) (decimal.Decimal, error) {
	normalize, ok := monthlyNormalizers[frequency]
	if !ok {
		return decimal.Zero, &parsererror.InvalidFrequencyError{Frequency: string(frequency)}
	}
	return normalize(amount), nil
}
