// Package currencyutils provides common currency and decimal operations used throughout the application.
package currencyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseAmount parses a string representation of an amount into a decimal value
// It handles various formats like "1,234.56", "1.234,56", "1234.56", "1234,56"
func ParseAmount(amountStr string) (decimal.Decimal, error) {
	// Return zero for empty strings
	if amountStr == "" {
		return decimal.Zero, nil
	}

	// Standardize the amount string (remove currency symbols, extra spaces, etc.)
	standardized := StandardizeAmount(amountStr)

	// Parse the standardized string
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", amountStr, err)
	}

	return amount, nil
}

// ParseAmountLenient parses like ParseAmount but never fails: empty or
// unparseable values yield zero. A statement column that cannot be read as a
// number carries no financial signal.
func ParseAmountLenient(amountStr string) decimal.Decimal {
	amount, err := ParseAmount(amountStr)
	if err != nil {
		log.WithField("value", amountStr).Debug("Unparseable amount treated as zero")
		return decimal.Zero
	}
	return amount
}

// StandardizeAmount converts various currency string formats to a standard format that can be parsed by decimal.NewFromString
// Handles patterns like "CHF 1'234.56", "€1.234,56", "$1,234.56", "1 234,56", etc.
func StandardizeAmount(amountStr string) string {
	// Remove all currency symbols and extra whitespace
	re := regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪CHF\s]`)
	amountStr = re.ReplaceAllString(amountStr, "")

	// Handle European format (1.234,56) -> (1234.56)
	if strings.Contains(amountStr, ",") && strings.Contains(amountStr, ".") {
		if strings.LastIndex(amountStr, ".") < strings.LastIndex(amountStr, ",") {
			// European format (1.234,56)
			amountStr = strings.ReplaceAll(amountStr, ".", "")
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		}
	} else if strings.Contains(amountStr, ",") {
		// If only comma is present as decimal separator (1234,56) or thousand separator (1,234)
		// Determine if the comma is used as a decimal separator or thousand separator
		parts := strings.Split(amountStr, ",")
		if len(parts) > 1 && len(parts[len(parts)-1]) <= 2 {
			// Comma used as decimal separator (1234,56)
			amountStr = strings.ReplaceAll(amountStr, ",", ".")
		} else {
			// Comma used as thousand separator (1,234)
			amountStr = strings.ReplaceAll(amountStr, ",", "")
		}
	}

	// Remove apostrophes used as thousand separators (1'234.56)
	amountStr = strings.ReplaceAll(amountStr, "'", "")

	return amountStr
}

// FormatAmount formats a decimal amount for display with two decimal places
// and no thousands separators. Returns strings like "1234.56". The tracker is
// currency-agnostic, so no symbol is attached.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// IsNegative checks if an amount is negative
func IsNegative(amount decimal.Decimal) bool {
	return amount.LessThan(decimal.Zero)
}

// IsPositive checks if an amount is positive
func IsPositive(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero)
}

// IsZero checks if an amount is zero
func IsZero(amount decimal.Decimal) bool {
	return amount.Equal(decimal.Zero)
}

// CalculateTaxAmount calculates the tax amount given the base amount and tax rate
// e.g., CalculateTaxAmount(100, 7.7) returns 7.7
func CalculateTaxAmount(amount decimal.Decimal, taxRatePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(taxRatePercent.Div(decimal.NewFromInt(100)))
}
