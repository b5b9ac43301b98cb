// Package models defines the domain types shared across the application:
// financial entries, their tax elements, and the derived monthly summary.
package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation errors shared by the store and the command layer.
var (
	ErrEmptyID         = errors.New("id must not be empty")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrPercentageRange = errors.New("percentage must be between 0 and 100")
	ErrTaxesOnExpense  = errors.New("expense entries cannot carry taxes")
)

// TaxElement is a named percentage deduction attached to an income entry.
// It is owned by the entry it belongs to and has no independent lifecycle.
type TaxElement struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Validate checks that the percentage lies within [0, 100]. The calculators
// never range-check percentages themselves; this runs where entries are
// created or edited.
func (t TaxElement) Validate() error {
	if t.Percentage.LessThan(decimal.Zero) || t.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("tax element '%s': %w", t.Name, ErrPercentageRange)
	}
	return nil
}

// Entry is a recurring income or expense line. Amounts are stored at their
// native cadence; the summarizer package normalizes them to a monthly basis.
type Entry struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Frequency   Frequency       `json:"frequency"`
	Type        EntryType       `json:"type"`
	Taxes       []TaxElement    `json:"taxes,omitempty"`
	Date        Date            `json:"date"`
}

// IsIncome returns true if the entry is an income line.
func (e Entry) IsIncome() bool {
	return e.Type == Income
}

// IsExpense returns true if the entry is an expense line.
func (e Entry) IsExpense() bool {
	return e.Type == Expense
}

// Validate checks the entry invariants before it is accepted by the store.
func (e Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if !e.Frequency.IsValid() {
		_, err := ParseFrequency(string(e.Frequency))
		return err
	}
	if !e.Type.IsValid() {
		_, err := ParseEntryType(string(e.Type))
		return err
	}
	if e.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("entry '%s': %w", e.ID, ErrNegativeAmount)
	}
	if e.IsExpense() && len(e.Taxes) > 0 {
		return fmt.Errorf("entry '%s': %w", e.ID, ErrTaxesOnExpense)
	}
	for _, tax := range e.Taxes {
		if err := tax.Validate(); err != nil {
			return fmt.Errorf("entry '%s': %w", e.ID, err)
		}
	}
	return nil
}
