package models

import (
	"encoding/json"
	"fmt"
)

// EntryType distinguishes income lines from expense lines.
type EntryType string

const (
	// Income adds to the monthly total before taxes.
	Income EntryType = "income"
	// Expense subtracts from the net monthly income.
	Expense EntryType = "expense"
)

// ParseEntryType converts a label into an EntryType. Labels are matched
// exactly; anything else is rejected.
func ParseEntryType(value string) (EntryType, error) {
	switch EntryType(value) {
	case Income, Expense:
		return EntryType(value), nil
	}
	return "", fmt.Errorf("invalid entry type '%s': must be income or expense", value)
}

// IsValid reports whether the type is one of the recognized values.
func (t EntryType) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	}
	return false
}

func (t EntryType) String() string {
	return string(t)
}

// UnmarshalJSON rejects labels outside the closed set.
func (t *EntryType) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseEntryType(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
