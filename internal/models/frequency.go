package models

import (
	"encoding/json"

	"github.com/Te4g/financial-tracker/internal/parsererror"
)

// Frequency is the repetition cadence of an entry.
type Frequency string

const (
	// Daily repeats every day.
	Daily Frequency = "daily"
	// Weekly repeats every week.
	Weekly Frequency = "weekly"
	// Monthly repeats every month.
	Monthly Frequency = "monthly"
	// Yearly repeats every year.
	Yearly Frequency = "yearly"
)

// Frequencies lists every recognized cadence, in normalization order.
var Frequencies = []Frequency{Daily, Weekly, Monthly, Yearly}

// ParseFrequency converts a label into a Frequency. Labels are matched
// exactly; anything else is rejected so an invalid cadence is never
// representable past this point.
func ParseFrequency(value string) (Frequency, error) {
	switch Frequency(value) {
	case Daily, Weekly, Monthly, Yearly:
		return Frequency(value), nil
	}
	return "", &parsererror.InvalidFrequencyError{Frequency: value}
}

// IsValid reports whether the frequency is one of the recognized values.
func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (f Frequency) String() string {
	return string(f)
}

// UnmarshalJSON rejects labels outside the closed set.
func (f *Frequency) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := ParseFrequency(value)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
