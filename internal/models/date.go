package models

import (
	"encoding/json"
	"time"

	"github.com/Te4g/financial-tracker/internal/dateutils"
	"github.com/Te4g/financial-tracker/internal/parsererror"
)

// Date is a calendar date with day precision, serialized as YYYY-MM-DD.
// The zero value renders as an empty string so entries without a date
// survive round trips.
type Date struct {
	time.Time
}

// NewDate builds a Date pinned to UTC midnight.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateutils.DateLayoutISO)
}

// MarshalJSON renders the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a YYYY-MM-DD string. Empty strings and nulls yield
// the zero date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	return d.set(value)
}

// MarshalCSV implements gocsv marshaling.
func (d Date) MarshalCSV() (string, error) {
	return d.String(), nil
}

// UnmarshalCSV implements gocsv unmarshaling.
func (d *Date) UnmarshalCSV(value string) error {
	return d.set(value)
}

func (d *Date) set(value string) error {
	if value == "" {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(dateutils.DateLayoutISO, value)
	if err != nil {
		return &parsererror.InvalidDateError{Value: value, Layout: "YYYY-MM-DD"}
	}
	*d = Date{t}
	return nil
}
