// Package dateutils provides common date and time operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Te4g/financial-tracker/internal/parsererror"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutStatement = "02/01/2006"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
)

// CommonFormats is a list of standard formats to try when parsing dates
// typed by a user on the command line.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutStatement,
	DateLayoutEuropean,
	DateLayoutFull,
	"02-01-2006",
	"2006/01/02",
}

// ParseDate attempts to parse a date string using multiple common formats
// Returns the parsed time and the detected format
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseStatementDate converts a statement date token in DD/MM/YYYY order into
// a time.Time. The token order is reversed into YYYY-MM-DD and the result is
// parsed as an ISO date, so an impossible calendar date fails here too.
func ParseStatementDate(value string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 3 {
		return time.Time{}, &parsererror.InvalidDateError{Value: value, Layout: "DD/MM/YYYY"}
	}

	iso := parts[2] + "-" + parts[1] + "-" + parts[0]
	t, err := time.Parse(DateLayoutISO, iso)
	if err != nil {
		return time.Time{}, &parsererror.InvalidDateError{Value: value, Layout: "DD/MM/YYYY"}
	}
	return t, nil
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)

	re := regexp.MustCompile(`\s+`)
	dateStr = re.ReplaceAllString(dateStr, " ")

	return dateStr
}

// CompareDates compares two dates and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func CompareDates(date1, date2 time.Time) int {
	// Normalize dates to remove time component
	date1 = time.Date(date1.Year(), date1.Month(), date1.Day(), 0, 0, 0, 0, time.UTC)
	date2 = time.Date(date2.Year(), date2.Month(), date2.Day(), 0, 0, 0, 0, time.UTC)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	} else {
		return 0
	}
}
