// Package export writes the entry collections to delimited CSV files.
// This is an output format for spreadsheets, not an import format; the
// backup package owns the JSON round trip.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/Te4g/financial-tracker/internal/backup"
	"github.com/Te4g/financial-tracker/internal/models"
)

var log = logrus.New()

// Global CSV delimiter - can be configured via centralized config or environment variable
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		// Use first rune only
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// entryRow is the flattened CSV shape of an entry. Amounts carry two decimal
// places; taxes collapse to Name:percentage pairs joined by '|'.
type entryRow struct {
	ID          string `csv:"Id"`
	Type        string `csv:"Type"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Frequency   string `csv:"Frequency"`
	Date        string `csv:"Date"`
	Taxes       string `csv:"Taxes"`
}

// WriteEntriesToCSV writes entries to a CSV file in a standardized format.
func WriteEntriesToCSV(entries []models.Entry, csvFile string) error {
	if entries == nil {
		return fmt.Errorf("cannot write nil entries to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(entries),
	}).Info("Writing entries to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		log.WithError(err).Error("Failed to create directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]entryRow, len(entries))
	for i, entry := range entries {
		rows[i] = toRow(entry)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal entries to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(entries),
	}).Info("Successfully wrote entries to CSV file")

	return nil
}

// WriteDocumentToCSV writes a whole backup document, income first, to a CSV
// file.
func WriteDocumentToCSV(doc backup.Document, csvFile string) error {
	entries := make([]models.Entry, 0, len(doc.Income)+len(doc.Expenses))
	entries = append(entries, doc.Income...)
	entries = append(entries, doc.Expenses...)

	log.WithFields(logrus.Fields{
		"count":     len(entries),
		"file":      csvFile,
		"delimiter": string(Delimiter),
	}).Info("Exporting entries to CSV file")

	return WriteEntriesToCSV(entries, csvFile)
}

func toRow(entry models.Entry) entryRow {
	taxes := make([]string, len(entry.Taxes))
	for i, tax := range entry.Taxes {
		taxes[i] = fmt.Sprintf("%s:%s", tax.Name, tax.Percentage.String())
	}

	return entryRow{
		ID:          entry.ID,
		Type:        string(entry.Type),
		Description: entry.Description,
		Amount:      entry.Amount.StringFixed(2),
		Frequency:   string(entry.Frequency),
		Date:        entry.Date.String(),
		Taxes:       strings.Join(taxes, "|"),
	}
}
