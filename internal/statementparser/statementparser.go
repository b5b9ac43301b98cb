// Package statementparser converts semicolon-delimited bank statement
// exports into entries. The format is positional: a header line that is
// discarded, then one record per line with the date in column 0, the
// description in column 2, the debit amount in column 8 and the credit
// amount in column 9. Rows are split on the literal delimiter, never
// quote-aware, because the legacy exports are not quoted.
package statementparser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/dateutils"
	"github.com/Te4g/financial-tracker/internal/logging"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/parsererror"
)

// Column layout of the legacy export. Rows carry at least ten fields; short
// rows are padded with empty fields rather than rejected.
const (
	columnDate        = 0
	columnDescription = 2
	columnDebit       = 8
	columnCredit      = 9
	columnCount       = 10
)

var log = logrus.New()

var ids models.IDSource = models.UUIDSource{}

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// SetIDSource sets the identifier source for parsed entries. Tests and
// deterministic imports inject sequences here.
func SetIDSource(source models.IDSource) {
	if source != nil {
		ids = source
	}
}

// Parse reads statement text and returns the entries it carries, in input
// order. The first line is always treated as the header and discarded. Rows
// whose date cannot be read are skipped with a warning; rows with neither
// debit nor credit are dropped silently. Identical input always yields the
// identical sequence.
func Parse(r io.Reader) ([]models.Entry, error) {
	scanner := bufio.NewScanner(r)

	var entries []models.Entry
	line := 0
	skipped := 0

	for scanner.Scan() {
		line++
		if line == 1 {
			// Header row, column names are not used.
			continue
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		entry, ok, err := convertRow(text, line)
		if err != nil {
			skipped++
			log.WithError(err).WithFields(logrus.Fields{
				logging.FieldLine:   line,
				logging.FieldReason: "unreadable date",
			}).Warn("Skipping statement row")
			continue
		}
		if !ok {
			// No debit and no credit: the row carries no financial signal.
			continue
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement: %w", err)
	}

	log.WithFields(logrus.Fields{
		logging.FieldCount: len(entries),
		"skipped_rows":     skipped,
	}).Info("Parsed statement")

	return entries, nil
}

// convertRow turns one data row into an entry. The second return value is
// false when the row is dropped for lack of an amount. Date failures come
// back as a RowError wrapping the InvalidDateError for that line.
func convertRow(text string, line int) (models.Entry, bool, error) {
	fields := strings.Split(text, ";")
	if len(fields) < columnCount {
		padded := make([]string, columnCount)
		copy(padded, fields)
		fields = padded
	}

	debit := currencyutils.ParseAmountLenient(fields[columnDebit])
	credit := currencyutils.ParseAmountLenient(fields[columnCredit])

	entryType := models.Income
	amount := credit.Abs()
	if !currencyutils.IsZero(debit) {
		entryType = models.Expense
		amount = debit.Abs()
	}

	if currencyutils.IsZero(amount) {
		return models.Entry{}, false, nil
	}

	date, err := dateutils.ParseStatementDate(fields[columnDate])
	if err != nil {
		return models.Entry{}, false, &parsererror.RowError{Line: line, Err: err}
	}

	entry := models.Entry{
		ID:          ids.NewID(),
		Description: strings.TrimSpace(fields[columnDescription]),
		Amount:      amount,
		Frequency:   models.Monthly,
		Type:        entryType,
		Date:        models.DateOf(date),
	}
	return entry, true, nil
}

// ParseFile opens a statement file and parses its rows.
func ParseFile(filePath string) ([]models.Entry, error) {
	log.WithField(logging.FieldFile, filePath).Info("Parsing statement file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).WithField(logging.FieldFile, filePath).Warn("Failed to close statement file")
		}
	}()

	return Parse(file)
}

// ValidateFormat checks whether a file looks like a semicolon-delimited
// statement export. It returns false, not an error, for readable files in
// some other format.
func ValidateFormat(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).WithField(logging.FieldFile, filePath).Warn("Failed to close file during format validation")
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		return strings.Contains(text, ";"), nil
	}
	if err := scanner.Err(); err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	log.WithField(logging.FieldFile, filePath).Info("File is empty")
	return false, nil
}

// ImportDir parses every .csv file in a directory concurrently and returns
// the combined entries, grouped by file in lexical filename order so repeated
// imports are deterministic.
func ImportDir(ctx context.Context, dir string) ([]models.Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var files []string
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(item.Name()), ".csv") {
			files = append(files, filepath.Join(dir, item.Name()))
		}
	}
	sort.Strings(files)

	results := make([][]models.Entry, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parsed, err := ParseFile(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var entries []models.Entry
	for _, parsed := range results {
		entries = append(entries, parsed...)
	}

	log.WithFields(logrus.Fields{
		logging.FieldCount: len(entries),
		"files":            len(files),
	}).Info("Imported statement directory")

	return entries, nil
}
