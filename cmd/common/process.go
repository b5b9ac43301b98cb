// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"strings"

	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/fileutils"
	"github.com/Te4g/financial-tracker/internal/models"
	"github.com/Te4g/financial-tracker/internal/parsererror"

	"github.com/sirupsen/logrus"
)

// ParseTaxElements converts repeated "Name:percentage" flag values into tax
// elements, stamping each one with a fresh identifier. Range validation is
// left to the store and the profile store.
func ParseTaxElements(values []string, ids models.IDSource) ([]models.TaxElement, error) {
	if len(values) == 0 {
		return nil, nil
	}

	elements := make([]models.TaxElement, 0, len(values))
	for _, value := range values {
		name, percentage, found := strings.Cut(value, ":")
		percentage = strings.TrimSpace(percentage)
		if !found || name == "" || percentage == "" {
			return nil, fmt.Errorf("invalid tax element %q, expected Name:percentage", value)
		}
		parsed, err := currencyutils.ParseAmount(percentage)
		if err != nil {
			return nil, &parsererror.ParseError{Parser: "cli", Field: "percentage", Value: percentage, Err: err}
		}
		elements = append(elements, models.TaxElement{
			ID:         ids.NewID(),
			Name:       strings.TrimSpace(name),
			Percentage: parsed,
		})
	}
	return elements, nil
}

// FormatTaxes renders tax elements as "Name:percentage" pairs joined with
// a pipe, the same shape the CSV export uses.
func FormatTaxes(taxes []models.TaxElement) string {
	if len(taxes) == 0 {
		return ""
	}
	parts := make([]string, 0, len(taxes))
	for _, tax := range taxes {
		parts = append(parts, fmt.Sprintf("%s:%s", tax.Name, tax.Percentage.String()))
	}
	return strings.Join(parts, "|")
}

// WriteOutput writes rendered command output to the given file, or to
// standard output when no file is set.
func WriteOutput(data []byte, outputFile string, log *logrus.Logger) error {
	if outputFile == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := fileutils.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	log.Infof("Output written to %s", outputFile)
	return nil
}
