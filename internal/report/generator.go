package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/Te4g/financial-tracker/internal/currencyutils"
	"github.com/Te4g/financial-tracker/internal/logging"
	"github.com/Te4g/financial-tracker/internal/models"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Generator renders financial summaries for terminal or machine consumption.
// Amounts are rounded to two decimal places here and nowhere else; the
// aggregation itself never rounds.
type Generator struct {
	logger *logrus.Logger
}

// NewGenerator creates a new instance of Generator.
func NewGenerator() *Generator {
	return &Generator{
		logger: logging.GetLogger(),
	}
}

// Generate renders the summary in the specified format (text or json).
// It returns the rendition as a byte slice and an error if the format is
// unsupported.
func (g *Generator) Generate(summary models.Summary, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.generateJSON(summary)
	case FormatText:
		return g.generateText(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// jsonSummary fixes the wire shape to two decimal places.
type jsonSummary struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
	TotalTaxes    string `json:"totalTaxes"`
	NetIncome     string `json:"netIncome"`
	Balance       string `json:"balance"`
}

func (g *Generator) generateJSON(summary models.Summary) ([]byte, error) {
	rendition := jsonSummary{
		TotalIncome:   currencyutils.FormatAmount(summary.TotalIncome),
		TotalExpenses: currencyutils.FormatAmount(summary.TotalExpenses),
		TotalTaxes:    currencyutils.FormatAmount(summary.TotalTaxes),
		NetIncome:     currencyutils.FormatAmount(summary.NetIncome),
		Balance:       currencyutils.FormatAmount(summary.Balance),
	}

	jsonReport, err := json.MarshalIndent(rendition, "", "  ")
	if err != nil {
		g.logger.Errorf("Failed to marshal JSON report: %v", err)
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return jsonReport, nil
}

func (g *Generator) generateText(summary models.Summary) ([]byte, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', tabwriter.AlignRight)

	lines := []struct {
		label string
		value string
	}{
		{"Total income", currencyutils.FormatAmount(summary.TotalIncome)},
		{"Total expenses", currencyutils.FormatAmount(summary.TotalExpenses)},
		{"Total taxes", currencyutils.FormatAmount(summary.TotalTaxes)},
		{"Net income", currencyutils.FormatAmount(summary.NetIncome)},
		{"Balance", currencyutils.FormatAmount(summary.Balance)},
	}
	for _, line := range lines {
		fmt.Fprintf(w, "%s:\t%s\t\n", line.label, line.value)
	}

	if err := w.Flush(); err != nil {
		g.logger.Errorf("Failed to render text report: %v", err)
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}
	return buf.Bytes(), nil
}
