package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Te4g/financial-tracker/internal/backup"
	"github.com/Te4g/financial-tracker/internal/models"
)

func sampleEntries() []models.Entry {
	return []models.Entry{
		{
			ID:          "in-1",
			Description: "Salary",
			Amount:      decimal.NewFromInt(1000),
			Frequency:   models.Monthly,
			Type:        models.Income,
			Taxes: []models.TaxElement{
				{ID: "t-1", Name: "Income tax", Percentage: decimal.NewFromInt(20)},
				{ID: "t-2", Name: "Social security", Percentage: decimal.RequireFromString("7.7")},
			},
			Date: models.NewDate(2024, time.January, 15),
		},
		{
			ID:          "ex-1",
			Description: "Rent",
			Amount:      decimal.RequireFromString("450.5"),
			Frequency:   models.Monthly,
			Type:        models.Expense,
			Date:        models.NewDate(2024, time.February, 1),
		},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestWriteEntriesToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, WriteEntriesToCSV(sampleEntries(), path))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.Equal(t, "Id,Type,Description,Amount,Frequency,Date,Taxes", lines[0])
	assert.Equal(t, "in-1,income,Salary,1000.00,monthly,2024-01-15,Income tax:20|Social security:7.7", lines[1])
	assert.Equal(t, "ex-1,expense,Rent,450.50,monthly,2024-02-01,", lines[2])
}

func TestWriteEntriesToCSV_CustomDelimiter(t *testing.T) {
	SetDelimiter(';')
	defer SetDelimiter(',')

	path := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, WriteEntriesToCSV(sampleEntries(), path))

	lines := readLines(t, path)
	assert.Equal(t, "Id;Type;Description;Amount;Frequency;Date;Taxes", lines[0])
}

func TestWriteEntriesToCSV_EmptyAndNil(t *testing.T) {
	t.Run("empty slice writes only the header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "entries.csv")
		require.NoError(t, WriteEntriesToCSV([]models.Entry{}, path))

		lines := readLines(t, path)
		require.Len(t, lines, 1)
		assert.Equal(t, "Id,Type,Description,Amount,Frequency,Date,Taxes", lines[0])
	})

	t.Run("nil slice is rejected", func(t *testing.T) {
		err := WriteEntriesToCSV(nil, filepath.Join(t.TempDir(), "entries.csv"))
		assert.Error(t, err)
	})
}

func TestWriteEntriesToCSV_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "entries.csv")
	require.NoError(t, WriteEntriesToCSV(sampleEntries(), path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteDocumentToCSV_IncomeFirst(t *testing.T) {
	entries := sampleEntries()
	doc := backup.Document{
		Income:   []models.Entry{entries[0]},
		Expenses: []models.Entry{entries[1]},
	}

	path := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, WriteDocumentToCSV(doc, path))

	lines := readLines(t, path)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "in-1,income"))
	assert.True(t, strings.HasPrefix(lines[2], "ex-1,expense"))
}

func TestWriteEntriesToCSV_QuotesDelimiterInFields(t *testing.T) {
	entries := []models.Entry{{
		ID:          "in-1",
		Description: "Consulting, retainer",
		Amount:      decimal.NewFromInt(500),
		Frequency:   models.Monthly,
		Type:        models.Income,
		Date:        models.NewDate(2024, time.March, 1),
	}}

	path := filepath.Join(t.TempDir(), "entries.csv")
	require.NoError(t, WriteEntriesToCSV(entries, path))

	lines := readLines(t, path)
	assert.Contains(t, lines[1], `"Consulting, retainer"`)
}
