package statementparser

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Te4g/financial-tracker/internal/models"
)

// cryptoRandIntn returns a random int in [0, n) using crypto/rand
func cryptoRandIntn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0
	}
	return int(result.Int64())
}

// sequenceIDs hands out deterministic identifiers for asserting on parsed
// entries. The counter is atomic because ImportDir mints IDs from multiple
// goroutines.
type sequenceIDs struct {
	next atomic.Int64
}

func (s *sequenceIDs) NewID() string {
	return fmt.Sprintf("id-%d", s.next.Add(1))
}

func useSequenceIDs(t *testing.T) *sequenceIDs {
	t.Helper()
	source := &sequenceIDs{}
	SetIDSource(source)
	t.Cleanup(func() {
		SetIDSource(models.UUIDSource{})
	})
	return source
}

const statementHeader = "Date;Valeur;Description;Ref;Info;Type;Solde;Devise;Debit;Credit"

func statement(rows ...string) string {
	return statementHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

func TestParse_DebitRow(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement("01/03/2024;;Groceries;;;;;;45.50;;")))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "id-1", entry.ID)
	assert.Equal(t, models.Expense, entry.Type)
	assert.True(t, entry.Amount.Equal(decimal.NewFromFloat(45.50)), "amount: %s", entry.Amount)
	assert.Equal(t, "Groceries", entry.Description)
	assert.Equal(t, models.Monthly, entry.Frequency)
	assert.Equal(t, models.NewDate(2024, time.March, 1), entry.Date)
	assert.Empty(t, entry.Taxes)
}

func TestParse_CreditRow(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement("15/01/2024;;Salary;;;;;;;2500.00")))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, models.Income, entry.Type)
	assert.True(t, entry.Amount.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, models.NewDate(2024, time.January, 15), entry.Date)
}

func TestParse_DebitWinsOverCredit(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement("01/03/2024;;Mixed;;;;;;10.00;99.00")))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, models.Expense, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(10)))
}

func TestParse_NegativeAmountsUseAbsoluteValue(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement(
		"01/03/2024;;Refund reversal;;;;;;-45.50;;",
		"02/03/2024;;Rebate;;;;;;;-12.00",
	)))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.Expense, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromFloat(45.50)))
	assert.Equal(t, models.Income, entries[1].Type)
	assert.True(t, entries[1].Amount.Equal(decimal.NewFromInt(12)))
}

func TestParse_DropsRowsWithoutAmount(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement(
		"01/03/2024;;No amounts;;;;;;;",
		"02/03/2024;;Explicit zeros;;;;;;0;0.00",
		"03/03/2024;;Unparseable;;;;;;n/a;--",
		"04/03/2024;;Kept;;;;;;5.00;;",
	)))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Kept", entries[0].Description)
}

func TestParse_SkipsBlankLines(t *testing.T) {
	useSequenceIDs(t)

	raw := statementHeader + "\n\n   \n01/03/2024;;Groceries;;;;;;45.50;;\n\t\n02/03/2024;;Fuel;;;;;;30.00;;\n\n"
	entries, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Groceries", entries[0].Description)
	assert.Equal(t, "Fuel", entries[1].Description)
}

func TestParse_HeaderAlwaysDiscarded(t *testing.T) {
	useSequenceIDs(t)

	// Even a first line shaped like a data row is treated as the header.
	raw := "01/03/2024;;Looks like data;;;;;;45.50;;\n02/03/2024;;Real row;;;;;;30.00;;\n"
	entries, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Real row", entries[0].Description)
}

func TestParse_ShortRowsAreTolerated(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement(
		"garbage",
		"01/03/2024;;Only description",
		"02/03/2024;;Nine fields;;;;;;12.00",
		"03/03/2024;;Full row;;;;;;7.50;;",
	)))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// The nine-field row still carries its debit in column 8.
	assert.Equal(t, "Nine fields", entries[0].Description)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, "Full row", entries[1].Description)
}

func TestParse_BadDateSkipsOnlyThatRow(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement(
		"31/13/2024;;Bad month;;;;;;10.00;;",
		"2024-03-01;;Wrong order;;;;;;10.00;;",
		"02/03/2024;;Good row;;;;;;10.00;;",
	)))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Good row", entries[0].Description)
}

func TestParse_UnparseableDebitFallsBackToCredit(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement("01/03/2024;;Salary;;;;;;n/a;1000.00")))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, models.Income, entries[0].Type)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(1000)))
}

func TestParse_CommaDecimalSeparator(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement("01/03/2024;;Courses;;;;;;45,50;;")))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromFloat(45.50)))
}

func TestParse_EmptyInput(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = Parse(strings.NewReader(statementHeader + "\n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_PreservesInputOrder(t *testing.T) {
	useSequenceIDs(t)

	entries, err := Parse(strings.NewReader(statement(
		"03/03/2024;;Third;;;;;;3.00;;",
		"01/03/2024;;First;;;;;;1.00;;",
		"02/03/2024;;Second;;;;;;2.00;;",
	)))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Third", entries[0].Description)
	assert.Equal(t, "First", entries[1].Description)
	assert.Equal(t, "Second", entries[2].Description)
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestParse_WindowsLineEndings(t *testing.T) {
	useSequenceIDs(t)

	raw := statementHeader + "\r\n01/03/2024;;Groceries;;;;;;45.50;;\r\n"
	entries, err := Parse(strings.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Amount.Equal(decimal.NewFromFloat(45.50)))
}

func TestParseFile(t *testing.T) {
	useSequenceIDs(t)

	t.Run("parses an existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "statement.csv")
		require.NoError(t, os.WriteFile(path, []byte(statement("01/03/2024;;Groceries;;;;;;45.50;;")), 0o600))

		entries, err := ParseFile(path)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		_, err := ParseFile(filepath.Join(t.TempDir(), "absent.csv"))
		assert.Error(t, err)
	})
}

func TestValidateFormat(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("semicolon delimited file is valid", func(t *testing.T) {
		path := write("ok.csv", statement("01/03/2024;;Groceries;;;;;;45.50;;"))
		valid, err := ValidateFormat(path)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("comma delimited file is not", func(t *testing.T) {
		path := write("comma.csv", "Date,Description,Amount\n01/03/2024,Groceries,45.50\n")
		valid, err := ValidateFormat(path)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("empty file is not", func(t *testing.T) {
		path := write("empty.csv", "")
		valid, err := ValidateFormat(path)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("missing file returns an error", func(t *testing.T) {
		_, err := ValidateFormat(filepath.Join(dir, "absent.csv"))
		assert.Error(t, err)
	})
}

func TestImportDir(t *testing.T) {
	useSequenceIDs(t)

	t.Run("combines files in lexical order", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.csv"),
			[]byte(statement("02/03/2024;;From B;;;;;;2.00;;")), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
			[]byte(statement("01/03/2024;;From A;;;;;;1.00;;")), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"),
			[]byte("not a statement"), 0o600))

		entries, err := ImportDir(context.Background(), dir)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "From A", entries[0].Description)
		assert.Equal(t, "From B", entries[1].Description)
	})

	t.Run("empty directory yields no entries", func(t *testing.T) {
		entries, err := ImportDir(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("missing directory returns an error", func(t *testing.T) {
		_, err := ImportDir(context.Background(), filepath.Join(t.TempDir(), "absent"))
		assert.Error(t, err)
	})

	t.Run("canceled context aborts", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"),
			[]byte(statement("01/03/2024;;Row;;;;;;1.00;;")), 0o600))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ImportDir(ctx, dir)
		assert.Error(t, err)
	})
}

// Helper functions for property-based testing
func randomStatementRow() string {
	dates := []string{"01/03/2024", "15/06/2023", "31/12/2022", "29/02/2024", "bad-date", ""}
	descriptions := []string{"Groceries", "Salary", "Rent", "Fuel", "Transfer", ""}
	amounts := []string{"45.50", "1000.00", "-12.30", "0", "", "n/a", "7,25"}

	fieldCount := cryptoRandIntn(12) + 1
	fields := make([]string, fieldCount)
	if fieldCount > columnDate {
		fields[columnDate] = dates[cryptoRandIntn(len(dates))]
	}
	if fieldCount > columnDescription {
		fields[columnDescription] = descriptions[cryptoRandIntn(len(descriptions))]
	}
	if fieldCount > columnDebit {
		fields[columnDebit] = amounts[cryptoRandIntn(len(amounts))]
	}
	if fieldCount > columnCredit {
		fields[columnCredit] = amounts[cryptoRandIntn(len(amounts))]
	}
	return strings.Join(fields, ";")
}

func TestProperty_ParseIsDeterministic(t *testing.T) {
	// Property: identical input text always yields an identical entry
	// sequence, whatever mix of good, short, blank and malformed rows it has.
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			rows := make([]string, cryptoRandIntn(15))
			for j := range rows {
				rows[j] = randomStatementRow()
			}
			raw := statement(rows...)

			SetIDSource(&sequenceIDs{})
			first, err := Parse(strings.NewReader(raw))
			require.NoError(t, err)

			SetIDSource(&sequenceIDs{})
			second, err := Parse(strings.NewReader(raw))
			require.NoError(t, err)

			SetIDSource(models.UUIDSource{})

			require.Len(t, second, len(first))
			for j := range first {
				assert.Equal(t, first[j], second[j])
			}
		})
	}
}

func TestProperty_ParsedEntriesAreValid(t *testing.T) {
	// Property: every entry a statement produces passes the domain
	// invariants: monthly cadence, non-negative amount, no taxes.
	for i := 0; i < 100; i++ {
		t.Run(fmt.Sprintf("iteration_%d", i), func(t *testing.T) {
			rows := make([]string, cryptoRandIntn(15))
			for j := range rows {
				rows[j] = randomStatementRow()
			}

			SetIDSource(&sequenceIDs{})
			entries, err := Parse(strings.NewReader(statement(rows...)))
			SetIDSource(models.UUIDSource{})
			require.NoError(t, err)

			assert.LessOrEqual(t, len(entries), len(rows))
			for _, entry := range entries {
				assert.NoError(t, entry.Validate())
				assert.Equal(t, models.Monthly, entry.Frequency)
				assert.False(t, entry.Amount.IsNegative())
				assert.False(t, entry.Amount.IsZero())
				assert.Empty(t, entry.Taxes)
			}
		})
	}
}
