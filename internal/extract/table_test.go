package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTableRows(t *testing.T) {
	lines := []string{
		"Date         Description               Amount",
		"01/15/2026   STARBUCKS #123            -4.50",
		"plain prose line with single spaces only",
		"",
	}
	rows := splitTableRows(lines)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, rows[0])
	assert.Equal(t, []string{"01/15/2026", "STARBUCKS #123", "-4.50"}, rows[1])
}

func TestExtractDominantTable(t *testing.T) {
	page1 := [][]string{
		{"Date", "Description", "Amount"},
		{"01/15/2026", "STARBUCKS #123", "-4.50"},
		{"01/16/2026", "PAYROLL DEPOSIT", "2000.00"},
		{"Statement period", "Jan 2026"}, // wrong width, padded then noise-filtered
	}
	page2 := [][]string{
		{"Date", "Description", "Amount"}, // repeated per-page header
		{"01/20/2026", "NETFLIX.COM", "-15.49"},
		{"Ending balance", "", "1980.01"}, // noise row
	}

	res := extractDominantTable([][][]string{page1, page2}, 2)
	require.Equal(t, StatusPreview, res.Status)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, res.Headers)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, RawRow{"Date": "01/20/2026", "Description": "NETFLIX.COM", "Amount": "-15.49"}, res.Rows[2])
	assert.Equal(t, 2, res.Pages)
}

func TestExtractDominantTablePicksModeWidth(t *testing.T) {
	page := [][]string{
		{"Account", "1234"}, // two-cell noise pair
		{"Date", "Description", "Amount"},
		{"01/15/2026", "COFFEE", "-4.50"},
		{"01/16/2026", "LUNCH", "-12.00"},
		{"01/17/2026", "BOOKS", "-30.00"},
	}
	res := extractDominantTable([][][]string{page}, 1)
	require.Equal(t, StatusPreview, res.Status)
	// Three-column rows dominate; narrower rows are padded to that width and
	// the first non-empty row of the table is taken as the header.
	assert.Len(t, res.Headers, 3)
	assert.Equal(t, []string{"Account", "1234", ""}, res.Headers)
	assert.Len(t, res.Rows, 4)
}

func TestExtractDominantTableNoTables(t *testing.T) {
	res := extractDominantTable(nil, 5)
	assert.Equal(t, StatusNeedsManualMapping, res.Status)
	assert.Equal(t, 5, res.Pages)
	assert.NotEmpty(t, res.Reason)
}

func TestExtractDominantTableAllNoise(t *testing.T) {
	page := [][]string{
		{"Date", "Description", "Amount"},
		{"Total", "", "123.00"},
	}
	res := extractDominantTable([][][]string{page}, 1)
	assert.Equal(t, StatusNeedsManualMapping, res.Status)
	assert.Contains(t, res.Reason, "no usable data rows")
}

func TestLooksLikeHeader(t *testing.T) {
	assert.True(t, looksLikeHeader([]string{"Date", "Description", "Amount"}))
	assert.False(t, looksLikeHeader([]string{"01/15/2026", "1234", "-4.50"}))
}

func TestIsNoiseRow(t *testing.T) {
	assert.True(t, isNoiseRow([]string{"Ending balance", "1980.01"}))
	assert.True(t, isNoiseRow([]string{"", ""}))
	assert.False(t, isNoiseRow([]string{"01/15/2026", "STARBUCKS", "-4.50"}))
}
