package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectTextFormat(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  TextFormat
	}{
		{"year-end", []string{"2025 Year-End Summary", "Date Description Location Amount"}, FormatYearEnd},
		{"tabular", []string{"Date        Description        Amount  Running Bal."}, FormatTabular},
		{"section-based", []string{"Deposits and other additions", "Date Description Amount"}, FormatSectionBased},
		{"nothing", []string{"Dear customer,", "thank you for banking with us"}, FormatUnrecognized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTextFormat(tt.lines))
		})
	}
}

func TestParseYearEndSummary(t *testing.T) {
	lines := []string{
		"Date Description Location Amount",
		"Restaurants",
		"01/15/24 STARBUCKS #123 SAN FRANCISCO, CA 12.50",
		"02/03/24 CHIPOTLE 0441 OAKLAND, CA 1,290.88",
		"Subtotal for Restaurants 1,303.38",
	}

	res := ParseTextLines(lines, 3)
	require.Equal(t, StatusPreview, res.Status)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, res.Headers)
	require.Len(t, res.Rows, 2)

	// All year-end rows are card charges, stored sign-flipped.
	assert.Equal(t, "01/15/24", res.Rows[0]["Date"])
	assert.Equal(t, "STARBUCKS #123 SAN FRANCISCO, CA", res.Rows[0]["Description"])
	assert.Equal(t, "-12.50", res.Rows[0]["Amount"])
	assert.Equal(t, "-1290.88", res.Rows[1]["Amount"])
	assert.Equal(t, 3, res.Pages)
}

func TestParseTabular(t *testing.T) {
	lines := []string{
		"Date        Description        Amount  Running Bal.",
		"01/02/2026  Beginning balance as of 01/02/2026       1,000.00",
		`01/05/2026  ONLINE PAYMENT TO CREDIT CARD\     -250.00     750.00`,
		"01/07/2026  PAYROLL DEPOSIT ACME CORP     2,000.00     2,750.00",
	}

	res := ParseTextLines(lines, 1)
	require.Equal(t, StatusPreview, res.Status)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "ONLINE PAYMENT TO CREDIT CARD", res.Rows[0]["Description"])
	assert.Equal(t, "-250.00", res.Rows[0]["Amount"])
	// Running balance column is discarded.
	assert.Equal(t, "2000.00", res.Rows[1]["Amount"])
}

func TestParseSectionBased(t *testing.T) {
	lines := []string{
		"Deposits and other additions",
		"Date Description Amount",
		"01/05/26 COUNTER CREDIT 500.00",
		"01/09/26 WIRE TYPE:WIRE IN ORIG:SOME COMPANY",
		"LLC REF 20260109 1,250.00",
		"Total deposits and other additions 1,750.00",
	}

	res := ParseTextLines(lines, 2)
	require.Equal(t, StatusPreview, res.Status)
	require.Len(t, res.Rows, 2)

	assert.Equal(t, "COUNTER CREDIT", res.Rows[0]["Description"])
	assert.Equal(t, "500.00", res.Rows[0]["Amount"])

	// Continuation line folds into the previous transaction and carries
	// the amount that the first line lacked.
	assert.Equal(t, "WIRE TYPE:WIRE IN ORIG:SOME COMPANY LLC REF 20260109", res.Rows[1]["Description"])
	assert.Equal(t, "1250.00", res.Rows[1]["Amount"])
}

func TestParseSectionBasedDropsAmountlessTail(t *testing.T) {
	lines := []string{
		"Date Description Amount",
		"01/05/26 SOME MEMO LINE WITHOUT A NUMBER",
	}
	res := ParseTextLines(lines, 1)
	assert.Equal(t, StatusNeedsManualMapping, res.Status)
}

func TestParseTextLinesUnrecognized(t *testing.T) {
	res := ParseTextLines([]string{"hello", "world"}, 4)
	assert.Equal(t, StatusNeedsManualMapping, res.Status)
	assert.Equal(t, 4, res.Pages)
	assert.Contains(t, res.Reason, "column-header")
}

func TestParseTextLinesHeaderButNoRows(t *testing.T) {
	res := ParseTextLines([]string{"Date Description Location Amount", "no transactions here"}, 1)
	assert.Equal(t, StatusNeedsManualMapping, res.Status)
	assert.Contains(t, res.Reason, "year-end")
}

func TestExtractTxt(t *testing.T) {
	blob := strings.Join([]string{
		"Date Description Location Amount",
		"01/15/24 STARBUCKS #123 SAN FRANCISCO, CA 12.50",
	}, "\n")

	res := ExtractTxt([]byte(blob))
	require.Equal(t, StatusPreview, res.Status)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "-12.50", res.Rows[0]["Amount"])
	assert.Equal(t, 0, res.Pages)
}
