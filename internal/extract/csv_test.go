package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCSV(t *testing.T) {
	content := []byte("Date,Description,Amount\n01/15/2026,STARBUCKS #123,-4.50\n01/16/2026,PAYROLL,2000.00\n")

	headers, rows, err := DecodeCSV(content)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, "STARBUCKS #123", rows[0]["Description"])
	assert.Equal(t, "2000.00", rows[1]["Amount"])
}

func TestDecodeCSVStripsBOM(t *testing.T) {
	content := []byte("\ufeffDate,Amount\n01/15/2026,1.00\n")
	headers, _, err := DecodeCSV(content)
	require.NoError(t, err)
	assert.Equal(t, "Date", headers[0])
}

func TestDecodeCSVPadsShortRows(t *testing.T) {
	content := []byte("Date,Description,Amount\n01/15/2026,COFFEE\n")
	_, rows, err := DecodeCSV(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0]["Amount"])
}

func TestDecodeCSVEmptyFails(t *testing.T) {
	_, _, err := DecodeCSV([]byte(""))
	assert.Error(t, err)
}

func TestPreviewCSVCapsRowsButCountsAll(t *testing.T) {
	content := "Date,Amount\n"
	for i := 0; i < 42; i++ {
		content += "01/15/2026,1.00\n"
	}

	p, err := PreviewCSV([]byte(content), 20)
	require.NoError(t, err)
	assert.Len(t, p.Rows, 20)
	assert.Equal(t, 20, p.TotalRowsPreviewed)
	assert.Equal(t, 42, p.TotalRows)
}

func TestPreviewCSVSmallFile(t *testing.T) {
	p, err := PreviewCSV([]byte("Date,Amount\n01/15/2026,1.00\n"), 20)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TotalRowsPreviewed)
	assert.Equal(t, 1, p.TotalRows)
}
