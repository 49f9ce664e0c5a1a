package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVPreview carries the headers and a capped slice of rows, plus the full
// row count so the UI can say "showing 20 of 142".
type CSVPreview struct {
	Headers            []string `json:"headers"`
	Rows               []RawRow `json:"rows"`
	TotalRowsPreviewed int      `json:"total_rows_previewed"`
	TotalRows          int      `json:"total_rows"`
}

// DecodeCSV parses CSV bytes into headers and row maps. A UTF-8 BOM is
// stripped; short rows are padded so every header resolves to a value.
func DecodeCSV(content []byte) ([]string, []RawRow, error) {
	text := strings.TrimPrefix(string(content), "\ufeff")
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("csv has no header row")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv header: %w", err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []RawRow
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading csv row: %w", err)
		}
		row := make(RawRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// PreviewCSV returns the headers and the first maxRows rows while still
// counting every row in the file.
func PreviewCSV(content []byte, maxRows int) (*CSVPreview, error) {
	headers, rows, err := DecodeCSV(content)
	if err != nil {
		return nil, err
	}

	preview := rows
	if len(preview) > maxRows {
		preview = preview[:maxRows]
	}
	return &CSVPreview{
		Headers:            headers,
		Rows:               preview,
		TotalRowsPreviewed: len(preview),
		TotalRows:          len(rows),
	}, nil
}
