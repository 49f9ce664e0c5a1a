package extract

import (
	"regexp"
	"strings"
)

// Keywords whose presence marks a row as a totals / summary line rather
// than an individual transaction.
var noisePhrases = []string{
	"total", "balance", "beginning balance", "ending balance",
	"new balance", "previous balance", "account summary",
	"subtotal", "statement period", "continued on", "page ",
	"opening balance", "closing balance",
}

// Column separator inside a text-rendered table row: a run of 3+ spaces.
var cellSeparatorRe = regexp.MustCompile(`\s{3,}`)

func normCell(v string) string {
	return strings.Join(strings.Fields(v), " ")
}

func isNoiseRow(row []string) bool {
	joined := strings.ToLower(strings.TrimSpace(strings.Join(row, " ")))
	if joined == "" {
		return true
	}
	for _, phrase := range noisePhrases {
		if strings.Contains(joined, phrase) {
			return true
		}
	}
	return false
}

// looksLikeHeader reports whether a row is mostly alphabetic cells, the
// shape of a column-header line rather than a data line.
func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	alpha := 0
	for _, c := range row {
		stripped := strings.NewReplacer(".", "", ",", "", "-", "", "$", "", " ", "").Replace(c)
		if stripped != "" && !isNumeric(stripped) {
			alpha++
		}
	}
	return float64(alpha)/float64(len(row)) > 0.55
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func rowsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// splitTableRows turns one page's text lines into candidate table rows:
// lines that break into two or more cells on 3+-space runs.
func splitTableRows(lines []string) [][]string {
	var rows [][]string
	for _, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells := cellSeparatorRe.Split(strings.TrimSpace(line), -1)
		if len(cells) < 2 {
			continue
		}
		for i, c := range cells {
			cells[i] = normCell(c)
		}
		rows = append(rows, cells)
	}
	return rows
}

// extractDominantTable selects the transaction table out of per-page row
// candidates: the dominant column count (the mode across all rows) marks
// the real table; repeated header rows and totals lines are filtered out.
// Returns a needs-manual-mapping result when nothing usable remains.
func extractDominantTable(pageTables [][][]string, pages int) Result {
	var tables [][][]string
	for _, tbl := range pageTables {
		if len(tbl) >= 2 {
			tables = append(tables, tbl)
		}
	}
	if len(tables) == 0 {
		return needsManualMapping(pages, "No tables could be extracted from this document.")
	}

	colCounts := map[int]int{}
	var order []int
	for _, tbl := range tables {
		for _, row := range tbl {
			if len(row) > 0 {
				if colCounts[len(row)] == 0 {
					order = append(order, len(row))
				}
				colCounts[len(row)]++
			}
		}
	}
	if len(order) == 0 {
		return needsManualMapping(pages, "Tables found but all rows were empty.")
	}

	dominant := order[0]
	for _, n := range order {
		if colCounts[n] > colCounts[dominant] {
			dominant = n
		}
	}

	var headers []string
	var data [][]string

	for _, tbl := range tables {
		var normalized [][]string
		for _, row := range tbl {
			cells := make([]string, dominant)
			for i := 0; i < dominant; i++ {
				if i < len(row) {
					cells[i] = row[i]
				}
			}
			empty := true
			for _, c := range cells {
				if c != "" {
					empty = false
					break
				}
			}
			if !empty {
				normalized = append(normalized, cells)
			}
		}
		if len(normalized) == 0 {
			continue
		}

		var slice [][]string
		if headers == nil {
			headers = normalized[0]
			slice = normalized[1:]
		} else if rowsEqual(normalized[0], headers) || looksLikeHeader(normalized[0]) {
			// Some PDFs stamp the header on every page.
			slice = normalized[1:]
		} else {
			slice = normalized
		}
		for _, row := range slice {
			if !isNoiseRow(row) {
				data = append(data, row)
			}
		}
	}

	if headers == nil {
		return needsManualMapping(pages, "Could not identify a header row in the extracted tables.")
	}
	if len(data) == 0 {
		return needsManualMapping(pages, "Tables were found but contained no usable data rows after filtering.")
	}

	rows := make([]RawRow, 0, len(data))
	for _, cells := range data {
		row := make(RawRow, len(headers))
		for i, h := range headers {
			row[h] = cells[i]
		}
		rows = append(rows, row)
	}

	return Result{Status: StatusPreview, Headers: headers, Rows: rows, Pages: pages}
}
