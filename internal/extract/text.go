package extract

import (
	"regexp"
	"strings"
)

// TextFormat identifies one of the known line-oriented statement layouts.
// The classifier picks a format from sentinel header lines; the dispatch
// table below maps each format to its parser, so adding a fourth layout is
// one regexp, one parser and one registration.
type TextFormat int

const (
	FormatUnrecognized TextFormat = iota
	FormatYearEnd                 // "Date Description Location Amount" credit-card summary
	FormatTabular                 // "Date Description Amount Running Bal." flat export
	FormatSectionBased            // "Date Description Amount" sectioned statement
)

func (f TextFormat) String() string {
	switch f {
	case FormatYearEnd:
		return "year-end"
	case FormatTabular:
		return "tabular"
	case FormatSectionBased:
		return "section-based"
	default:
		return "unrecognized"
	}
}

// Sentinel header lines, one per layout.
var (
	reYearEndHeader = regexp.MustCompile(`(?i)^date\s+description\s+location\s+amount\s*$`)
	reTabularHeader = regexp.MustCompile(`(?i)date\s+description\s+amount\s+running\s+bal`)
	reSectionHeader = regexp.MustCompile(`(?i)^date\s+description\s+amount\s*$`)
)

var (
	// "11/17/25 DESCRIPTION …"
	reDateLine = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})\s+(.+)$`)
	// trailing amount: "SOME DESCRIPTION -1,234.56"
	reAmountEnd = regexp.MustCompile(`^(.*?)\s+(-?[\d,]+\.\d{2})\s*$`)
	// "MM/DD/YY  MERCHANT  LOCATION, ST  166.51"
	reYearEndLine = regexp.MustCompile(`^(\d{2}/\d{2}/\d{2})\s+(.+?)\s+([\d,]+\.\d{2})\s*$`)
	// zero-padded MM/DD/YYYY at line start
	reFullDate = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+)$`)
	// two right-aligned numbers (amount + running balance), 3+-space separated
	reTwoNumbers = regexp.MustCompile(`^(.*?)\s{3,}(-?[\d,]+\.\d{2})\s{3,}(-?[\d,]+\.\d{2})\s*$`)
)

// Lines starting with these are section labels or totals, never transactions.
var textNoisePrefixes = []string{
	"total ",
	"beginning balance",
	"ending balance",
	"opening balance",
	"closing balance",
	"deposits and other",
	"withdrawals and other",
	"account number",
	"page ",
	"statement period",
	"statement date",
	"customer service",
	"please see",
	"for questions",
	"for more information",
}

var textNoiseContains = []string{
	"- continued",
	"continued on next",
	"continued on page",
}

func isTextNoise(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range textNoisePrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	for _, s := range textNoiseContains {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

// DetectTextFormat classifies a statement by its sentinel header line.
func DetectTextFormat(lines []string) TextFormat {
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		switch {
		case reYearEndHeader.MatchString(line):
			return FormatYearEnd
		case reTabularHeader.MatchString(line):
			return FormatTabular
		case reSectionHeader.MatchString(line):
			return FormatSectionBased
		}
	}
	return FormatUnrecognized
}

var textParsers = map[TextFormat]func([]string) []RawRow{
	FormatYearEnd:      parseYearEndSummary,
	FormatTabular:      parseTabular,
	FormatSectionBased: parseSectionBased,
}

// textHeaders is the canonical header set every text-layout parser emits.
var textHeaders = []string{"Date", "Description", "Amount"}

// ParseTextLines detects the statement layout and parses its transaction
// lines. Never returns an error: unrecognized layouts and empty results
// degrade to a needs-manual-mapping status with a reason the user can act
// on.
func ParseTextLines(lines []string, pages int) Result {
	format := DetectTextFormat(lines)
	parser, ok := textParsers[format]
	if !ok {
		return needsManualMapping(pages,
			"No recognizable column-header line found. Supported layouts: "+
				"year-end summary, tabular export, section-based statement.")
	}

	rows := parser(lines)
	if len(rows) == 0 {
		return needsManualMapping(pages,
			"A "+format.String()+" header was found but no transaction lines could be parsed.")
	}

	return Result{Status: StatusPreview, Headers: textHeaders, Rows: rows, Pages: pages}
}

// parseYearEndSummary handles the year-end credit-card summary layout. Every
// matching line is a card charge, so amounts are negated on the way out.
func parseYearEndSummary(lines []string) []RawRow {
	var rows []RawRow
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := reYearEndLine.FindStringSubmatch(line)
		if m == nil {
			continue // category headings, subtotals, page numbers
		}
		rows = append(rows, RawRow{
			"Date":        m[1],
			"Description": strings.TrimSpace(m[2]),
			"Amount":      "-" + strings.ReplaceAll(m[3], ",", ""),
		})
	}
	return rows
}

// parseTabular handles the flat Date/Description/Amount/Running Bal export.
// Columns are right-aligned and separated by 3+ spaces; the running balance
// is discarded.
func parseTabular(lines []string) []RawRow {
	inSection := false
	var rows []RawRow

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if reTabularHeader.MatchString(line) {
			inSection = true
			continue
		}
		if !inSection {
			continue
		}

		dm := reFullDate.FindStringSubmatch(line)
		if dm == nil {
			continue
		}
		rest := strings.TrimSpace(dm[2])
		if isTextNoise(rest) {
			continue
		}

		nm := reTwoNumbers.FindStringSubmatch(rest)
		if nm == nil {
			continue // single-number lines are balance rows
		}
		rows = append(rows, RawRow{
			"Date":        dm[1],
			"Description": strings.TrimSpace(strings.TrimSuffix(nm[1], `\`)),
			"Amount":      strings.ReplaceAll(nm[2], ",", ""),
		})
	}
	return rows
}

// parseSectionBased handles statements where transactions sit under
// "Date Description Amount" section headers. A line without a leading date
// continues the previous transaction's description; a continuation line may
// also carry the amount when the first line ran long.
func parseSectionBased(lines []string) []RawRow {
	inSection := false
	var rows []RawRow
	var current RawRow

	flush := func() {
		if current != nil {
			rows = append(rows, current)
			current = nil
		}
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if reSectionHeader.MatchString(line) {
			inSection = true
			continue
		}
		if !inSection || isTextNoise(line) {
			continue
		}

		if dm := reDateLine.FindStringSubmatch(line); dm != nil {
			flush()
			rest := strings.TrimSpace(dm[2])
			row := RawRow{"Date": dm[1], "Description": rest, "Amount": ""}
			if am := reAmountEnd.FindStringSubmatch(rest); am != nil {
				row["Description"] = strings.TrimSpace(am[1])
				row["Amount"] = strings.ReplaceAll(am[2], ",", "")
			}
			current = row
			continue
		}

		if current == nil {
			continue
		}
		if current["Amount"] == "" {
			if am := reAmountEnd.FindStringSubmatch(line); am != nil {
				current["Description"] = strings.TrimSpace(current["Description"] + " " + am[1])
				current["Amount"] = strings.ReplaceAll(am[2], ",", "")
				continue
			}
		}
		current["Description"] = strings.TrimSpace(current["Description"] + " " + line)
	}
	flush()

	kept := rows[:0]
	for _, r := range rows {
		if r["Amount"] != "" {
			kept = append(kept, r)
		}
	}
	return kept
}

// ExtractTxt runs the text-layout parser over a plain-text statement upload.
func ExtractTxt(content []byte) Result {
	text := strings.ToValidUTF8(string(content), "�")
	return ParseTextLines(strings.Split(text, "\n"), 0)
}
