// Package normalize holds the pure value normalizers shared by every import
// path: date parsing, amount parsing, merchant-candidate extraction and the
// SHA-256 fingerprints used for deduplication.
package normalize

import (
	"strings"
	"time"
)

// dateLayouts is tried in order; the first layout that parses wins. US slash
// comes before EU slash so "01/15/2026" resolves month-first and "15/01/2026"
// falls through to the EU layout.
var dateLayouts = []string{
	"01/02/2006",          // 01/15/2026
	"2006-01-02",          // 2026-01-15
	"02/01/2006",          // 15/01/2026
	"01-02-2006",          // 01-15-2026
	"02-01-2006",          // 15-01-2026
	"2006/01/02",          // 2026/01/15
	"01/02/06",            // 01/15/26
	"02-Jan-2006",         // 15-Jan-2026
	"02 Jan 2006",         // 15 Jan 2026
	"Jan 2, 2006",         // Jan 15, 2026
	"January 2, 2006",     // January 15, 2026
	"2006-01-02T15:04:05", // 2026-01-15T12:00:00 (fractional seconds tolerated)
}

// ParseDate returns the input reformatted as YYYY-MM-DD. Unknown formats
// return the trimmed input unchanged so the fingerprint of an unparseable
// row is still stable across imports.
func ParseDate(raw string) string {
	v := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return v
}
