// Package extract turns raw statement bytes (CSV text, PDF documents,
// plain-text exports) into a uniform headers-plus-rows shape for the import
// pipeline. Extraction never fails with an error: anything unparseable
// degrades to a needs-manual-mapping result carrying a human-readable
// reason.
package extract

// Extraction status values.
const (
	StatusPreview            = "preview"
	StatusNeedsManualMapping = "needs_manual_mapping"
)

// RawRow maps a header name to the string cell value beneath it. Rows exist
// only for the duration of one import or preview call.
type RawRow map[string]string

// Result is the uniform output of the PDF and text extractors.
type Result struct {
	Status  string   `json:"status"`
	Headers []string `json:"headers,omitempty"`
	Rows    []RawRow `json:"rows,omitempty"`
	Pages   int      `json:"pages"`
	Reason  string   `json:"reason,omitempty"`
}

func needsManualMapping(pages int, reason string) Result {
	return Result{Status: StatusNeedsManualMapping, Pages: pages, Reason: reason}
}
