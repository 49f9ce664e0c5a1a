package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ExtractPDF pulls a transaction table out of PDF bytes.
//
// Two tiers: first the page text is scanned for embedded table structure
// (multi-cell rows selected by dominant column count); if no table emerges,
// the line-based text parser with format auto-detection takes over. Always
// returns a Result, never an error; open and parse failures degrade to a
// needs-manual-mapping status.
func ExtractPDF(content []byte) (result Result) {
	defer func() {
		// go-fitz calls into mupdf; a malformed document must degrade, not
		// take the request down.
		if r := recover(); r != nil {
			result = needsManualMapping(0, fmt.Sprintf("Could not parse PDF: %v", r))
		}
	}()

	doc, err := fitz.NewFromMemory(content)
	if err != nil {
		return needsManualMapping(0, fmt.Sprintf(
			"Could not open PDF: %v. The document may be corrupted or password-protected.", err))
	}
	defer doc.Close()

	pages := doc.NumPage()
	var pageTables [][][]string
	var allLines []string

	for i := 0; i < pages; i++ {
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		lines := strings.Split(text, "\n")
		allLines = append(allLines, lines...)
		pageTables = append(pageTables, splitTableRows(lines))
	}

	if tableResult := extractDominantTable(pageTables, pages); tableResult.Status == StatusPreview {
		return tableResult
	}

	if textResult := ParseTextLines(allLines, pages); textResult.Status == StatusPreview {
		return textResult
	}

	return needsManualMapping(pages,
		"No tables could be extracted from this PDF. The document may be "+
			"scanned/image-based, use a non-standard layout, or have "+
			"text-extraction restrictions.")
}
