package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Bank and payment-network prefixes that carry no merchant signal.
// Longest alternatives first so shorter ones don't shadow them.
var prefixRe = regexp.MustCompile(`(?i)^(?:` +
	`ONLINE (?:PAYMENT|PURCHASE|TRANSFER|BANKING TRANSFER)\s*[-–]?\s*|` +
	`DEBIT CARD (?:PURCHASE|PAYMENT)\s+|` +
	`DEBIT (?:CARD\s+)?PURCHASE\s+|` +
	`DEBIT PURCHASE\s+|` +
	`RECURRING (?:CHARGE|PAYMENT|PMT)\s+|` +
	`BILL PAYMENT\s+|` +
	`POS (?:PURCHASE|DEBIT|PMT|REFUND)?\s*|` +
	`ACH (?:DEBIT|CREDIT|PMT|PAYMENT|TRANSFER)?\s*|` +
	`WIRE (?:TRANSFER|PMT)\s+|` +
	`CHECK (?:CARD\s+)?PURCHASE\s+|` +
	`TST\s*\*\s*|` + // Toast POS
	`SQ\s*\*\s*|` + // Square
	`PP\s*\*\s*|` + // PayPal short
	`PAYPAL\s*\*?\s*|` +
	`VENMO\s*\*?\s*|` +
	`APPLE\.COM/BILL\s+|` +
	`GOOGLE\s+PLAY\s+|` +
	`AMZN\s+MKTP\s+|` + // Amazon marketplace
	`AMZN\s*\*\s*` +
	`)`)

// Trailing noise, applied in order until the string stabilises.
var trailingRes = []*regexp.Regexp{
	regexp.MustCompile(`\s+\d{2}/\d{2}(?:/\d{2,4})?$`),     // 07/15 or 07/15/24
	regexp.MustCompile(`\s+\d{2}-\d{2}(?:-\d{2,4})?$`),     // 07-15 or 07-15-24
	regexp.MustCompile(`\s+#\w[\w\-]*(?:\s.*)?$`),          // #12345 receipt / ref
	regexp.MustCompile(`(?i)\s+REF\s*#?\w+$`),              // REF 123456
	regexp.MustCompile(`(?i)\s+TXN\s*#?\w*$`),              // TXN or TXN#id
	regexp.MustCompile(`(?i)\s+PMT$`),                      // trailing PMT
	regexp.MustCompile(`\s+\d{6,}$`),                       // long digit ref
	regexp.MustCompile(`\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?$`),  // state + ZIP: CA 94102
	regexp.MustCompile(`\s+[A-Z]{2}$`),                     // bare 2-letter state
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	digitRe      = regexp.MustCompile(`\d`)
)

func stripTrailingNoise(s string) string {
	prev := ""
	for prev != s {
		prev = s
		for _, re := range trailingRes {
			s = re.ReplaceAllString(s, "")
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "*#")
	return strings.TrimSpace(s)
}

// ExtractMerchantCandidate reduces a raw bank description to a clean,
// title-cased merchant name. It is heuristic but deterministic: the same
// input always yields the same output, and it never fails: a fully
// stripped result falls back to the trimmed input.
//
//	"STARBUCKS #12345 SAN FRANCISCO CA" → "Starbucks"
//	"SQ *LOCAL COFFEE SHOP SF CA"       → "Local Coffee Shop"
//	"ACH DEBIT NETFLIX.COM"             → "Netflix.Com"
//	"GOOGLE *CLOUD"                     → "Google Cloud"
func ExtractMerchantCandidate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return s
	}

	s = strings.TrimSpace(prefixRe.ReplaceAllString(s, ""))

	// A remaining '*' separates brand from either a reference code or a
	// product name. Classify by the first token after the star: digits mean
	// ref code (drop the suffix), one short alphabetic word means a
	// product/plan name (keep "BRAND PRODUCT"), clean multi-word text is
	// kept whole; anything else is dropped.
	if i := strings.Index(s, "*"); i >= 0 {
		before := strings.TrimSpace(s[:i])
		after := strings.TrimSpace(s[i+1:])
		firstToken := ""
		if fields := strings.Fields(after); len(fields) > 0 {
			firstToken = fields[0]
		}

		switch {
		case after == "" || digitRe.MatchString(firstToken):
			s = before
		case !strings.Contains(after, " ") && len(after) <= 20:
			s = before + " " + after
		case strings.Contains(after, " "):
			s = before + " " + after
		default:
			s = before
		}
	}

	s = stripTrailingNoise(s)
	s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))

	if s == "" {
		return strings.TrimSpace(raw)
	}
	return titleCase(s)
}

// titleCase uppercases the first letter of every letter-run and lowercases
// the rest, so "AMAZON.COM" → "Amazon.Com" and "O'BRIEN" → "O'Brien".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// NormalizeDescription lowercases and collapses whitespace for the
// description_norm search field.
func NormalizeDescription(raw string) string {
	return whitespaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(raw)), " ")
}
