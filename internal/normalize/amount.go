package normalize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrMalformedAmount means the cell was empty or not a number after
	// stripping currency noise.
	ErrMalformedAmount = errors.New("malformed amount")

	// ErrNoValidAmount means neither side of a debit/credit pair held a
	// usable non-zero value.
	ErrNoValidAmount = errors.New("no valid amount in debit/credit pair")
)

// European thousands convention: 1.234,56
var europeanRe = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})*(,\d{1,2})$`)

const currencySymbols = "$€£¥₹"

// ParseAmount parses a single amount cell into signed major units.
//
// Handles: 42.99 | -42.99 | (42.99) | $1,234.56 | £1.234,56 | 1 234.56
func ParseAmount(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("%w: empty string", ErrMalformedAmount)
	}

	negative := strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")")
	if negative {
		v = v[1 : len(v)-1]
	}

	v = strings.TrimSpace(strings.TrimLeft(v, currencySymbols))

	// Space as thousands separator: "1 234.56" → "1234.56"
	v = strings.ReplaceAll(v, " ", "")

	if europeanRe.MatchString(v) {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.ReplaceAll(v, ",", ".")
	} else {
		v = stripThousandsCommas(v)
		v = strings.ReplaceAll(v, ",", ".") // stray comma → decimal point
	}

	amount, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, raw)
	}
	if negative {
		amount = -amount
	}
	return amount, nil
}

// stripThousandsCommas removes commas that sit before a group of exactly
// three digits followed by another separator or the end of the string,
// leaving any stray decimal comma in place for the caller.
func stripThousandsCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' && isThousandsGroup(s[i+1:]) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isThousandsGroup(rest string) bool {
	if len(rest) < 3 {
		return false
	}
	for i := 0; i < 3; i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return len(rest) == 3 || rest[3] == ',' || rest[3] == '.'
}

// zeroEquivalents are cell values banks emit for the inactive side of a
// debit/credit pair.
var zeroEquivalents = map[string]bool{
	"": true, "0": true, "0.0": true, "0.00": true,
	"-0": true, "-0.0": true, "-0.00": true,
}

// ParseSplitAmount interprets separate debit (outflow) and credit (inflow)
// columns as one signed net amount:
//
//	debit only  → negative
//	credit only → positive
//	both        → credit − debit
//	neither     → ErrNoValidAmount
func ParseSplitAmount(debitVal, creditVal string) (float64, error) {
	dStr := strings.TrimSpace(debitVal)
	cStr := strings.TrimSpace(creditVal)

	var debit, credit *float64

	if !zeroEquivalents[dStr] {
		if v, err := ParseAmount(dStr); err == nil {
			a := math.Abs(v)
			debit = &a
		}
	}
	if !zeroEquivalents[cStr] {
		if v, err := ParseAmount(cStr); err == nil {
			a := math.Abs(v)
			credit = &a
		}
	}

	switch {
	case debit != nil && credit != nil:
		return *credit - *debit, nil
	case credit != nil:
		return *credit, nil
	case debit != nil:
		return -*debit, nil
	default:
		return 0, fmt.Errorf("%w: debit=%q credit=%q", ErrNoValidAmount, dStr, cStr)
	}
}

var oneHundred = decimal.NewFromInt(100)

// ToCents converts major units to integer cents with half-away-from-zero
// rounding on a decimal representation, so 0.005 → 1 and -0.005 → -1
// regardless of binary-float artifacts.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(oneHundred).Round(0).IntPart()
}
