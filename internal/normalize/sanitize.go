package normalize

import (
	"strings"
	"unicode/utf8"
)

// SanitizeUTF8 drops invalid UTF-8 sequences so descriptions pulled out of
// arbitrary statement exports never trip Postgres encoding errors.
func SanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		b.WriteRune(r)
		s = s[size:]
	}
	return b.String()
}
