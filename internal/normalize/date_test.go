package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01/15/2026", "2026-01-15"},
		{"2026-01-15", "2026-01-15"},
		{"15/01/2026", "2026-01-15"}, // month 15 is invalid, so EU wins
		{"01-15-2026", "2026-01-15"},
		{"15-01-2026", "2026-01-15"},
		{"2026/01/15", "2026-01-15"},
		{"01/15/26", "2026-01-15"},
		{"15-Jan-2026", "2026-01-15"},
		{"15 Jan 2026", "2026-01-15"},
		{"Jan 15, 2026", "2026-01-15"},
		{"January 15, 2026", "2026-01-15"},
		{"2026-01-15T12:00:00", "2026-01-15"},
		{"2026-01-15T12:00:00.000000", "2026-01-15"},
		{"  2026-01-15  ", "2026-01-15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDate(tt.in), "ParseDate(%q)", tt.in)
	}
}

// Ambiguous slash dates resolve month-first, matching the layout priority.
func TestParseDateUSFirst(t *testing.T) {
	assert.Equal(t, "2026-01-02", ParseDate("01/02/2026"))
}

// Unknown formats come back trimmed but otherwise untouched, so the
// fingerprint of an unparseable row never drifts.
func TestParseDateUnknownFormatPassthrough(t *testing.T) {
	for _, in := range []string{"sometime last week", "2026.01.15", ""} {
		assert.Equal(t, in, ParseDate("  "+in+"  "))
	}
	assert.Equal(t, ParseDate("garbled"), ParseDate("garbled"))
}
