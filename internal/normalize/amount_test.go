package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"simple positive", "42.99", 42.99},
		{"simple negative", "-42.99", -42.99},
		{"parenthesized negative", "(42.99)", -42.99},
		{"dollar sign with thousands", "$1,234.56", 1234.56},
		{"pound sign", "£99.99", 99.99},
		{"euro sign european", "€1.234,56", 1234.56},
		{"comma thousands", "1,234.56", 1234.56},
		{"european format", "1.234,56", 1234.56},
		{"negative european", "-1.234,56", -1234.56},
		{"space thousands", "1 234.56", 1234.56},
		{"stray comma decimal", "42,99", 42.99},
		{"million with thousands", "1,234,567.89", 1234567.89},
		{"zero", "0.00", 0},
		{"whitespace padded", "  7.50  ", 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseAmountMalformed(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "$"} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrMalformedAmount, "input %q", in)
	}
}

func TestParseSplitAmount(t *testing.T) {
	t.Run("debit only is negative", func(t *testing.T) {
		got, err := ParseSplitAmount("42.99", "")
		require.NoError(t, err)
		assert.Equal(t, -42.99, got)
	})

	t.Run("credit only is positive", func(t *testing.T) {
		got, err := ParseSplitAmount("", "42.99")
		require.NoError(t, err)
		assert.Equal(t, 42.99, got)
	})

	t.Run("both present nets", func(t *testing.T) {
		got, err := ParseSplitAmount("10.00", "50.00")
		require.NoError(t, err)
		assert.Equal(t, 40.00, got)
	})

	t.Run("zero debit treated as empty", func(t *testing.T) {
		got, err := ParseSplitAmount("0.00", "25.00")
		require.NoError(t, err)
		assert.Equal(t, 25.00, got)
	})

	t.Run("currency symbols on the debit side", func(t *testing.T) {
		got, err := ParseSplitAmount("$1,234.56", "")
		require.NoError(t, err)
		assert.Equal(t, -1234.56, got)
	})

	t.Run("negative debit cell still an outflow", func(t *testing.T) {
		got, err := ParseSplitAmount("-12.00", "")
		require.NoError(t, err)
		assert.Equal(t, -12.00, got)
	})

	t.Run("both zero-equivalent fails", func(t *testing.T) {
		for _, pair := range [][2]string{{"", ""}, {"0", "0.00"}, {"-0", ""}} {
			_, err := ParseSplitAmount(pair[0], pair[1])
			assert.ErrorIs(t, err, ErrNoValidAmount)
		}
	})
}

// ParseSplitAmount must agree with ParseAmount on each side.
func TestSplitAmountLaws(t *testing.T) {
	for _, v := range []string{"4.50", "1,234.56", "(99.00)", "$20.00"} {
		single, err := ParseAmount(v)
		require.NoError(t, err)

		debitOnly, err := ParseSplitAmount(v, "")
		require.NoError(t, err)
		assert.InDelta(t, -abs(single), debitOnly, 1e-9)

		creditOnly, err := ParseSplitAmount("", v)
		require.NoError(t, err)
		assert.InDelta(t, abs(single), creditOnly, 1e-9)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestToCents(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{42.99, 4299},
		{-42.99, -4299},
		{0, 0},
		{100.00, 10000},
		{0.005, 1},     // half rounds away from zero
		{-0.005, -1},
		{2.675, 268},   // binary-float trap: 2.675 stored as 2.67499…
		{19.999, 2000},
		{1234567.89, 123456789},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToCents(tt.in), "ToCents(%v)", tt.in)
	}
}

// Every representable cent value must round-trip through float division.
func TestToCentsRoundTrip(t *testing.T) {
	for c := int64(-10000); c <= 10000; c++ {
		assert.Equal(t, c, ToCents(float64(c)/100.0))
	}
}
