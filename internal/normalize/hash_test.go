package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprintDeterminism(t *testing.T) {
	a := Fingerprint("2026-01-15", "STARBUCKS #123", -4.5)
	b := Fingerprint("2026-01-15", "STARBUCKS #123", -4.5)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestFingerprintTrimsDescription(t *testing.T) {
	assert.Equal(t,
		Fingerprint("2026-01-15", "  STARBUCKS #123  ", -4.5),
		Fingerprint("2026-01-15", "STARBUCKS #123", -4.5))
}

func TestFingerprintSensitivity(t *testing.T) {
	base := Fingerprint("2026-01-15", "STARBUCKS #123", -4.5)
	assert.NotEqual(t, base, Fingerprint("2026-01-16", "STARBUCKS #123", -4.5))
	assert.NotEqual(t, base, Fingerprint("2026-01-15", "STARBUCKS #124", -4.5))
	assert.NotEqual(t, base, Fingerprint("2026-01-15", "STARBUCKS #123", -4.51))
}

// Amounts are canonicalized to four decimal places inside the hash input, so
// float noise beyond that precision does not split fingerprints.
func TestFingerprintAmountPrecision(t *testing.T) {
	assert.Equal(t,
		Fingerprint("2026-01-15", "X", 1.23),
		Fingerprint("2026-01-15", "X", 1.2300000001))
}

func TestFileHash(t *testing.T) {
	data := []byte("Date,Description,Amount\n")
	assert.Equal(t, FileHash(data), FileHash(data))
	assert.NotEqual(t, FileHash(data), FileHash(append(data, '\n')))
	// Well-known vector: SHA-256 of the empty input.
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		FileHash(nil))
}
