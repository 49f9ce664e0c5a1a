package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// FileHash returns the SHA-256 hex digest of raw file content. Uploading a
// byte-identical file twice resolves to the same import batch.
func FileHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Fingerprint is the row-level dedup key: SHA-256 over
// "{date}|{rawDescription}|{amount:.4f}".
//
// The raw description is used on purpose: description normalization can
// change between releases without turning previously imported rows into
// phantom duplicates.
func Fingerprint(postedDate, descriptionRaw string, amount float64) string {
	canonical := fmt.Sprintf("%s|%s|%.4f", postedDate, strings.TrimSpace(descriptionRaw), amount)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
