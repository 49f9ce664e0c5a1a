package models

import (
	"time"

	"github.com/google/uuid"
)

// Category provenance: how a transaction's category was assigned.
const (
	CategorySourceRule   = "rule"
	CategorySourceManual = "manual"
)

// TransactionType tags rows that income/expense aggregates should treat
// specially.
type TransactionType string

const (
	TypeNormal   TransactionType = "normal"
	TypeTransfer TransactionType = "transfer"
	TypePayment  TransactionType = "payment"
)

// Transaction is the canonical output unit of an import. FingerprintHash is
// unique across the whole table and is the row-level dedup key.
type Transaction struct {
	ID                uuid.UUID       `db:"id"`
	ImportID          uuid.UUID       `db:"import_id"`
	PostedDate        string          `db:"posted_date"` // YYYY-MM-DD, or raw text when unparseable
	DescriptionRaw    string          `db:"description_raw"`
	DescriptionNorm   string          `db:"description_norm"`
	AmountCents       int64           `db:"amount_cents"` // negative = outflow
	Currency          string          `db:"currency"`
	Merchant          *string         `db:"merchant"`
	MerchantCanonical *string         `db:"merchant_canonical"`
	CategoryID        *int64          `db:"category_id"`
	CategorySource    *string         `db:"category_source"`
	CategoryRuleID    *int64          `db:"category_rule_id"`
	FingerprintHash   string          `db:"fingerprint_hash"`
	TransactionType   TransactionType `db:"transaction_type"`
	Note              *string         `db:"note"`
	CreatedAt         time.Time       `db:"created_at"`
}
