package models

import (
	"time"

	"github.com/google/uuid"

	"ledgerbook/internal/mapping"
)

// Known source types. "custom" and "pdf" carry an explicit column mapping;
// the rest resolve through presets or a fixed layout.
const (
	SourceGeneric = "generic"
	SourceCustom  = "custom"
	SourcePDF     = "pdf"
	SourcePayPal  = "paypal"
)

// ImportBatch is one ingested statement file. FileHash is unique: a
// byte-identical re-upload resolves to the existing batch with zero new
// rows.
type ImportBatch struct {
	ID            uuid.UUID              `db:"id"`
	Filename      string                 `db:"filename"`
	FileHash      string                 `db:"file_hash"`
	SourceType    string                 `db:"source_type"`
	ColumnMapping *mapping.ColumnMapping `db:"column_mapping"`
	AccountLabel  *string                `db:"account_label"`
	AccountType   *string                `db:"account_type"` // checking | savings | credit
	Notes         *string                `db:"notes"`
	CreatedAt     time.Time              `db:"created_at"`
}
