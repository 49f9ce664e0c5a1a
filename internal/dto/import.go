package dto

import (
	"ledgerbook/internal/extract"
	"ledgerbook/internal/mapping"
)

// ImportResponse is the result record every import variant returns.
type ImportResponse struct {
	ID            string                 `json:"id"`
	Filename      string                 `json:"filename"`
	FileHash      string                 `json:"file_hash"`
	SourceType    string                 `json:"source_type"`
	ColumnMapping *mapping.ColumnMapping `json:"column_mapping,omitempty"`
	AccountLabel  *string                `json:"account_label,omitempty"`
	AccountType   *string                `json:"account_type,omitempty"`
	CreatedAt     string                 `json:"created_at"`
	Inserted      int                    `json:"inserted"`
	Skipped       int                    `json:"skipped"`
}

// ImportBatchResponse is one row of the batch listing.
type ImportBatchResponse struct {
	ID               string                 `json:"id"`
	Filename         string                 `json:"filename"`
	FileHash         string                 `json:"file_hash"`
	SourceType       string                 `json:"source_type"`
	ColumnMapping    *mapping.ColumnMapping `json:"column_mapping,omitempty"`
	AccountLabel     *string                `json:"account_label,omitempty"`
	AccountType      *string                `json:"account_type,omitempty"`
	Notes            *string                `json:"notes,omitempty"`
	TransactionCount int                    `json:"transaction_count"`
	CreatedAt        string                 `json:"created_at"`
}

// CSVPreviewResponse wraps the column-mapping wizard's first step.
type CSVPreviewResponse struct {
	Filename           string           `json:"filename"`
	Headers            []string         `json:"headers"`
	Rows               []extract.RawRow `json:"rows"`
	TotalRowsPreviewed int              `json:"total_rows_previewed"`
	TotalRows          int              `json:"total_rows"`
}

// PatchImportRequest updates a batch's account metadata.
type PatchImportRequest struct {
	AccountLabel *string `json:"account_label"`
	AccountType  *string `json:"account_type"`
	Notes        *string `json:"notes"`
}
