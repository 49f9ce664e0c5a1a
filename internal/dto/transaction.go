package dto

type TransactionResponse struct {
	ID                string  `json:"id"`
	ImportID          string  `json:"import_id"`
	PostedDate        string  `json:"posted_date"`
	DescriptionRaw    string  `json:"description_raw"`
	DescriptionNorm   string  `json:"description_norm"`
	AmountCents       int64   `json:"amount_cents"`
	Currency          string  `json:"currency"`
	Merchant          *string `json:"merchant,omitempty"`
	MerchantCanonical *string `json:"merchant_canonical,omitempty"`
	CategoryID        *int64  `json:"category_id,omitempty"`
	CategorySource    *string `json:"category_source,omitempty"`
	CategoryRuleID    *int64  `json:"category_rule_id,omitempty"`
	TransactionType   string  `json:"transaction_type"`
	Note              *string `json:"note,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

// PatchTransactionRequest covers manual category assignment and the
// note / transaction-type fields. Nil fields are left untouched;
// ClearCategory removes an assignment.
type PatchTransactionRequest struct {
	CategoryID      *int64  `json:"category_id"`
	ClearCategory   bool    `json:"clear_category"`
	Note            *string `json:"note"`
	TransactionType *string `json:"transaction_type"`
}
